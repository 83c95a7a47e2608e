package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seatdesk/infras/otel/mocks"
	attendanceMocks "seatdesk/internal/domains/attendance/mocks"
	"seatdesk/internal/domains/attendance/model"
	"seatdesk/internal/domains/attendance/service"
	memberMocks "seatdesk/internal/domains/member/mocks"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
)

func TestPresence_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := attendanceMocks.NewMockAttendance(ctrl)
	mockMemberRepo := memberMocks.NewMockMember(ctrl)

	svc := service.NewPresence(mockRepo, mockMemberRepo, mocks.NewOtel())

	asOf := time.Date(2025, 3, 10, 15, 0, 0, 0, timezone.GetLocation())
	dayStart := time.Date(2025, 3, 10, 0, 0, 0, 0, timezone.GetLocation())
	nextDay := dayStart.AddDate(0, 0, 1)
	morning := asOf.Add(-6 * time.Hour)

	tests := []struct {
		name      string
		setupMock func()
		wantState string
		wantLast  bool
		wantErr   error
	}{
		{
			name: "no log today means out",
			setupMock: func() {
				mockMemberRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Latest(gomock.Any(), "m1", dayStart, nextDay).Return(nil, nil)
			},
			wantState: model.StatusOut,
		},
		{
			name: "latest log decides",
			setupMock: func() {
				mockMemberRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Latest(gomock.Any(), "m1", dayStart, nextDay).
					Return(&model.Log{StudentID: "m1", Status: model.StatusIn, Date: morning}, nil)
			},
			wantState: model.StatusIn,
			wantLast:  true,
		},
		{
			name: "unknown member",
			setupMock: func() {
				mockMemberRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: failure.MemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Resolve(context.Background(), "m1", asOf)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "m1", res.MemberID)
			assert.Equal(t, tt.wantState, res.State)
			assert.Equal(t, tt.wantLast, res.Last != nil)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		mockMemberRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Latest(gomock.Any(), "m1", dayStart, nextDay).Return(nil, errors.New("connection reset"))

		_, err := svc.Resolve(context.Background(), "m1", asOf)

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestPresence_InsideSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := attendanceMocks.NewMockAttendance(ctrl)

	svc := service.NewPresence(mockRepo, memberMocks.NewMockMember(ctrl), mocks.NewOtel())

	asOf := time.Date(2025, 3, 10, 10, 0, 0, 0, timezone.GetLocation())

	mockRepo.EXPECT().LatestStatuses(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.LatestStatus{
		{StudentID: "a", Status: model.StatusIn},
		{StudentID: "b", Status: model.StatusOut},
		{StudentID: "c", Status: model.StatusIn},
	}, nil)

	inside, err := svc.InsideSet(context.Background(), asOf)

	require.NoError(t, err)
	assert.True(t, inside.Has("a"))
	assert.False(t, inside.Has("b"))
	assert.True(t, inside.Has("c"))
	assert.False(t, inside.Has("d"))
}
