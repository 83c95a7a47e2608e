package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	metricsMocks "seatdesk/infras/metrics/mocks"
	"seatdesk/infras/otel/mocks"
	attendanceMocks "seatdesk/internal/domains/attendance/mocks"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	memberMocks "seatdesk/internal/domains/member/mocks"
	memberModel "seatdesk/internal/domains/member/model"
	"seatdesk/internal/domains/occupancy/model"
	"seatdesk/internal/domains/occupancy/service"
	roomMocks "seatdesk/internal/domains/room/mocks"
	roomModel "seatdesk/internal/domains/room/model"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr[T any](v T) *T {
	return &v
}

type fixture struct {
	roomRepo   *roomMocks.MockRoom
	memberRepo *memberMocks.MockMember
	presence   *attendanceMocks.MockPresence
	metrics    *metricsMocks.MockMetrics
	svc        service.Occupancy
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		memberRepo: memberMocks.NewMockMember(ctrl),
		presence:   attendanceMocks.NewMockPresence(ctrl),
		metrics:    metricsMocks.NewMockMetrics(ctrl),
	}

	f.svc = service.New(f.roomRepo, f.memberRepo, f.presence, f.metrics, mocks.NewOtel())

	return f
}

var hall = roomModel.Room{ID: "hall", Name: "Main Hall", Capacity: 10, Rows: 2, Cols: 5}

func TestOccupancy_GetSeatStatus(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, timezone.GetLocation())

	t.Run("projects the room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hall, nil)
		f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]memberModel.Member, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, "hall", args[memberModel.FieldRoomID])
				assert.Equal(t, memberModel.StatusActive, args[memberModel.FieldStatus])

				return []memberModel.Member{
					{ID: "r", Name: "Ravi", SeatType: memberModel.SeatTypeReserved, RoomID: ptr("hall"), SeatNo: ptr(7), StartTime: "08:00", EndTime: "14:00"},
					{ID: "g", Name: "Asha", SeatType: memberModel.SeatTypeGeneral, RoomID: ptr("hall"), SeatNo: ptr(1)},
				}, nil
			})
		f.presence.EXPECT().InsideSet(gomock.Any(), now).Return(attendanceModel.InsideSet{"g": {}}, nil)
		f.metrics.EXPECT().SetOccupiedSeats("hall", 1)

		res, err := f.svc.GetSeatStatus(context.Background(), "hall", now)

		require.NoError(t, err)
		require.Len(t, res.Seats, 10)
		assert.Equal(t, model.StateInside, res.Seats[0].State)
		assert.Equal(t, "Asha", *res.Seats[0].MemberName)
		assert.Equal(t, model.StateAbsent, res.Seats[6].State)
		assert.Equal(t, 2, res.Seats[6].Row)
		assert.Equal(t, 2, res.Seats[6].Col)
		assert.Equal(t, 8, res.Counts.Empty)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
		f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.presence.EXPECT().InsideSet(gomock.Any(), now).Return(attendanceModel.InsideSet{}, nil)

		_, err := f.svc.GetSeatStatus(context.Background(), "nowhere", now)

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hall, nil).AnyTimes()
		f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error")).AnyTimes()
		f.presence.EXPECT().InsideSet(gomock.Any(), now).Return(attendanceModel.InsideSet{}, nil).AnyTimes()

		_, err := f.svc.GetSeatStatus(context.Background(), "hall", now)

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestOccupancy_Summary(t *testing.T) {
	f := newFixture(t)

	now := time.Date(2025, 3, 10, 10, 0, 0, 0, timezone.GetLocation())
	annex := roomModel.Room{ID: "annex", Name: "Annex", Capacity: 4}

	f.roomRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{hall, annex}, nil)
	f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]memberModel.Member, error) {
			_, args := filter.GetWhereClause()
			assert.NotContains(t, args, memberModel.FieldRoomID)

			return []memberModel.Member{
				{ID: "a", SeatType: memberModel.SeatTypeGeneral, RoomID: ptr("hall"), SeatNo: ptr(1)},
				{ID: "b", SeatType: memberModel.SeatTypeGeneral, RoomID: ptr("hall"), SeatNo: ptr(2)},
				{ID: "c", SeatType: memberModel.SeatTypeGeneral, RoomID: ptr("annex"), SeatNo: ptr(1)},
			}, nil
		})
	f.presence.EXPECT().InsideSet(gomock.Any(), now).Return(attendanceModel.InsideSet{"a": {}, "b": {}, "c": {}}, nil)
	f.metrics.EXPECT().SetOccupiedSeats("hall", 2)
	f.metrics.EXPECT().SetOccupiedSeats("annex", 1)

	res, err := f.svc.Summary(context.Background(), now)

	require.NoError(t, err)
	require.Len(t, res.Rooms, 2)
	assert.Equal(t, "hall", res.Rooms[0].RoomID)
	assert.Equal(t, 14, res.Capacity)
	assert.Equal(t, 3, res.Occupied)
	assert.Equal(t, 3, res.Rooms[1].Counts.Empty)
}

func TestOccupancy_Watch(t *testing.T) {
	t.Run("streams until the caller leaves", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hall, nil).MinTimes(2)
		f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).MinTimes(2)
		f.presence.EXPECT().InsideSet(gomock.Any(), gomock.Any()).Return(attendanceModel.InsideSet{}, nil).MinTimes(2)
		f.metrics.EXPECT().SetOccupiedSeats("hall", 0).MinTimes(2)

		ctx, cancel := context.WithCancel(context.Background())

		updates, err := f.svc.Watch(ctx, "hall", 5*time.Millisecond)
		require.NoError(t, err)

		first := <-updates
		assert.Equal(t, "hall", first.RoomID)

		second := <-updates
		assert.Equal(t, 10, second.Counts.Empty)

		cancel()

		for range updates {
		}
	})

	t.Run("unknown room fails up front", func(t *testing.T) {
		f := newFixture(t)

		f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
		f.memberRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.presence.EXPECT().InsideSet(gomock.Any(), gomock.Any()).Return(attendanceModel.InsideSet{}, nil)

		updates, err := f.svc.Watch(context.Background(), "nowhere", time.Second)

		assert.Nil(t, updates)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
