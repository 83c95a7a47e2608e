package service_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seatdesk/config"
	"seatdesk/infras/otel/mocks"
	"seatdesk/infras/s3"
	s3Mocks "seatdesk/infras/s3/mocks"
	attendanceMocks "seatdesk/internal/domains/attendance/mocks"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	memberMocks "seatdesk/internal/domains/member/mocks"
	"seatdesk/internal/domains/member/model"
	"seatdesk/internal/domains/member/model/dto"
	"seatdesk/internal/domains/member/service"
	roomMocks "seatdesk/internal/domains/room/mocks"
	roomModel "seatdesk/internal/domains/room/model"
	cacheMocks "seatdesk/shared/cache/mocks"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	txMocks "seatdesk/shared/transaction/mocks"
)

type fixture struct {
	repo     *memberMocks.MockMember
	roomRepo *roomMocks.MockRoom
	logRepo  *attendanceMocks.MockAttendance
	presence *attendanceMocks.MockPresence
	tx       *txMocks.MockTransactor
	cache    *cacheMocks.MockRedisCache
	s3       *s3Mocks.MockS3
	svc      service.Member
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "photos"

	f := fixture{
		repo:     memberMocks.NewMockMember(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		logRepo:  attendanceMocks.NewMockAttendance(ctrl),
		presence: attendanceMocks.NewMockPresence(ctrl),
		tx:       txMocks.NewMockTransactor(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
	}

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.roomRepo, f.logRepo, f.presence, f.tx, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func ptr[T any](v T) *T {
	return &v
}

func expectHolders(f fixture, holders ...model.Member) {
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(holders, nil)
}

func TestMemberService_Create(t *testing.T) {
	hall := roomModel.Room{ID: "hall", Capacity: 10}

	tests := []struct {
		name      string
		req       dto.CreateMemberRequest
		setupMock func(f fixture)
		wantCode  int
		check     func(t *testing.T, res dto.MemberResponse)
	}{
		{
			name: "general member starts unseated with defaults",
			req:  dto.CreateMemberRequest{Name: "Asha", Mobile: "9876543210", SeatType: model.SeatTypeGeneral},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.MemberResponse) {
				assert.Equal(t, model.StatusActive, res.Status)
				assert.Equal(t, model.ShiftMorning, res.Shift)
				assert.Equal(t, model.DefaultStartTime, res.StartTime)
				assert.Equal(t, model.DefaultEndTime, res.EndTime)
				assert.Nil(t, res.SeatNo)
				assert.Nil(t, res.RoomID)
				assert.NotEmpty(t, res.AdmissionDate)
			},
		},
		{
			name: "reserved member binds the requested seat",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 5},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
				expectHolders(f)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, res dto.MemberResponse) {
				assert.Equal(t, ptr("hall"), res.RoomID)
				assert.Equal(t, ptr(5), res.SeatNo)
			},
		},
		{
			name: "reserved seat beyond capacity",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 11},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
			},
			wantCode: 400,
		},
		{
			name: "reserved seat in an unknown room",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "nowhere", SeatNo: 1},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)
			},
			wantCode: 400,
		},
		{
			name: "reserved seat already held",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 5},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
				expectHolders(f, model.Member{ID: "m9", SeatType: model.SeatTypeReserved})
			},
			wantCode: 409,
		},
		{
			name: "seat held by a general member who is inside",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 5},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
				expectHolders(f, model.Member{ID: "m9", SeatType: model.SeatTypeGeneral})
				f.presence.EXPECT().InsideSet(gomock.Any(), gomock.Any()).Return(attendanceModel.InsideSet{"m9": {}}, nil)
			},
			wantCode: 409,
		},
		{
			name: "seat left behind by a general member who is out is reclaimed",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 5},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
				expectHolders(f, model.Member{ID: "m9", SeatType: model.SeatTypeGeneral})
				f.presence.EXPECT().InsideSet(gomock.Any(), gomock.Any()).Return(attendanceModel.InsideSet{"m3": {}}, nil)
				gomock.InOrder(
					f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
							assert.Contains(t, fields, model.FieldSeatNo)
							assert.Nil(t, fields[model.FieldSeatNo])
							assert.NotContains(t, fields, model.FieldRoomID)

							_, args := filter.GetWhereClause()
							assert.Equal(t, map[string]any{"id_0": "m9"}, args)

							return nil
						}),
					f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			check: func(t *testing.T, res dto.MemberResponse) {
				assert.Equal(t, ptr(5), res.SeatNo)
			},
		},
		{
			name: "seat taken concurrently surfaces as conflict",
			req:  dto.CreateMemberRequest{Name: "Ravi", Mobile: "9876543210", SeatType: model.SeatTypeReserved, RoomID: "hall", SeatNo: 5},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hall, nil)
				expectHolders(f)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
		{
			name: "photo is removed when the insert fails",
			req: dto.CreateMemberRequest{
				Name: "Asha", Mobile: "9876543210", SeatType: model.SeatTypeGeneral,
				Photo: &multipart.FileHeader{Filename: "face.png"},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					Return("member/x.png", "https://cdn/member/x.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "member/x.png").Return(nil)
			},
			wantCode: 500,
		},
		{
			name: "photo that is not an image",
			req: dto.CreateMemberRequest{
				Name: "Asha", Mobile: "9876543210", SeatType: model.SeatTypeGeneral,
				Photo: &multipart.FileHeader{Filename: "notes.PNG"},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, string, error) {
						assert.True(t, strings.HasSuffix(fileName, ".png"))

						return "", "", fmt.Errorf("%w: text/plain", s3.ErrUnsupportedContentType)
					})
			},
			wantCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "tester")
			res, err := f.svc.Create(ctx, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestMemberService_GetAll(t *testing.T) {
	tests := []struct {
		name    string
		req     gDto.QueryParams
		wantBy  string
		wantDir string
	}{
		{name: "allowed column keeps direction", req: gDto.QueryParams{Limit: 10, SortBy: "seat_no", SortDir: gDto.SortDirDesc}, wantBy: "seat_no", wantDir: gDto.SortDirDesc},
		{name: "allowed column without direction", req: gDto.QueryParams{Limit: 10, SortBy: "mobile"}, wantBy: "mobile", wantDir: gDto.SortDirAsc},
		{name: "unknown column falls back to name", req: gDto.QueryParams{Limit: 10, SortBy: "id; DROP TABLE members", SortDir: gDto.SortDirDesc}, wantBy: "name", wantDir: gDto.SortDirAsc},
		{name: "no sort", req: gDto.QueryParams{Limit: 10}, wantBy: "name", wantDir: gDto.SortDirAsc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
			f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
			f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Member, error) {
					assert.Equal(t, tt.wantBy, params.SortBy)
					assert.Equal(t, tt.wantDir, params.SortDir)

					return []model.Member{{ID: "m1", Name: "Asha"}}, nil
				})

			res, err := f.svc.GetAll(context.Background(), tt.req, gDto.FilterGroup{})

			require.NoError(t, err)
			assert.Equal(t, 12, res.TotalData)
			assert.Equal(t, 2, res.TotalPage)
			require.Len(t, res.Members, 1)
			assert.Equal(t, "Asha", res.Members[0].Name)
		})
	}
}

func TestMemberService_Get(t *testing.T) {
	t.Run("unknown member", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "member:get:ghost", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{}, nil)

		_, err := f.svc.Get(context.Background(), "ghost")

		assert.ErrorIs(t, err, failure.MemberNotFound)
	})

	t.Run("from the store", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{ID: "m1", Name: "Asha"}, nil)

		res, err := f.svc.Get(context.Background(), "m1")

		require.NoError(t, err)
		assert.Equal(t, "Asha", res.Name)
	})
}

func TestMemberService_Update(t *testing.T) {
	general := model.Member{ID: "m1", SeatType: model.SeatTypeGeneral, RoomID: ptr("hall"), SeatNo: ptr(2)}
	reserved := model.Member{ID: "m1", SeatType: model.SeatTypeReserved, RoomID: ptr("hall"), SeatNo: ptr(5)}

	tests := []struct {
		name      string
		req       dto.UpdateMemberRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "plain fields only",
			req:  dto.UpdateMemberRequest{Name: "Asha K", Status: model.StatusInactive},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(general, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "Asha K", fields[model.FieldName])
						assert.Equal(t, model.StatusInactive, fields[model.FieldStatus])
						assert.NotContains(t, fields, model.FieldSeatNo)
						assert.NotContains(t, fields, model.FieldSeatType)

						return nil
					})
			},
		},
		{
			name: "reserved to general clears the seat",
			req:  dto.UpdateMemberRequest{SeatType: model.SeatTypeGeneral},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reserved, nil)
				f.presence.EXPECT().Resolve(gomock.Any(), "m1", gomock.Any()).Return(attendanceModel.Presence{MemberID: "m1", State: attendanceModel.StatusOut}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.SeatTypeGeneral, fields[model.FieldSeatType])
						assert.Contains(t, fields, model.FieldSeatNo)
						assert.Nil(t, fields[model.FieldSeatNo])
						assert.NotContains(t, fields, model.FieldRoomID)

						return nil
					})
			},
		},
		{
			name: "reserved to general while inside keeps the seat until checkout",
			req:  dto.UpdateMemberRequest{SeatType: model.SeatTypeGeneral},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reserved, nil)
				f.presence.EXPECT().Resolve(gomock.Any(), "m1", gomock.Any()).Return(attendanceModel.Presence{MemberID: "m1", State: attendanceModel.StatusIn}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, model.SeatTypeGeneral, fields[model.FieldSeatType])
						assert.NotContains(t, fields, model.FieldSeatNo)
						assert.NotContains(t, fields, model.FieldRoomID)

						return nil
					})
			},
		},
		{
			name: "reserved to general fails when presence cannot be resolved",
			req:  dto.UpdateMemberRequest{SeatType: model.SeatTypeGeneral},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(reserved, nil)
				f.presence.EXPECT().Resolve(gomock.Any(), "m1", gomock.Any()).Return(attendanceModel.Presence{}, errors.New("database error"))
			},
			wantCode: 500,
		},
		{
			name: "general to reserved needs a seat",
			req:  dto.UpdateMemberRequest{SeatType: model.SeatTypeReserved},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{ID: "m1", SeatType: model.SeatTypeGeneral}, nil)
			},
			wantCode: 400,
		},
		{
			name: "general to reserved on a free seat",
			req:  dto.UpdateMemberRequest{SeatType: model.SeatTypeReserved, SeatNo: 7},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(general, nil)
				f.roomRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{ID: "hall", Capacity: 10}, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Member, error) {
						_, args := filter.GetWhereClause()
						assert.Equal(t, "hall", args[model.FieldRoomID])
						assert.Equal(t, 7, args[model.FieldSeatNo])
						assert.Equal(t, "m1", args[model.FieldID])

						return nil, nil
					})
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, "hall", fields[model.FieldRoomID])
						assert.Equal(t, 7, fields[model.FieldSeatNo])

						return nil
					})
			},
		},
		{
			name: "unknown member",
			req:  dto.UpdateMemberRequest{Name: "x"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Member{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), tt.req, "m1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestMemberService_Delete(t *testing.T) {
	t.Run("logs go with the member", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldPhoto).
			Return(model.Member{ID: "m1", Photo: "https://cdn/photos/member/a.png"}, nil)
		f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
				return fn(ctx, nil)
			})
		gomock.InOrder(
			f.logRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
					_, args := filter.GetWhereClause()
					assert.Equal(t, "m1", args["student_id"])

					return nil
				}),
			f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.s3.EXPECT().ObjectKeyFromURL("https://cdn/photos/member/a.png").Return("member/a.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), "member/a.png").Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "m1"))
	})

	t.Run("failed member delete keeps the logs", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Member{ID: "m1"}, nil)
		f.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, *sqlx.Tx) error) error {
				return fn(ctx, nil)
			})
		f.logRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		err := f.svc.Delete(context.Background(), "m1")

		require.Error(t, err)
		assert.Equal(t, 500, failure.GetCode(err))
	})

	t.Run("unknown member", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Member{}, nil)

		assert.ErrorIs(t, f.svc.Delete(context.Background(), "ghost"), failure.MemberNotFound)
	})
}
