package room_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatdesk/infras/otel/mocks"
	"seatdesk/internal/domains/room/model/dto"
	roomMocks "seatdesk/internal/domains/room/service/mocks"
	"seatdesk/internal/handlers/room"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *roomMocks.MockRoom) {
	ctrl := gomock.NewController(t)
	svc := roomMocks.NewMockRoom(ctrl)

	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestHandler_Rooms(t *testing.T) {
	hall := dto.RoomResponse{ID: "r1", Name: "Main Hall", Capacity: 40, Rows: 8, Cols: 5}

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		setupMock  func(svc *roomMocks.MockRoom)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/rooms/",
			body:   `{"name":"Main Hall","capacity":40}`,
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().Create(gomock.Any(), dto.CreateRoomRequest{Name: "Main Hall", Capacity: 40}).Return(hall, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"rows":8`,
		},
		{
			name:       "create without capacity",
			method:     http.MethodPost,
			path:       "/rooms/",
			body:       `{"name":"Annex"}`,
			setupMock:  func(*roomMocks.MockRoom) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "capacity is required",
		},
		{
			name:   "list filters by name",
			method: http.MethodGet,
			path:   "/rooms/?name=hall",
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Len(t, filter.Filters, 1)

						return dto.GetRoomsResponse{Rooms: []dto.RoomResponse{hall}, TotalPage: 1, TotalData: 1}, nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total_data":1`,
		},
		{
			name:   "list without a name filter",
			method: http.MethodGet,
			path:   "/rooms/",
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error) {
						assert.Empty(t, filter.Filters)

						return dto.GetRoomsResponse{TotalPage: 1}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "get unknown room",
			method: http.MethodGet,
			path:   "/rooms/nope",
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().Get(gomock.Any(), "nope").Return(dto.RoomResponse{}, failure.NotFound("room"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "shrink below a held seat",
			method: http.MethodPatch,
			path:   "/rooms/r1",
			body:   `{"capacity":10}`,
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().Update(gomock.Any(), dto.UpdateRoomRequest{Capacity: 10}, "r1").
					Return(failure.Conflict("a member holds a seat beyond the new capacity"))
			},
			wantStatus: http.StatusConflict,
			wantBody:   "beyond the new capacity",
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			path:   "/rooms/r1",
			setupMock: func(svc *roomMocks.MockRoom) {
				svc.EXPECT().Delete(gomock.Any(), "r1").Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "Room deleted successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)
			tt.setupMock(svc)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
