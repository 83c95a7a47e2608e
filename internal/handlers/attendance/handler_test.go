package attendance_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatdesk/infras/otel/mocks"
	attendanceMocks "seatdesk/internal/domains/attendance/mocks"
	"seatdesk/internal/domains/attendance/model/dto"
	transitionMocks "seatdesk/internal/domains/transition/mocks"
	transitionDto "seatdesk/internal/domains/transition/model/dto"
	"seatdesk/internal/handlers/attendance"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *transitionMocks.MockEngine, *attendanceMocks.MockReport) {
	ctrl := gomock.NewController(t)

	engine := transitionMocks.NewMockEngine(ctrl)
	report := attendanceMocks.NewMockReport(ctrl)

	handler := attendance.New(engine, report, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, engine, report
}

func TestHandler_Toggle(t *testing.T) {
	seat := 3

	tests := []struct {
		name       string
		body       string
		header     string
		setupMock  func(engine *transitionMocks.MockEngine)
		wantStatus int
		wantBody   string
	}{
		{
			name: "checks in",
			body: `{"member_id":"m1","channel":"desk"}`,
			setupMock: func(engine *transitionMocks.MockEngine) {
				engine.EXPECT().ToggleFromChannel(gomock.Any(), "desk", "m1", gomock.Any()).
					Return(transitionDto.ToggleResponse{MemberID: "m1", Status: "In", SeatNo: &seat}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"seat_no":3`,
		},
		{
			name:   "header channel wins",
			body:   `{"member_id":"m1","channel":"desk"}`,
			header: "gate-2",
			setupMock: func(engine *transitionMocks.MockEngine) {
				engine.EXPECT().ToggleFromChannel(gomock.Any(), "gate-2", "m1", gomock.Any()).
					Return(transitionDto.ToggleResponse{MemberID: "m1", Status: "Out"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing member",
			body:       `{"channel":"desk"}`,
			setupMock:  func(*transitionMocks.MockEngine) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "library full",
			body: `{"member_id":"m1"}`,
			setupMock: func(engine *transitionMocks.MockEngine) {
				engine.EXPECT().ToggleFromChannel(gomock.Any(), "", "m1", gomock.Any()).
					Return(transitionDto.ToggleResponse{}, failure.CapacityExceeded)
			},
			wantStatus: http.StatusConflict,
			wantBody:   "library is full",
		},
		{
			name: "channel busy",
			body: `{"member_id":"m1"}`,
			setupMock: func(engine *transitionMocks.MockEngine) {
				engine.EXPECT().ToggleFromChannel(gomock.Any(), gomock.Any(), "m1", gomock.Any()).
					Return(transitionDto.ToggleResponse{}, failure.ScanInProgress)
			},
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, engine, _ := newRouter(t)
			tt.setupMock(engine)

			req := httptest.NewRequest(http.MethodPost, "/attendance/toggle", strings.NewReader(tt.body))
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderInputChannel, tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestHandler_GetLogs(t *testing.T) {
	t.Run("passes the range through", func(t *testing.T) {
		router, _, report := newRouter(t)

		report.EXPECT().GetLogs(gomock.Any(), dto.GetLogsRequest{Start: "2025-03-01", End: "2025-03-10", MemberID: "m1"}, gomock.Any(), gomock.Any()).
			Return(dto.GetLogsResponse{TotalData: 2}, nil)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/logs?start=2025-03-01&end=2025-03-10&member_id=m1", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_data":2`)
	})

	t.Run("rejects a malformed day", func(t *testing.T) {
		router, _, _ := newRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/logs?start=01-03-2025", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetRoster(t *testing.T) {
	router, _, report := newRouter(t)

	report.EXPECT().Roster(gomock.Any(), "asha", gomock.Any()).
		Return([]dto.RosterEntry{{MemberID: "m1", Name: "Asha", Presence: dto.RosterInside}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/attendance/roster?search=asha", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"presence":"INSIDE"`)
}
