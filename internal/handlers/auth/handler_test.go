package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatdesk/infras/otel/mocks"
	authMocks "seatdesk/internal/domains/auth/mocks"
	"seatdesk/internal/domains/auth/model/dto"
	"seatdesk/internal/handlers/auth"
	"seatdesk/shared/failure"
)

func TestHandler_Tokens(t *testing.T) {
	tokens := dto.TokenResponse{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name       string
		path       string
		body       string
		setupMock  func(svc *authMocks.MockAuth)
		wantStatus int
		wantBody   string
	}{
		{
			name: "unlock with the right pin",
			path: "/auth/unlock",
			body: `{"pin":"1234"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Unlock(gomock.Any(), dto.UnlockRequest{PIN: "1234"}).Return(tokens, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"access_token":"a"`,
		},
		{
			name: "unlock with the wrong pin",
			path: "/auth/unlock",
			body: `{"pin":"9999"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().Unlock(gomock.Any(), gomock.Any()).Return(dto.TokenResponse{}, failure.Unauthorized("invalid pin"))
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid pin",
		},
		{
			name:       "pin with letters never reaches the service",
			path:       "/auth/unlock",
			body:       `{"pin":"12ab"}`,
			setupMock:  func(*authMocks.MockAuth) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "pin must contain digits only",
		},
		{
			name: "refresh",
			path: "/auth/refresh",
			body: `{"refresh_token":"r"}`,
			setupMock: func(svc *authMocks.MockAuth) {
				svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "r"}).Return(tokens, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"token_type":"Bearer"`,
		},
		{
			name:       "refresh without a token",
			path:       "/auth/refresh",
			body:       `{}`,
			setupMock:  func(*authMocks.MockAuth) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "refresh_token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := authMocks.NewMockAuth(ctrl)
			tt.setupMock(svc)

			handler := auth.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
