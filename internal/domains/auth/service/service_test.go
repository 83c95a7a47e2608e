package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"seatdesk/config"
	"seatdesk/infras/jwt"
	jwtMocks "seatdesk/infras/jwt/mocks"
	"seatdesk/infras/otel/mocks"
	"seatdesk/internal/domains/auth/model/dto"
	"seatdesk/internal/domains/auth/service"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	"seatdesk/shared/password"
)

func TestAuthService_Unlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	hash, err := password.Hash("482913")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Library.PinHash = hash

	svc := service.New(cfg, mockOtel, mockJWT)

	tests := []struct {
		name      string
		req       dto.UnlockRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "correct pin",
			req:  dto.UnlockRequest{PIN: "482913"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), constant.OperatorID, constant.RoleOperator).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
			},
		},
		{
			name:      "wrong pin",
			req:       dto.UnlockRequest{PIN: "000000"},
			setupMock: func() {},
			wantCode:  401,
		},
		{
			name: "token generation error",
			req:  dto.UnlockRequest{PIN: "482913"},
			setupMock: func() {
				mockJWT.EXPECT().
					GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("signing failed"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Unlock(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_Unlock_FactoryPIN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(&config.Config{}, mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().
		GenerateTokenPair(gomock.Any(), constant.OperatorID, constant.RoleOperator).
		Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)

	_, err := svc.Unlock(context.Background(), dto.UnlockRequest{PIN: constant.DefaultPIN})
	assert.NoError(t, err)

	_, err = svc.Unlock(context.Background(), dto.UnlockRequest{PIN: "9999"})
	assert.Equal(t, 401, failure.GetCode(err))
}

func TestAuthService_Unlock_MalformedPinHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{}
	cfg.Library.PinHash = "not-a-bcrypt-hash"

	svc := service.New(cfg, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	_, err := svc.Unlock(context.Background(), dto.UnlockRequest{PIN: "1234"})

	require.Error(t, err)
	assert.ErrorIs(t, err, password.ErrMalformedHash)
	assert.Equal(t, 500, failure.GetCode(err))
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(&config.Config{}, mocks.NewOtel(), mockJWT)

	tests := []struct {
		name      string
		req       dto.RefreshTokenRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful refresh",
			req:  dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "valid-refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access-token", RefreshToken: "new-refresh-token"}, nil)
			},
		},
		{
			name: "invalid refresh token",
			req:  dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"},
			setupMock: func() {
				mockJWT.EXPECT().
					RefreshTokens(gomock.Any(), "invalid-refresh-token").
					Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.RefreshToken(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 401, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "new-access-token", res.AccessToken)
			}
		})
	}
}
