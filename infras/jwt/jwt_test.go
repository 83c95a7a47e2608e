package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seatdesk/config"
)

func newService(at time.Time) *Service {
	cfg := &config.Config{}
	cfg.App.Name = "seatdesk"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 10

	return &Service{config: cfg, now: func() time.Time { return at }}
}

func TestService_TokenPair(t *testing.T) {
	issued := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	svc := newService(issued)

	pair, err := svc.GenerateTokenPair(context.Background(), "operator", "operator")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(600), pair.ExpiresIn)

	claims, err := svc.ValidateToken(context.Background(), pair.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.UserID)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, issued.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.Add(12*time.Hour).Unix(), mustRefreshExpiry(t, svc, pair.RefreshToken))

	_, err = svc.ValidateToken(context.Background(), pair.AccessToken, RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken, "access token is signed with the access secret")

	_, err = svc.ValidateToken(context.Background(), pair.RefreshToken, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func mustRefreshExpiry(t *testing.T, svc *Service, token string) int64 {
	t.Helper()

	claims, err := svc.ValidateToken(context.Background(), token, RefreshToken)
	require.NoError(t, err)

	return claims.ExpiresAt.Unix()
}

func TestService_ValidateToken_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

	pair, err := newService(issued).GenerateTokenPair(context.Background(), "operator", "operator")
	require.NoError(t, err)

	later := newService(issued.Add(11 * time.Minute))

	_, err = later.ValidateToken(context.Background(), pair.AccessToken, AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)

	refreshed, err := later.RefreshTokens(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, refreshed.AccessToken)
}

func TestService_ValidateToken_Rejects(t *testing.T) {
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	svc := newService(now)

	claims := Claims{
		UserID: "operator",
		Role:   "operator",
		Type:   AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    "seatdesk",
		},
	}

	foreign := claims
	foreign.Issuer = "someone-else"

	tests := []struct {
		name  string
		token func() string
		want  error
	}{
		{
			name: "wrong issuer",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, foreign).SignedString([]byte("access-secret"))

				return s
			},
			want: ErrInvalidToken,
		},
		{
			name: "other hmac algorithm",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))

				return s
			},
			want: ErrInvalidToken,
		},
		{
			name: "unsigned",
			token: func() string {
				s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)

				return s
			},
			want: ErrInvalidToken,
		},
		{
			name:  "garbage",
			token: func() string { return "not.a.token" },
			want:  ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(context.Background(), tt.token(), AccessToken)

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = ExtractTokenFromHeader("Basic dXNlcg==")
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, err = ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidHeader)
}
