package dto

import (
	"seatdesk/infras/jwt"
	"time"
)

type UnlockRequest struct {
	PIN string `json:"pin" validate:"required,numeric,min=4,max=12"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse answers both unlock and refresh. ExpiresIn is in seconds and
// refers to the access token.
type TokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresIn    int64     `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
}

const tokenTypeBearer = "Bearer"

// NewTokenResponse stamps ExpiresAt relative to issuedAt.
func NewTokenResponse(pair *jwt.TokenPair, issuedAt time.Time) TokenResponse {
	return TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    pair.ExpiresIn,
		ExpiresAt:    issuedAt.Add(time.Duration(pair.ExpiresIn) * time.Second),
	}
}
