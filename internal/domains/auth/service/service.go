package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sync"

	"seatdesk/config"
	"seatdesk/infras/jwt"
	"seatdesk/infras/otel"
	"seatdesk/internal/domains/auth/model/dto"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	"seatdesk/shared/password"
	"seatdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Auth unlocks the front desk. There is a single operator identified by a PIN.
type Auth interface {
	Unlock(ctx context.Context, req dto.UnlockRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
}

type serviceImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT

	pinOnce sync.Once
	pinHash string
	pinErr  error
}

func New(cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Unlock(ctx context.Context, req dto.UnlockRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Unlock")
	defer scope.End()
	defer scope.TraceIfError(err)

	hash, err := s.operatorPIN()
	if err != nil {
		log.Error().Err(err).Msg("failed to prepare operator pin")

		return res, fmt.Errorf("failed to prepare operator pin: %w", err)
	}

	if err := password.Verify(req.PIN, hash); err != nil {
		log.Warn().Msg("unlock attempt with wrong pin")

		return res, failure.Unauthorized("invalid pin")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, constant.OperatorID, constant.RoleOperator)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return dto.NewTokenResponse(tokenPair, timezone.Now()), nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	return dto.NewTokenResponse(tokenPair, timezone.Now()), nil
}

// operatorPIN returns the configured bcrypt hash, or a hash of the factory PIN when none is set.
func (s *serviceImpl) operatorPIN() (string, error) {
	s.pinOnce.Do(func() {
		if s.cfg.Library.PinHash != constant.Empty {
			weak, err := password.Check(s.cfg.Library.PinHash)
			if err != nil {
				s.pinErr = fmt.Errorf("LIBRARY_PIN_HASH: %w", err)

				return
			}

			if weak {
				log.Warn().Msg("LIBRARY_PIN_HASH uses a low bcrypt cost, regenerate it with migrate hash-pin")
			}

			s.pinHash = s.cfg.Library.PinHash

			return
		}

		log.Warn().Msg("LIBRARY_PIN_HASH is not set, the factory pin is in use")

		s.pinHash, s.pinErr = password.Hash(constant.DefaultPIN)
	})

	return s.pinHash, s.pinErr
}
