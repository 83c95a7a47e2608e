package service

//go:generate go run go.uber.org/mock/mockgen -source=./gate.go -destination=../mocks/gate_mock.go -package=mocks

import (
	"context"
	"time"

	"seatdesk/config"
	"seatdesk/internal/domains/transition/model"
	"seatdesk/shared"
	"seatdesk/shared/cache"
	"seatdesk/shared/constant"

	"github.com/rs/zerolog/log"
)

// Gate debounces scans per input channel. A channel stays closed while a toggle on it is in
// flight and for the cooldown after it finishes.
type Gate interface {
	Enter(ctx context.Context, channel string) bool
	Leave(ctx context.Context, channel string)
}

type gateImpl struct {
	cache    cache.RedisCache
	lockTTL  time.Duration
	cooldown time.Duration
}

func NewGate(cfg *config.Config, cache cache.RedisCache) Gate {
	return &gateImpl{
		cache:    cache,
		lockTTL:  cfg.Library.ScanLock(),
		cooldown: cfg.Library.ScanCooldown(),
	}
}

// Enter fails open: a cache outage must not stop the front desk.
func (g *gateImpl) Enter(ctx context.Context, channel string) bool {
	ok, err := g.cache.SetNX(ctx, gateKey(channel), timeNow(), g.lockTTL)
	if err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("scan gate unavailable, letting scan through")

		return true
	}

	return ok
}

func (g *gateImpl) Leave(ctx context.Context, channel string) {
	key := gateKey(channel)

	if g.cooldown <= 0 {
		if err := g.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Str("channel", channel).Msg("failed to reopen scan gate")
		}

		return
	}

	if err := g.cache.Expire(ctx, key, g.cooldown); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to start scan cooldown")
	}
}

func gateKey(channel string) string {
	if channel == constant.Empty {
		channel = model.DefaultChannel
	}

	return shared.BuildCacheKey(model.GateKeyPrefix, channel)
}

func timeNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
