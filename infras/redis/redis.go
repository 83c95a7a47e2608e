package redis

import (
	"context"
	"net"
	"seatdesk/config"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	dialTimeout = 3 * time.Second
	pingTimeout = 3 * time.Second
)

// New returns a client even when the first ping fails. The scan gate,
// cache and rate limiter all treat redis errors as a miss, so the desk keeps
// accepting check-ins while redis is down and the client reconnects on its own.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary
	addr := net.JoinHostPort(primary.Host, primary.Port)

	client := goRedis.NewClient(&goRedis.Options{
		Addr:        addr,
		Password:    primary.Password,
		DB:          primary.DB,
		DialTimeout: dialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().
			Err(err).
			Str("addr", addr).
			Msg("Redis is unreachable, scan gate and cache are degraded until it recovers")

		return client
	}

	log.Info().
		Int("db", primary.DB).
		Str("addr", addr).
		Msg("Connected to Redis")

	return client
}
