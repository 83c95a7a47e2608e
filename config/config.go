package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const (
	defaultScanLock         = 10 * time.Second
	defaultOccupancyRefresh = time.Minute
)

// PostgresNode is one side of the read/write split.
type PostgresNode struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type CORS struct {
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	Enable           bool     `envconfig:"ENABLE"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
}

// Library holds the front desk settings.
type Library struct {
	PinHash                 string `envconfig:"PIN_HASH"`
	ScanCooldownMS          int    `envconfig:"SCAN_COOLDOWN_MS"          default:"2000"`
	ScanLockSeconds         int    `envconfig:"SCAN_LOCK_SECONDS"         default:"10"`
	OccupancyRefreshSeconds int    `envconfig:"OCCUPANCY_REFRESH_SECONDS" default:"60"`
	DefaultRoomCols         int    `envconfig:"DEFAULT_ROOM_COLS"         default:"5"`
}

// ScanLock is how long a channel stays locked while a scan is processed.
func (l Library) ScanLock() time.Duration {
	if l.ScanLockSeconds <= 0 {
		return defaultScanLock
	}

	return time.Duration(l.ScanLockSeconds) * time.Second
}

// ScanCooldown may be zero, which reopens the channel as soon as a scan ends.
func (l Library) ScanCooldown() time.Duration {
	if l.ScanCooldownMS <= 0 {
		return 0
	}

	return time.Duration(l.ScanCooldownMS) * time.Millisecond
}

func (l Library) OccupancyRefresh() time.Duration {
	if l.OccupancyRefreshSeconds <= 0 {
		return defaultOccupancyRefresh
	}

	return time.Duration(l.OccupancyRefreshSeconds) * time.Second
}

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name        string      `envconfig:"NAME"     default:"seatdesk"`
		Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
		APIKey      string      `envconfig:"API_KEY"`
		CORS        CORS        `envconfig:"CORS"`
		RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"     default:"6379"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int          `envconfig:"MAX_RETRY"       default:"5"`
			RetryWaitTime  int          `envconfig:"RETRY_WAIT_TIME" default:"3"`
			MigrationTable string       `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			AutoMigrate    bool         `envconfig:"AUTO_MIGRATE"`
			Prefix         string       `envconfig:"PREFIX"`
			Read           PostgresNode `envconfig:"READ"`
			Write          PostgresNode `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Library Library `envconfig:"LIBRARY"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	ErrMissingJWTSecret = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required")
	ErrSameJWTSecret    = errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	ErrNoWriteDatabase  = errors.New("DB_POSTGRES_WRITE_HOST is required")
)

// Validate reports settings the HTTP server cannot start without.
// Init does not call it so that tooling can load a partial environment.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, ErrMissingJWTSecret)
	} else if c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, ErrSameJWTSecret)
	}

	if c.DB.Postgres.Write.Host == "" {
		errs = append(errs, ErrNoWriteDatabase)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("no .env file, using the process environment")
		} else {
			log.Info().Msg("loaded .env into the environment")
		}

		if err = envconfig.Process("", &conf); err != nil {
			err = fmt.Errorf("processing environment: %w", err)

			return
		}

		initialized = true

		log.Info().Str("env", conf.Server.Env).Msg("configuration loaded")
	})

	return err
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
