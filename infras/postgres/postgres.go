package postgres

//nolint:revive
import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"seatdesk/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxIdleTime   = 5 * time.Minute
)

// Connection holds the read and write pools. Attendance writes and the
// seat allocator always go through Write so they see their own rows.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

type target struct {
	name     string
	username string
	password string
	host     string
	port     string
	dbName   string
	sslMode  string
	timezone string
}

func New(config *config.Config) *Connection {
	read := config.DB.Postgres.Read
	write := config.DB.Postgres.Write

	return &Connection{
		Read: connect(target{
			name:     "read",
			username: read.Username,
			password: read.Password,
			host:     read.Host,
			port:     read.Port,
			dbName:   getDBName(config, read.Name),
			sslMode:  read.SSLMode,
			timezone: sessionTimezone(read.Timezone, config.App.Timezone),
		}, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: connect(target{
			name:     "write",
			username: write.Username,
			password: write.Password,
			host:     write.Host,
			port:     write.Port,
			dbName:   getDBName(config, write.Name),
			sslMode:  write.SSLMode,
			timezone: sessionTimezone(write.Timezone, config.App.Timezone),
		}, config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

// Ping checks both pools.
func (c *Connection) Ping(ctx context.Context) error {
	if c == nil || c.Read == nil || c.Write == nil {
		return errors.New("database is not connected")
	}

	if err := c.Write.PingContext(ctx); err != nil {
		return fmt.Errorf("write pool: %w", err)
	}

	if err := c.Read.PingContext(ctx); err != nil {
		return fmt.Errorf("read pool: %w", err)
	}

	return nil
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

func getDBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// sessionTimezone keeps CURRENT_DATE in SQL on the same calendar as the app.
func sessionTimezone(pool, app string) string {
	if pool != "" {
		return pool
	}

	return app
}

func (t target) descriptor() string {
	query := url.Values{}
	query.Set("sslmode", t.sslMode)

	if t.timezone != "" {
		query.Set("timezone", t.timezone)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(t.username, t.password),
		Host:     net.JoinHostPort(t.host, t.port),
		Path:     t.dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

func connect(t target, maxRetry, waitTime int) *sqlx.DB {
	attempts := max(maxRetry, 1)

	for attempt := range attempts {
		sqlDB, err := sqlx.Connect("postgres", t.descriptor())
		if err == nil {
			log.
				Info().
				Str("name", t.name).
				Str("host", t.host).
				Str("port", t.port).
				Str("dbName", t.dbName).
				Str("timezone", t.timezone).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxIdleTime(postgresConnMaxIdleTime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", t.name).
			Str("host", t.host).
			Str("port", t.port).
			Str("dbName", t.dbName).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Str("name", t.name).Int("attempts", attempts).Msg("Giving up connecting to database")

	return nil
}
