package transaction

//go:generate go run go.uber.org/mock/mockgen -source=./transaction.go -destination=./mocks/transaction_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"seatdesk/infras/otel"
	"seatdesk/infras/postgres"
	"seatdesk/shared/constant"
	"seatdesk/shared/logger"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const queryAdvisoryLock = "SELECT pg_advisory_xact_lock(hashtext($1))"

type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) error
	Lock(ctx context.Context, tx *sqlx.Tx, key string) error
}

type transactorImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

// WithinTx runs fn on the write pool. fn's error or a panic rolls everything back.
func (t *transactorImpl) WithinTx(ctx context.Context, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelTxScopeName, constant.OtelTxScopeName+".WithinTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")

			return errors.Join(err, rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Lock takes a transaction-scoped advisory lock; it is released on commit or rollback.
func (t *transactorImpl) Lock(ctx context.Context, tx *sqlx.Tx, key string) (err error) {
	ctx, scope := t.otel.NewScope(ctx, constant.OtelTxScopeName, constant.OtelTxScopeName+".Lock")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("lock.key", key)

	if _, err = tx.ExecContext(ctx, queryAdvisoryLock, key); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}

	return nil
}
