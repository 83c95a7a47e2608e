package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"seatdesk/infras/otel"
	"seatdesk/infras/postgres"
	"seatdesk/internal/domains/attendance/model"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/logger"
	gRepo "seatdesk/shared/repository"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jmoiron/sqlx"
)

const dialectPostgres = "postgres"

var logColumns = []any{
	model.FieldID,
	model.FieldStudentID,
	model.FieldDate,
	model.FieldStatus,
	model.FieldInTime,
	model.FieldOutTime,
	constant.FieldCreatedAt,
	constant.FieldModifiedAt,
	constant.FieldCreatedBy,
	constant.FieldModifiedBy,
}

type Attendance interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Log) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
	GetEntries(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Entry, error)
	CountEntries(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Latest(ctx context.Context, studentID string, from, to time.Time) (*model.Log, error)
	LatestTx(ctx context.Context, sqltx *sqlx.Tx, studentID string, from, to time.Time) (*model.Log, error)
	LatestStatuses(ctx context.Context, from, to time.Time) ([]model.LatestStatus, error)
	LatestStatusesTx(ctx context.Context, sqltx *sqlx.Tx, from, to time.Time) ([]model.LatestStatus, error)
}

type repositoryImpl struct {
	logs    gRepo.Repository[model.Log]
	entries gRepo.Repository[model.Entry]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Attendance {
	return &repositoryImpl{
		logs:    gRepo.NewRepository[model.Log](model.EntityName, model.TableName, model.FieldID, db, otel),
		entries: gRepo.NewRepository[model.Entry](model.EntityName, model.TableName, model.FieldSeq, db, otel),
		db:      db,
		otel:    otel,
	}
}

func (r *repositoryImpl) InsertTx(ctx context.Context, sqltx *sqlx.Tx, log model.Log) error {
	return r.logs.InsertTx(ctx, sqltx, log) //nolint:wrapcheck
}

func (r *repositoryImpl) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error {
	return r.logs.DeleteTx(ctx, sqltx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetEntries(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Entry, error) {
	return r.entries.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountEntries(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.entries.Count(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) Latest(ctx context.Context, studentID string, from, to time.Time) (*model.Log, error) {
	return r.latest(ctx, r.db.Read, "Latest", studentID, from, to)
}

func (r *repositoryImpl) LatestTx(ctx context.Context, sqltx *sqlx.Tx, studentID string, from, to time.Time) (*model.Log, error) {
	return r.latest(ctx, sqltx, "LatestTx", studentID, from, to)
}

func (r *repositoryImpl) LatestStatuses(ctx context.Context, from, to time.Time) ([]model.LatestStatus, error) {
	return r.latestStatuses(ctx, r.db.Read, "LatestStatuses", from, to)
}

func (r *repositoryImpl) LatestStatusesTx(ctx context.Context, sqltx *sqlx.Tx, from, to time.Time) ([]model.LatestStatus, error) {
	return r.latestStatuses(ctx, sqltx, "LatestStatusesTx", from, to)
}

// latest returns nil when the member has no log in [from, to).
func (r *repositoryImpl) latest(ctx context.Context, q sqlx.QueryerContext, op, studentID string, from, to time.Time) (*model.Log, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, op))
	defer scope.End()

	query, args, err := goqu.Dialect(dialectPostgres).
		From(model.TableName).
		Prepared(true).
		Select(logColumns...).
		Where(
			goqu.C(model.FieldStudentID).Eq(studentID),
			goqu.C(model.FieldDate).Gte(from),
			goqu.C(model.FieldDate).Lt(to),
		).
		Order(goqu.C(model.FieldDate).Desc(), goqu.C(model.FieldSeq).Desc()).
		Limit(1).
		ToSQL()
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build latest log query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var log model.Log

	err = sqlx.GetContext(ctx, q, &log, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get latest log (%s): %w", model.EntityName, err)
	}

	return &log, nil
}

func (r *repositoryImpl) latestStatuses(ctx context.Context, q sqlx.QueryerContext, op string, from, to time.Time) ([]model.LatestStatus, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, op))
	defer scope.End()

	query, args, err := goqu.Dialect(dialectPostgres).
		From(model.TableName).
		Prepared(true).
		Select(model.FieldStudentID, model.FieldStatus).
		Distinct(goqu.C(model.FieldStudentID)).
		Where(
			goqu.C(model.FieldDate).Gte(from),
			goqu.C(model.FieldDate).Lt(to),
		).
		Order(
			goqu.C(model.FieldStudentID).Asc(),
			goqu.C(model.FieldDate).Desc(),
			goqu.C(model.FieldSeq).Desc(),
		).
		ToSQL()
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build latest statuses query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	statuses := []model.LatestStatus{}

	if err = sqlx.SelectContext(ctx, q, &statuses, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get latest statuses (%s): %w", model.EntityName, err)
	}

	return statuses, nil
}
