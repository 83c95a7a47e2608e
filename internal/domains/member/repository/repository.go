package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"seatdesk/infras/otel"
	"seatdesk/infras/postgres"
	"seatdesk/internal/domains/member/model"
	gDto "seatdesk/shared/dto"
	gRepo "seatdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Member interface {
	Insert(ctx context.Context, model model.Member) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Member, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Member, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Member, error)
	SeatHoldersTx(ctx context.Context, sqltx *sqlx.Tx) ([]model.Member, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Member]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Member {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Member](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SeatHoldersTx returns members that currently hold a seat number, stale or not.
func (r *repositoryImpl) SeatHoldersTx(ctx context.Context, sqltx *sqlx.Tx) ([]model.Member, error) {
	return r.GetAllTx(ctx, sqltx, gDto.QueryParams{}, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSeatNo,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
		},
	})
}
