package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"seatdesk/infras/otel"
	"seatdesk/infras/postgres"
	"seatdesk/internal/domains/room/model"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	gRepo "seatdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	AllocationOrderTx(ctx context.Context, sqltx *sqlx.Tx) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AllocationOrderTx lists every room oldest first. The allocator walks rooms
// in this order after the member's preferred room.
func (r *repositoryImpl) AllocationOrderTx(ctx context.Context, sqltx *sqlx.Tx) ([]model.Room, error) {
	return r.GetAllTx(ctx, sqltx, gDto.QueryParams{ //nolint:wrapcheck
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
}
