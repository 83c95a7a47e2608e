package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"seatdesk/config"
	"seatdesk/infras/otel"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	"seatdesk/internal/domains/room/model"
	"seatdesk/internal/domains/room/model/dto"
	"seatdesk/internal/domains/room/repository"
	"seatdesk/shared"
	"seatdesk/shared/cache"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"
	"seatdesk/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Room
	memberRepo memberRepository.Member
	tx         transaction.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Room, memberRepo memberRepository.Member, tx transaction.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		tx:         tx,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room := req.ToModel(user, s.cfg.Library.DefaultRoomCols)

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, model.CacheCountRoom)
	}()

	return res, nil
}

// GetAll lists rooms in insertion order, which is also the order the allocator walks them.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.SortBy = constant.FieldCreatedAt
	req.SortDir = gDto.SortDirAsc

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(model.CacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// Update refuses to shrink a room below a seat that is still held.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	capacity, cols := current.Capacity, current.Cols
	if req.Capacity != 0 {
		capacity = req.Capacity
	}

	if req.Cols != 0 {
		cols = req.Cols
	}

	if capacity < current.Capacity {
		held, err := s.memberRepo.Exist(ctx, seatsBeyond(id, capacity))
		if err != nil {
			log.Error().Err(err).Msg("failed to check held seats")

			return fmt.Errorf("failed to check held seats: %w", err)
		}

		if held {
			return failure.Conflict(fmt.Sprintf("a seat above %d is still held", capacity)) // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if req.Capacity != 0 || req.Cols != 0 {
		updatedFields[model.FieldRows] = model.Layout(capacity, cols)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return fmt.Errorf("failed to update room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, model.CacheCountRoom)
	}()

	return nil
}

// Delete refuses while a Reserved member is bound to the room. General members lose their
// seat and room preference with it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	reserved, err := s.memberRepo.Exist(ctx, reservedIn(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check reserved members")

		return fmt.Errorf("failed to check reserved members: %w", err)
	}

	if reserved {
		return failure.Conflict("room still has reserved members") // nolint:wrapcheck
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		unbind := map[string]any{
			memberModel.FieldRoomID:  nil,
			memberModel.FieldSeatNo:  nil,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}

		if err := s.memberRepo.UpdateTx(ctx, sqltx, unbind, gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					ArgName:  "where_room_id",
					Field:    memberModel.FieldRoomID,
					Value:    id,
					Operator: gDto.FilterOperatorEq,
					Table:    memberModel.TableName,
				},
			},
		}); err != nil {
			return fmt.Errorf("failed to unbind members: %w", err)
		}

		return s.repo.DeleteTx(ctx, sqltx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGetRoom, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, model.CacheCountRoom)
		shared.InvalidateCaches(c, s.cache, memberModel.CacheGetMember)
		shared.InvalidateCaches(c, s.cache, memberModel.CacheGetAllMember)
	}()

	return nil
}

func seatsBeyond(roomID string, capacity int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    memberModel.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    memberModel.TableName,
			},
			gDto.Filter{
				Field:    memberModel.FieldSeatNo,
				Value:    capacity + 1,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    memberModel.TableName,
			},
		},
	}
}

func reservedIn(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    memberModel.FieldRoomID,
				Value:    roomID,
				Operator: gDto.FilterOperatorEq,
				Table:    memberModel.TableName,
			},
			gDto.Filter{
				Field:    memberModel.FieldSeatType,
				Value:    memberModel.SeatTypeReserved,
				Operator: gDto.FilterOperatorEq,
				Table:    memberModel.TableName,
			},
		},
	}
}
