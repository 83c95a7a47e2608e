package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatdesk/infras/metrics"
	"seatdesk/infras/otel"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	attendanceService "seatdesk/internal/domains/attendance/service"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	"seatdesk/internal/domains/occupancy/model"
	"seatdesk/internal/domains/occupancy/model/dto"
	roomModel "seatdesk/internal/domains/room/model"
	roomRepository "seatdesk/internal/domains/room/repository"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Occupancy is a read-only projection of seats. Nothing here writes.
type Occupancy interface {
	GetSeatStatus(ctx context.Context, roomID string, now time.Time) (dto.RoomStatusResponse, error)
	Summary(ctx context.Context, now time.Time) (dto.SummaryResponse, error)
	Watch(ctx context.Context, roomID string, interval time.Duration) (<-chan dto.RoomStatusResponse, error)
}

type serviceImpl struct {
	roomRepo   roomRepository.Room
	memberRepo memberRepository.Member
	presence   attendanceService.Presence
	metrics    metrics.Metrics
	otel       otel.Otel
}

func New(roomRepo roomRepository.Room, memberRepo memberRepository.Member, presence attendanceService.Presence, metrics metrics.Metrics, otel otel.Otel) Occupancy {
	return &serviceImpl{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
		presence:   presence,
		metrics:    metrics,
		otel:       otel,
	}
}

func (s *serviceImpl) GetSeatStatus(ctx context.Context, roomID string, now time.Time) (res dto.RoomStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSeatStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	var (
		room    roomModel.Room
		members []memberModel.Member
		inside  attendanceModel.InsideSet
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		room, err = s.roomRepo.Get(gctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		members, err = s.memberRepo.GetAll(gctx, gDto.QueryParams{}, seatHolders(roomID))
		if err != nil {
			return fmt.Errorf("failed to get seat holders: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		inside, err = s.presence.InsideSet(gctx, now)

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to load seat status")

		return res, fmt.Errorf("failed to load seat status: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	seats, counts := model.Project(room, members, inside, now)
	s.metrics.SetOccupiedSeats(room.ID, counts.Occupied())

	res.FromModel(room, seats, counts, now)

	return res, nil
}

// Summary counts every room from one snapshot and refreshes the occupied-seat gauge.
func (s *serviceImpl) Summary(ctx context.Context, now time.Time) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	var (
		rooms   []roomModel.Room
		members []memberModel.Member
		inside  attendanceModel.InsideSet
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		rooms, err = s.roomRepo.GetAll(gctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get rooms: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		members, err = s.memberRepo.GetAll(gctx, gDto.QueryParams{}, seatHolders(constant.Empty))
		if err != nil {
			return fmt.Errorf("failed to get seat holders: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		var err error

		inside, err = s.presence.InsideSet(gctx, now)

		return err
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load occupancy summary")

		return res, fmt.Errorf("failed to load occupancy summary: %w", err)
	}

	res.Rooms = make([]dto.RoomSummary, 0, len(rooms))
	res.EvaluatedAt = timezone.Format(now, constant.DateFormat)

	for _, room := range rooms {
		_, counts := model.Project(room, members, inside, now)
		s.metrics.SetOccupiedSeats(room.ID, counts.Occupied())

		res.Add(room, counts)
	}

	return res, nil
}

// Watch sends the room's status right away and then every interval until ctx ends, when the
// channel is closed. interval is clamped to MaxRefresh. A failed re-evaluation is skipped.
func (s *serviceImpl) Watch(ctx context.Context, roomID string, interval time.Duration) (<-chan dto.RoomStatusResponse, error) {
	if interval <= 0 || interval > model.MaxRefresh {
		interval = model.MaxRefresh
	}

	first, err := s.GetSeatStatus(ctx, roomID, timezone.Now())
	if err != nil {
		return nil, err
	}

	updates := make(chan dto.RoomStatusResponse, 1)
	updates <- first

	go func() {
		defer close(updates)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			status, err := s.GetSeatStatus(ctx, roomID, timezone.Now())
			if err != nil {
				if ctx.Err() != nil {
					return
				}

				log.Warn().Err(err).Str("room_id", roomID).Msg("skipping occupancy refresh")

				continue
			}

			select {
			case updates <- status:
			case <-ctx.Done():
				return
			}
		}
	}()

	return updates, nil
}

// seatHolders matches active members holding a seat, optionally in one room.
func seatHolders(roomID string) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    memberModel.FieldStatus,
				Value:    memberModel.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    memberModel.TableName,
			},
			gDto.Filter{
				Field:    memberModel.FieldSeatNo,
				Operator: gDto.FilterIsNotNull,
				Table:    memberModel.TableName,
			},
		},
	}

	if roomID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    memberModel.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    memberModel.TableName,
		})
	}

	return filter
}
