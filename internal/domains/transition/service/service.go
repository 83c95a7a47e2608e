package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"seatdesk/infras/metrics"
	"seatdesk/infras/otel"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	attendanceRepository "seatdesk/internal/domains/attendance/repository"
	attendanceService "seatdesk/internal/domains/attendance/service"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	roomModel "seatdesk/internal/domains/room/model"
	roomRepository "seatdesk/internal/domains/room/repository"
	seatService "seatdesk/internal/domains/seat/service"
	"seatdesk/internal/domains/transition/model"
	"seatdesk/internal/domains/transition/model/dto"
	"seatdesk/shared"
	"seatdesk/shared/cache"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	gModel "seatdesk/shared/model"
	"seatdesk/shared/timezone"
	"seatdesk/shared/transaction"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Engine flips a member between In and Out, one scan at a time.
type Engine interface {
	Toggle(ctx context.Context, memberID string, eventTime time.Time) (dto.ToggleResponse, error)
	ToggleFromChannel(ctx context.Context, channel, memberID string, eventTime time.Time) (dto.ToggleResponse, error)
}

type serviceImpl struct {
	tx         transaction.Transactor
	memberRepo memberRepository.Member
	roomRepo   roomRepository.Room
	logRepo    attendanceRepository.Attendance
	presence   attendanceService.Presence
	allocator  seatService.Allocator
	gate       Gate
	cache      cache.RedisCache
	metrics    metrics.Metrics
	otel       otel.Otel
}

func New(
	tx transaction.Transactor,
	memberRepo memberRepository.Member,
	roomRepo roomRepository.Room,
	logRepo attendanceRepository.Attendance,
	presence attendanceService.Presence,
	allocator seatService.Allocator,
	gate Gate,
	cache cache.RedisCache,
	metrics metrics.Metrics,
	otel otel.Otel,
) Engine {
	return &serviceImpl{
		tx:         tx,
		memberRepo: memberRepo,
		roomRepo:   roomRepo,
		logRepo:    logRepo,
		presence:   presence,
		allocator:  allocator,
		gate:       gate,
		cache:      cache,
		metrics:    metrics,
		otel:       otel,
	}
}

// ToggleFromChannel ignores a scan while an earlier one on the same channel is still in flight
// or cooling down.
func (s *serviceImpl) ToggleFromChannel(ctx context.Context, channel, memberID string, eventTime time.Time) (res dto.ToggleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ToggleFromChannel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if channel == constant.Empty {
		channel = model.DefaultChannel
	}

	scope.SetAttribute("scan.channel", channel)

	if !s.gate.Enter(ctx, channel) {
		s.metrics.ObserveToggle(metrics.OutcomeBusy, 0)
		log.Info().Str("channel", channel).Str("member_id", memberID).Msg("scan ignored, channel busy")

		return res, failure.ScanInProgress
	}

	defer s.gate.Leave(context.WithoutCancel(ctx), channel)

	return s.Toggle(ctx, memberID, eventTime)
}

// Toggle resolves today's state, flips it, moves the seat and appends the log in one
// transaction. MemberNotFound and CapacityExceeded leave every record untouched.
func (s *serviceImpl) Toggle(ctx context.Context, memberID string, eventTime time.Time) (res dto.ToggleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Toggle")
	defer scope.End()
	defer scope.TraceIfError(err)

	started := time.Now()
	defer func() {
		s.metrics.ObserveToggle(outcome(res, err), time.Since(started))
	}()

	if eventTime.IsZero() {
		eventTime = timezone.Now()
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, sqltx *sqlx.Tx) error {
		var txErr error

		res, txErr = s.toggle(ctx, sqltx, memberID, eventTime)

		return txErr
	})
	if err != nil {
		res = dto.ToggleResponse{}

		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err
		}

		log.Error().Err(err).Str("member_id", memberID).Msg("failed to toggle attendance")

		return res, fmt.Errorf("failed to toggle attendance: %w", err)
	}

	log.Info().Str("member_id", memberID).Str("status", res.Status).Msg("attendance toggled")

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(memberModel.CacheGetMember, memberID)); err != nil {
			log.Error().Err(err).Msg("failed to delete member cache")
		}

		shared.InvalidateCaches(c, s.cache, memberModel.CacheGetAllMember)
	}()

	return res, nil
}

func (s *serviceImpl) toggle(ctx context.Context, sqltx *sqlx.Tx, memberID string, eventTime time.Time) (res dto.ToggleResponse, err error) {
	if err = s.tx.Lock(ctx, sqltx, shared.BuildCacheKey(model.LockKeyPrefix, memberID)); err != nil {
		return res, err
	}

	member, err := s.memberRepo.GetTx(ctx, sqltx, shared.FilterByID(memberID, memberModel.FieldID, memberModel.TableName))
	if err != nil {
		return res, fmt.Errorf("failed to get member: %w", err)
	}

	if member.ID == constant.Empty {
		return res, failure.MemberNotFound
	}

	presence, err := s.presence.ResolveTx(ctx, sqltx, memberID, eventTime)
	if err != nil {
		return res, err
	}

	next := attendanceModel.Flip(presence.State)

	res = dto.ToggleResponse{
		MemberID:   member.ID,
		MemberName: member.Name,
		Status:     next,
	}
	res.SetEventTime(eventTime)

	switch {
	case member.IsReserved():
		res.RoomID, res.SeatNo = member.RoomID, member.SeatNo
		res.RoomName = s.roomName(ctx, member.RoomID)
	case next == attendanceModel.StatusIn:
		assignment, ok, err := s.allocator.AssignSeat(ctx, sqltx, member, eventTime)
		if err != nil {
			return res, err
		}

		if !ok {
			return res, failure.CapacityExceeded
		}

		res.RoomID, res.RoomName, res.SeatNo = &assignment.RoomID, &assignment.RoomName, &assignment.SeatNo
	default:
		if err = s.allocator.ReleaseSeat(ctx, sqltx, member); err != nil {
			return res, err
		}
	}

	if err = s.logRepo.InsertTx(ctx, sqltx, newLog(ctx, memberID, next, eventTime)); err != nil {
		return res, fmt.Errorf("failed to append attendance log: %w", err)
	}

	return res, nil
}

// roomName is display only; a lookup failure leaves it empty.
func (s *serviceImpl) roomName(ctx context.Context, roomID *string) *string {
	if roomID == nil {
		return nil
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(*roomID, roomModel.FieldID, roomModel.TableName), roomModel.FieldName)
	if err != nil || room.Name == constant.Empty {
		return nil
	}

	return &room.Name
}

func newLog(ctx context.Context, memberID, status string, eventTime time.Time) attendanceModel.Log {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	now := timezone.Now()
	entry := attendanceModel.Log{
		ID:        uuid.NewString(),
		StudentID: memberID,
		Date:      eventTime,
		Status:    status,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if status == attendanceModel.StatusIn {
		entry.InTime = &eventTime
	} else {
		entry.OutTime = &eventTime
	}

	return entry
}

func outcome(res dto.ToggleResponse, err error) string {
	switch {
	case err == nil && res.Status == attendanceModel.StatusIn:
		return metrics.OutcomeIn
	case err == nil:
		return metrics.OutcomeOut
	case errors.Is(err, failure.MemberNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, failure.CapacityExceeded):
		return metrics.OutcomeCapacityExceeded
	default:
		return metrics.OutcomeError
	}
}
