package service

//go:generate go run go.uber.org/mock/mockgen -source=./presence.go -destination=../mocks/presence_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatdesk/infras/otel"
	"seatdesk/internal/domains/attendance/model"
	"seatdesk/internal/domains/attendance/repository"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	"seatdesk/shared/failure"
	"seatdesk/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Presence derives in/out state from the day's logs. Nothing about presence is stored elsewhere.
type Presence interface {
	Resolve(ctx context.Context, memberID string, asOf time.Time) (model.Presence, error)
	ResolveTx(ctx context.Context, sqltx *sqlx.Tx, memberID string, asOf time.Time) (model.Presence, error)
	InsideSet(ctx context.Context, asOf time.Time) (model.InsideSet, error)
	InsideSetTx(ctx context.Context, sqltx *sqlx.Tx, asOf time.Time) (model.InsideSet, error)
}

type presenceImpl struct {
	repo       repository.Attendance
	memberRepo memberRepository.Member
	otel       otel.Otel
}

func NewPresence(repo repository.Attendance, memberRepo memberRepository.Member, otel otel.Otel) Presence {
	return &presenceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		otel:       otel,
	}
}

func (s *presenceImpl) Resolve(ctx context.Context, memberID string, asOf time.Time) (res model.Presence, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.memberRepo.Exist(ctx, shared.FilterByID(memberID, memberModel.FieldID, memberModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check member existence")

		return res, fmt.Errorf("failed to check member existence: %w", err)
	}

	if !exist {
		return res, failure.MemberNotFound
	}

	start, next := timezone.DayBounds(asOf)

	last, err := s.repo.Latest(ctx, memberID, start, next)
	if err != nil {
		log.Error().Err(err).Str("member_id", memberID).Msg("failed to resolve presence")

		return res, fmt.Errorf("failed to resolve presence: %w", err)
	}

	return presenceFrom(memberID, last), nil
}

// ResolveTx reads inside sqltx so the caller sees its own writes. The member is assumed to exist.
func (s *presenceImpl) ResolveTx(ctx context.Context, sqltx *sqlx.Tx, memberID string, asOf time.Time) (res model.Presence, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ResolveTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, next := timezone.DayBounds(asOf)

	last, err := s.repo.LatestTx(ctx, sqltx, memberID, start, next)
	if err != nil {
		log.Error().Err(err).Str("member_id", memberID).Msg("failed to resolve presence")

		return res, fmt.Errorf("failed to resolve presence: %w", err)
	}

	return presenceFrom(memberID, last), nil
}

func (s *presenceImpl) InsideSet(ctx context.Context, asOf time.Time) (res model.InsideSet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InsideSet")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, next := timezone.DayBounds(asOf)

	statuses, err := s.repo.LatestStatuses(ctx, start, next)
	if err != nil {
		log.Error().Err(err).Msg("failed to load inside set")

		return nil, fmt.Errorf("failed to load inside set: %w", err)
	}

	return insideSetFrom(statuses), nil
}

func (s *presenceImpl) InsideSetTx(ctx context.Context, sqltx *sqlx.Tx, asOf time.Time) (res model.InsideSet, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InsideSetTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, next := timezone.DayBounds(asOf)

	statuses, err := s.repo.LatestStatusesTx(ctx, sqltx, start, next)
	if err != nil {
		log.Error().Err(err).Msg("failed to load inside set")

		return nil, fmt.Errorf("failed to load inside set: %w", err)
	}

	return insideSetFrom(statuses), nil
}

func presenceFrom(memberID string, last *model.Log) model.Presence {
	if last == nil {
		return model.Presence{MemberID: memberID, State: model.StatusOut}
	}

	return model.Presence{MemberID: memberID, State: last.Status, Last: last}
}

func insideSetFrom(statuses []model.LatestStatus) model.InsideSet {
	inside := make(model.InsideSet, len(statuses))

	for _, status := range statuses {
		if status.Status == model.StatusIn {
			inside.Add(status.StudentID)
		}
	}

	return inside
}
