package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatdesk/infras/otel"
	"seatdesk/internal/domains/attendance/model"
	"seatdesk/internal/domains/attendance/model/dto"
	"seatdesk/internal/domains/attendance/repository"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/failure"

	"github.com/rs/zerolog/log"
)

// Report answers read-only questions about the attendance log.
type Report interface {
	GetLogs(ctx context.Context, req dto.GetLogsRequest, params gDto.QueryParams, now time.Time) (dto.GetLogsResponse, error)
	Roster(ctx context.Context, search string, now time.Time) ([]dto.RosterEntry, error)
}

type serviceImpl struct {
	repo       repository.Attendance
	memberRepo memberRepository.Member
	presence   Presence
	otel       otel.Otel
}

func New(repo repository.Attendance, memberRepo memberRepository.Member, presence Presence, otel otel.Otel) Report {
	return &serviceImpl{
		repo:       repo,
		memberRepo: memberRepo,
		presence:   presence,
		otel:       otel,
	}
}

// GetLogs lists logs in the requested day range, newest first.
func (s *serviceImpl) GetLogs(ctx context.Context, req dto.GetLogsRequest, params gDto.QueryParams, now time.Time) (res dto.GetLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetLogs")
	defer scope.End()
	defer scope.TraceIfError(err)

	from, to, err := req.Window(now)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !from.Before(to) {
		return res, failure.BadRequestFromString("start must not be after end") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				ArgName:  "date_from",
				Field:    model.FieldDate,
				Value:    from,
				Operator: gDto.FilterOperatorGreaterEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldDate,
				Value:    to,
				Operator: gDto.FilterOperatorLess,
				Table:    model.TableName,
			},
		},
	}

	if req.MemberID != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldStudentID,
			Value:    req.MemberID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	params.SortBy = fmt.Sprintf("%s.%s", model.TableName, model.FieldDate)
	params.SortDir = gDto.SortDirDesc

	total, err := s.repo.CountEntries(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count attendance logs")

		return res, fmt.Errorf("failed to count attendance logs: %w", err)
	}

	entries, err := s.repo.GetEntries(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get attendance logs")

		return res, fmt.Errorf("failed to get attendance logs: %w", err)
	}

	res.FromModels(entries, total, params.Limit)

	return res, nil
}

// Roster lists active members with whether they are inside right now.
func (s *serviceImpl) Roster(ctx context.Context, search string, now time.Time) (res []dto.RosterEntry, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Roster")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    memberModel.FieldStatus,
				Value:    memberModel.StatusActive,
				Operator: gDto.FilterOperatorEq,
				Table:    memberModel.TableName,
			},
		},
	}

	if search != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					ArgName:  "search_name",
					Field:    memberModel.FieldName,
					Value:    search,
					Operator: gDto.FilterOperatorLike,
					Table:    memberModel.TableName,
				},
				gDto.Filter{
					ArgName:  "search_mobile",
					Field:    memberModel.FieldMobile,
					Value:    search,
					Operator: gDto.FilterOperatorLike,
					Table:    memberModel.TableName,
				},
			},
		})
	}

	members, err := s.memberRepo.GetAll(ctx, gDto.QueryParams{SortBy: memberModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get roster members")

		return nil, fmt.Errorf("failed to get roster members: %w", err)
	}

	inside, err := s.presence.InsideSet(ctx, now)
	if err != nil {
		return nil, err
	}

	res = make([]dto.RosterEntry, len(members))
	for i, member := range members {
		res[i].FromModel(member, inside)
	}

	return res, nil
}
