package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"seatdesk/infras/otel"
	attendanceModel "seatdesk/internal/domains/attendance/model"
	attendanceService "seatdesk/internal/domains/attendance/service"
	memberModel "seatdesk/internal/domains/member/model"
	memberRepository "seatdesk/internal/domains/member/repository"
	roomModel "seatdesk/internal/domains/room/model"
	roomRepository "seatdesk/internal/domains/room/repository"
	"seatdesk/internal/domains/seat/model"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	"seatdesk/shared/timezone"
	"seatdesk/shared/transaction"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Allocator owns room_id/seat_no of General members. Reserved members are never touched.
type Allocator interface {
	AssignSeat(ctx context.Context, sqltx *sqlx.Tx, member memberModel.Member, asOf time.Time) (model.Assignment, bool, error)
	ReleaseSeat(ctx context.Context, sqltx *sqlx.Tx, member memberModel.Member) error
}

type allocatorImpl struct {
	memberRepo memberRepository.Member
	roomRepo   roomRepository.Room
	presence   attendanceService.Presence
	tx         transaction.Transactor
	otel       otel.Otel
}

func New(memberRepo memberRepository.Member, roomRepo roomRepository.Room, presence attendanceService.Presence, tx transaction.Transactor, otel otel.Otel) Allocator {
	return &allocatorImpl{
		memberRepo: memberRepo,
		roomRepo:   roomRepo,
		presence:   presence,
		tx:         tx,
		otel:       otel,
	}
}

// AssignSeat finds a free seat for member and records it. ok is false when every room is full.
func (s *allocatorImpl) AssignSeat(ctx context.Context, sqltx *sqlx.Tx, member memberModel.Member, asOf time.Time) (res model.Assignment, ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignSeat")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.tx.Lock(ctx, sqltx, model.LockAllocation); err != nil {
		return res, false, err
	}

	inside, err := s.presence.InsideSetTx(ctx, sqltx, asOf)
	if err != nil {
		return res, false, err
	}

	inside.Add(member.ID)

	rooms, err := s.roomRepo.AllocationOrderTx(ctx, sqltx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load rooms for allocation")

		return res, false, fmt.Errorf("failed to load rooms: %w", err)
	}

	holders, err := s.memberRepo.SeatHoldersTx(ctx, sqltx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load seat holders")

		return res, false, fmt.Errorf("failed to load seat holders: %w", err)
	}

	res, ok = FindSeat(rooms, holders, inside, member)
	if !ok {
		log.Warn().Str("member_id", member.ID).Msg("no free seat left")

		return res, false, nil
	}

	if stale := staleHolders(holders, res, member.ID); len(stale) > 0 {
		if err = s.memberRepo.UpdateTx(ctx, sqltx, vacatePatch(ctx), gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					ArgName:  "where_id",
					Field:    memberModel.FieldID,
					Value:    stale,
					Operator: gDto.FilterOperatorIn,
					Table:    memberModel.TableName,
				},
			},
		}); err != nil {
			log.Error().Err(err).Msg("failed to reclaim stale seat")

			return res, false, fmt.Errorf("failed to reclaim stale seat: %w", err)
		}
	}

	if err = s.memberRepo.UpdateTx(ctx, sqltx, seatPatch(ctx, res.RoomID, res.SeatNo), shared.FilterByID(member.ID, memberModel.FieldID, memberModel.TableName)); err != nil {
		log.Error().Err(err).Str("member_id", member.ID).Msg("failed to assign seat")

		return res, false, fmt.Errorf("failed to assign seat: %w", err)
	}

	scope.SetAttributes(map[string]any{
		"seat.room_id": res.RoomID,
		"seat.no":      res.SeatNo,
	})

	return res, true, nil
}

// ReleaseSeat clears seat_no and keeps room_id as the next visit's preferred room.
func (s *allocatorImpl) ReleaseSeat(ctx context.Context, sqltx *sqlx.Tx, member memberModel.Member) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReleaseSeat")
	defer scope.End()
	defer scope.TraceIfError(err)

	if member.IsReserved() || !member.Seated() {
		return nil
	}

	if err = s.memberRepo.UpdateTx(ctx, sqltx, vacatePatch(ctx), shared.FilterByID(member.ID, memberModel.FieldID, memberModel.TableName)); err != nil {
		log.Error().Err(err).Str("member_id", member.ID).Msg("failed to release seat")

		return fmt.Errorf("failed to release seat: %w", err)
	}

	return nil
}

// FindSeat picks the lowest free seat, trying the member's previous room before the others in
// stored order. Reserved seats are always taken. General seats are taken only while their
// holder is inside.
func FindSeat(rooms []roomModel.Room, holders []memberModel.Member, inside attendanceModel.InsideSet, candidate memberModel.Member) (model.Assignment, bool) {
	taken := model.Taken{}

	for _, holder := range holders {
		if holder.ID == candidate.ID || !holder.Seated() || holder.RoomID == nil {
			continue
		}

		if holder.IsReserved() || inside.Has(holder.ID) {
			taken.Mark(*holder.RoomID, *holder.SeatNo)
		}
	}

	ordered := make([]roomModel.Room, 0, len(rooms))

	if candidate.RoomID != nil {
		for _, room := range rooms {
			if room.ID == *candidate.RoomID {
				ordered = append(ordered, room)
			}
		}
	}

	for _, room := range rooms {
		if !candidate.InRoom(room.ID) {
			ordered = append(ordered, room)
		}
	}

	for _, room := range ordered {
		for seatNo := 1; seatNo <= room.Capacity; seatNo++ {
			if !taken.Has(room.ID, seatNo) {
				return model.Assignment{RoomID: room.ID, RoomName: room.Name, SeatNo: seatNo}, true
			}
		}
	}

	return model.Assignment{}, false
}

// staleHolders lists General members still holding the assigned seat from an earlier visit.
func staleHolders(holders []memberModel.Member, assignment model.Assignment, memberID string) []string {
	stale := []string{}

	for _, holder := range holders {
		if holder.ID == memberID || !holder.Seated() || !holder.InRoom(assignment.RoomID) {
			continue
		}

		if *holder.SeatNo == assignment.SeatNo {
			stale = append(stale, holder.ID)
		}
	}

	return stale
}

func seatPatch(ctx context.Context, roomID string, seatNo int) map[string]any {
	return map[string]any{
		memberModel.FieldRoomID:  roomID,
		memberModel.FieldSeatNo:  seatNo,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor(ctx),
	}
}

// vacatePatch clears seat_no only. room_id stays behind as a preference.
func vacatePatch(ctx context.Context) map[string]any {
	return map[string]any{
		memberModel.FieldSeatNo:  nil,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor(ctx),
	}
}

func actor(ctx context.Context) string {
	if user, _ := ctx.Value(constant.ContextKeyUserID).(string); user != constant.Empty {
		return user
	}

	return constant.ContextSystem
}
