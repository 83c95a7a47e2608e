package model

import (
	"time"

	attendanceModel "seatdesk/internal/domains/attendance/model"
	memberModel "seatdesk/internal/domains/member/model"
	roomModel "seatdesk/internal/domains/room/model"
	"seatdesk/shared/constant"
	"seatdesk/shared/timezone"
)

const EntityName = "occupancy"

const (
	StateEmpty    = "Empty"
	StateInside   = "Inside"
	StateAway     = "Away"
	StateAbsent   = "Absent"
	StateOverstay = "Overstay"
)

// MaxRefresh is the longest a watcher may go without re-evaluating. Overstay and Absent move
// with the wall clock, not with the data.
const MaxRefresh = time.Minute

type SeatStatus struct {
	SeatNo int
	State  string
	Member *memberModel.Member
}

type Counts struct {
	Empty    int
	Inside   int
	Away     int
	Absent   int
	Overstay int
}

// Occupied counts the seats with somebody on them.
func (c Counts) Occupied() int {
	return c.Inside + c.Overstay
}

func (c *Counts) add(state string) {
	switch state {
	case StateEmpty:
		c.Empty++
	case StateInside:
		c.Inside++
	case StateAway:
		c.Away++
	case StateAbsent:
		c.Absent++
	case StateOverstay:
		c.Overstay++
	}
}

// Classify places one seat in the first matching state of Empty, Overstay, Inside, Absent, Away.
func Classify(member *memberModel.Member, inside attendanceModel.InsideSet, now time.Time) string {
	if member == nil {
		return StateEmpty
	}

	clock := timezone.SinceMidnight(now)

	if inside.Has(member.ID) {
		if overstayed(member.StartTime, member.EndTime, clock) {
			return StateOverstay
		}

		return StateInside
	}

	if member.IsReserved() && onShift(member.StartTime, member.EndTime, clock) {
		return StateAbsent
	}

	return StateAway
}

// Project lays the room's members onto its seats. Reserved members always sit on their seat;
// General members only while inside.
func Project(room roomModel.Room, members []memberModel.Member, inside attendanceModel.InsideSet, now time.Time) ([]SeatStatus, Counts) {
	holders := make(map[int]*memberModel.Member, len(members))

	for i := range members {
		member := &members[i]
		if !member.InRoom(room.ID) || !member.Seated() || !member.IsReserved() {
			continue
		}

		holders[*member.SeatNo] = member
	}

	for i := range members {
		member := &members[i]
		if !member.InRoom(room.ID) || !member.Seated() || member.IsReserved() || !inside.Has(member.ID) {
			continue
		}

		if _, taken := holders[*member.SeatNo]; !taken {
			holders[*member.SeatNo] = member
		}
	}

	seats := make([]SeatStatus, room.Capacity)
	counts := Counts{}

	for i := range seats {
		seatNo := i + 1
		member := holders[seatNo]
		state := Classify(member, inside, now)

		seats[i] = SeatStatus{SeatNo: seatNo, State: state, Member: member}
		counts.add(state)
	}

	return seats, counts
}

// onShift reports whether clock falls in [start, end]. A window ending before it starts runs
// past midnight.
func onShift(start, end string, clock time.Duration) bool {
	from, okFrom := parseClock(start)
	to, okTo := parseClock(end)

	if !okFrom || !okTo {
		return false
	}

	if to < from {
		return clock >= from || clock <= to
	}

	return clock >= from && clock <= to
}

// overstayed reports whether clock is past end. For a window running past midnight the time
// between end and the next start counts as past.
func overstayed(start, end string, clock time.Duration) bool {
	to, ok := parseClock(end)
	if !ok {
		return false
	}

	if from, okFrom := parseClock(start); okFrom && to < from {
		return clock > to && clock < from
	}

	return clock > to
}

func parseClock(value string) (time.Duration, bool) {
	if value == constant.Empty {
		return 0, false
	}

	clock, err := timezone.ParseClock(value)
	if err != nil {
		return 0, false
	}

	return clock, true
}
