package dto

import (
	"time"

	"seatdesk/internal/domains/occupancy/model"
	roomModel "seatdesk/internal/domains/room/model"
	"seatdesk/shared/constant"
	"seatdesk/shared/timezone"
)

type SeatResponse struct {
	SeatNo     int     `json:"seat_no"`
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	State      string  `json:"state"`
	MemberID   *string `json:"member_id"`
	MemberName *string `json:"member_name"`
	SeatType   *string `json:"seat_type"`
	Shift      *string `json:"shift"`
}

type CountsResponse struct {
	Empty    int `json:"empty"`
	Inside   int `json:"inside"`
	Away     int `json:"away"`
	Absent   int `json:"absent"`
	Overstay int `json:"overstay"`
}

func (c *CountsResponse) FromModel(counts model.Counts) {
	c.Empty = counts.Empty
	c.Inside = counts.Inside
	c.Away = counts.Away
	c.Absent = counts.Absent
	c.Overstay = counts.Overstay
}

type RoomStatusResponse struct {
	RoomID      string         `json:"room_id"`
	RoomName    string         `json:"room_name"`
	Capacity    int            `json:"capacity"`
	Rows        int            `json:"rows"`
	Cols        int            `json:"cols"`
	Seats       []SeatResponse `json:"seats"`
	Counts      CountsResponse `json:"counts"`
	EvaluatedAt string         `json:"evaluated_at"`
}

// FromModel positions seats row by row, cols per row.
func (r *RoomStatusResponse) FromModel(room roomModel.Room, seats []model.SeatStatus, counts model.Counts, now time.Time) {
	r.RoomID = room.ID
	r.RoomName = room.Name
	r.Capacity = room.Capacity
	r.Rows = room.Rows
	r.Cols = room.Cols
	r.EvaluatedAt = timezone.Format(now, constant.DateFormat)
	r.Counts.FromModel(counts)

	cols := room.Cols
	if cols <= 0 {
		cols = room.Capacity
	}

	r.Seats = make([]SeatResponse, len(seats))
	for i, seat := range seats {
		r.Seats[i] = SeatResponse{
			SeatNo: seat.SeatNo,
			Row:    (seat.SeatNo-1)/cols + 1,
			Col:    (seat.SeatNo-1)%cols + 1,
			State:  seat.State,
		}

		if seat.Member != nil {
			r.Seats[i].MemberID = &seat.Member.ID
			r.Seats[i].MemberName = &seat.Member.Name
			r.Seats[i].SeatType = &seat.Member.SeatType
			r.Seats[i].Shift = &seat.Member.Shift
		}
	}
}

type RoomSummary struct {
	RoomID   string         `json:"room_id"`
	RoomName string         `json:"room_name"`
	Capacity int            `json:"capacity"`
	Occupied int            `json:"occupied"`
	Counts   CountsResponse `json:"counts"`
}

type SummaryResponse struct {
	Rooms       []RoomSummary `json:"rooms"`
	Capacity    int           `json:"capacity"`
	Occupied    int           `json:"occupied"`
	EvaluatedAt string        `json:"evaluated_at"`
}

func (s *SummaryResponse) Add(room roomModel.Room, counts model.Counts) {
	summary := RoomSummary{
		RoomID:   room.ID,
		RoomName: room.Name,
		Capacity: room.Capacity,
		Occupied: counts.Occupied(),
	}
	summary.Counts.FromModel(counts)

	s.Rooms = append(s.Rooms, summary)
	s.Capacity += room.Capacity
	s.Occupied += summary.Occupied
}
