package dto

import (
	"time"

	"seatdesk/shared/constant"
	"seatdesk/shared/timezone"
)

type ToggleRequest struct {
	MemberID string `json:"member_id" validate:"required,max=36"`
	Channel  string `json:"channel"   validate:"omitempty,max=64"`
}

type ToggleResponse struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Status     string  `json:"status"`
	RoomID     *string `json:"room_id"`
	RoomName   *string `json:"room_name"`
	SeatNo     *int    `json:"seat_no"`
	EventTime  string  `json:"event_time"`
}

func (t *ToggleResponse) SetEventTime(eventTime time.Time) {
	t.EventTime = timezone.Format(eventTime, constant.DateFormat)
}
