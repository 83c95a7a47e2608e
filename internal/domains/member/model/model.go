package model

import (
	"seatdesk/shared/model"
)

const (
	TableName  = "members"
	EntityName = "member"

	FieldID            = "id"
	FieldName          = "name"
	FieldMobile        = "mobile"
	FieldStatus        = "status"
	FieldSeatType      = "seat_type"
	FieldRoomID        = "room_id"
	FieldSeatNo        = "seat_no"
	FieldShift         = "shift"
	FieldPhoto         = "photo"
	FieldAdmissionDate = "admission_date"
)

const (
	CacheGetMember    = "member:get"
	CacheGetAllMember = "member:gets"
	CacheCountMember  = "member:count"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"

	SeatTypeReserved = "Reserved"
	SeatTypeGeneral  = "General"

	ShiftMorning = "Morning"
	ShiftEvening = "Evening"
	ShiftFullDay = "Full Day"

	DefaultStartTime = "08:00"
	DefaultEndTime   = "14:00"
)

type Member struct {
	ID               string  `db:"id"`
	Name             string  `db:"name"`
	FathersName      string  `db:"fathers_name"`
	Address          string  `db:"address"`
	Mobile           string  `db:"mobile"`
	EmergencyContact string  `db:"emergency_contact"`
	Status           string  `db:"status"`
	SeatType         string  `db:"seat_type"`
	RoomID           *string `db:"room_id"`
	SeatNo           *int    `db:"seat_no"`
	Shift            string  `db:"shift"`
	StartTime        string  `db:"start_time"`
	EndTime          string  `db:"end_time"`
	MonthlyFee       float64 `db:"monthly_fee"`
	AdmissionDate    string  `db:"admission_date"`
	Photo            string  `db:"photo"`
	model.Metadata
}

func (m Member) IsReserved() bool {
	return m.SeatType == SeatTypeReserved
}

// Seated reports whether the member holds a seat number.
func (m Member) Seated() bool {
	return m.SeatNo != nil
}

// InRoom reports whether the member's room is roomID.
func (m Member) InRoom(roomID string) bool {
	return m.RoomID != nil && *m.RoomID == roomID
}
