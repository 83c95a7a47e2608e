package model

import (
	"time"

	"seatdesk/shared/model"
)

const (
	TableName  = "attendance_logs"
	EntityName = "attendance"

	FieldID        = "id"
	FieldStudentID = "student_id"
	FieldDate      = "date"
	FieldStatus    = "status"
	FieldInTime    = "in_time"
	FieldOutTime   = "out_time"
	FieldSeq       = "seq"
)

const (
	StatusIn  = "In"
	StatusOut = "Out"
)

// Log is one append-only presence event.
type Log struct {
	ID        string     `db:"id"`
	StudentID string     `db:"student_id"`
	Date      time.Time  `db:"date"`
	Status    string     `db:"status"`
	InTime    *time.Time `db:"in_time"`
	OutTime   *time.Time `db:"out_time"`
	model.Metadata
}

// Entry is a log joined with the member it belongs to and the member's current seat.
type Entry struct {
	ID         string     `db:"id"`
	StudentID  string     `db:"student_id"`
	Date       time.Time  `db:"date"`
	Status     string     `db:"status"`
	InTime     *time.Time `db:"in_time"`
	OutTime    *time.Time `db:"out_time"`
	MemberName *string    `db:"member_name" table:"members" column:"name"`
	SeatNo     *int       `db:"seat_no"     table:"members" column:"seat_no"`
	RoomName   *string    `db:"room_name"   table:"rooms"   column:"name"`
}

func (Entry) GetJoinQuery() string {
	return "LEFT JOIN members ON members.id = attendance_logs.student_id LEFT JOIN rooms ON rooms.id = members.room_id"
}

// LatestStatus is the status of a member's most recent log in a window.
type LatestStatus struct {
	StudentID string `db:"student_id"`
	Status    string `db:"status"`
}

// InsideSet holds the ids of members whose latest log today is In.
type InsideSet map[string]struct{}

func (s InsideSet) Has(memberID string) bool {
	_, ok := s[memberID]

	return ok
}

func (s InsideSet) Add(memberID string) {
	s[memberID] = struct{}{}
}

// Presence is a member's resolved state for a day.
type Presence struct {
	MemberID string
	State    string
	Last     *Log
}

func (p Presence) Inside() bool {
	return p.State == StatusIn
}

// Flip returns the state a toggle moves to.
func Flip(state string) string {
	if state == StatusIn {
		return StatusOut
	}

	return StatusIn
}
