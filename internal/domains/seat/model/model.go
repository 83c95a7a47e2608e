package model

const (
	EntityName = "seat"

	// LockAllocation serialises every allocation scan against concurrent check-ins.
	LockAllocation = "seat-allocation"
)

// Assignment is a seat handed to a member for the current visit.
type Assignment struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	SeatNo   int    `json:"seat_no"`
}

// Taken records occupied seat numbers per room id.
type Taken map[string]map[int]struct{}

func (t Taken) Mark(roomID string, seatNo int) {
	seats, ok := t[roomID]
	if !ok {
		seats = map[int]struct{}{}
		t[roomID] = seats
	}

	seats[seatNo] = struct{}{}
}

func (t Taken) Has(roomID string, seatNo int) bool {
	_, ok := t[roomID][seatNo]

	return ok
}
