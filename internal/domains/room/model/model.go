package model

import (
	"math"

	"seatdesk/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID       = "id"
	FieldName     = "name"
	FieldCapacity = "capacity"
	FieldRows     = "rows"
	FieldCols     = "cols"
)

const (
	CacheGetRoom    = "room:get"
	CacheGetAllRoom = "room:gets"
	CacheCountRoom  = "room:count"
)

type Room struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
	Rows     int    `db:"rows"`
	Cols     int    `db:"cols"`
	model.Metadata
}

// Layout derives a grid for capacity seats with cols seats per row.
func Layout(capacity, cols int) (rows int) {
	if capacity <= 0 || cols <= 0 {
		return 0
	}

	return int(math.Ceil(float64(capacity) / float64(cols)))
}
