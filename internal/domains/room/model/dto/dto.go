package dto

import (
	"seatdesk/internal/domains/room/model"
	"seatdesk/shared"
	gDto "seatdesk/shared/dto"
	gModel "seatdesk/shared/model"
	"seatdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1,max=1000"`
	Cols     int    `json:"cols"     validate:"omitempty,min=1,max=100"`
}

// ToModel fills in cols with defaultCols when the request leaves it out.
func (c *CreateRoomRequest) ToModel(user string, defaultCols int) model.Room {
	cols := c.Cols
	if cols == 0 {
		cols = defaultCols
	}

	return model.Room{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Capacity: c.Capacity,
		Rows:     model.Layout(c.Capacity, cols),
		Cols:     cols,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Capacity int    `db:"capacity" json:"capacity" validate:"omitempty,min=1,max=1000"`
	Cols     int    `db:"cols"     json:"cols"     validate:"omitempty,min=1,max=100"`
}

type RoomResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Rows = model.Rows
	r.Cols = model.Cols
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
