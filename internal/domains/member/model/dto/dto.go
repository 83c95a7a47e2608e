package dto

import (
	"mime/multipart"

	"seatdesk/internal/domains/member/model"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	gDto "seatdesk/shared/dto"
	gModel "seatdesk/shared/model"
	"seatdesk/shared/timezone"

	"github.com/google/uuid"
)

type CreateMemberRequest struct {
	Name             string                `json:"name"              validate:"required,max=100"`
	FathersName      string                `json:"fathers_name"      validate:"omitempty,max=100"`
	Address          string                `json:"address"           validate:"omitempty,max=255"`
	Mobile           string                `json:"mobile"            validate:"required,numeric,min=10,max=15"`
	EmergencyContact string                `json:"emergency_contact" validate:"omitempty,numeric,min=10,max=15"`
	Status           string                `json:"status"            validate:"omitempty,oneof=Active Inactive"`
	SeatType         string                `json:"seat_type"         validate:"required,oneof=Reserved General"`
	RoomID           string                `json:"room_id"           validate:"required_if=SeatType Reserved"`
	SeatNo           int                   `json:"seat_no"           validate:"required_if=SeatType Reserved,gte=0"`
	Shift            string                `json:"shift"             validate:"omitempty,oneof=Morning Evening 'Full Day'"`
	StartTime        string                `json:"start_time"        validate:"omitempty,timeofday"`
	EndTime          string                `json:"end_time"          validate:"omitempty,timeofday"`
	MonthlyFee       float64               `json:"monthly_fee"       validate:"omitempty,min=0"`
	AdmissionDate    string                `json:"admission_date"    validate:"omitempty,datetime=2006-01-02"`
	Photo            *multipart.FileHeader `json:"photo"             validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=1"`
	PhotoFile        multipart.File        `json:"-"`
}

// ToModel applies the admission defaults. General members start without a seat.
func (c *CreateMemberRequest) ToModel(user string, photoURL string) model.Member {
	member := model.Member{
		ID:               uuid.NewString(),
		Name:             c.Name,
		FathersName:      c.FathersName,
		Address:          c.Address,
		Mobile:           c.Mobile,
		EmergencyContact: c.EmergencyContact,
		Status:           c.Status,
		SeatType:         c.SeatType,
		Shift:            c.Shift,
		StartTime:        c.StartTime,
		EndTime:          c.EndTime,
		MonthlyFee:       c.MonthlyFee,
		AdmissionDate:    c.AdmissionDate,
		Photo:            photoURL,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if member.Status == constant.Empty {
		member.Status = model.StatusActive
	}

	if member.Shift == constant.Empty {
		member.Shift = model.ShiftMorning
	}

	if member.StartTime == constant.Empty && member.EndTime == constant.Empty {
		member.StartTime = model.DefaultStartTime
		member.EndTime = model.DefaultEndTime
	}

	if member.AdmissionDate == constant.Empty {
		member.AdmissionDate = timezone.Format(timezone.Now(), constant.DayFormat)
	}

	if c.SeatType == model.SeatTypeReserved {
		roomID, seatNo := c.RoomID, c.SeatNo
		member.RoomID = &roomID
		member.SeatNo = &seatNo
	}

	return member
}

// UpdateMemberRequest only carries the plain columns. Seat placement is resolved by the service.
type UpdateMemberRequest struct {
	Name             string                `db:"name"              json:"name"              validate:"omitempty,max=100"`
	FathersName      string                `db:"fathers_name"      json:"fathers_name"      validate:"omitempty,max=100"`
	Address          string                `db:"address"           json:"address"           validate:"omitempty,max=255"`
	Mobile           string                `db:"mobile"            json:"mobile"            validate:"omitempty,numeric,min=10,max=15"`
	EmergencyContact string                `db:"emergency_contact" json:"emergency_contact" validate:"omitempty,numeric,min=10,max=15"`
	Status           string                `db:"status"            json:"status"            validate:"omitempty,oneof=Active Inactive"`
	Shift            string                `db:"shift"             json:"shift"             validate:"omitempty,oneof=Morning Evening 'Full Day'"`
	StartTime        string                `db:"start_time"        json:"start_time"        validate:"omitempty,timeofday"`
	EndTime          string                `db:"end_time"          json:"end_time"          validate:"omitempty,timeofday"`
	MonthlyFee       float64               `db:"monthly_fee"       json:"monthly_fee"       validate:"omitempty,min=0"`
	AdmissionDate    string                `db:"admission_date"    json:"admission_date"    validate:"omitempty,datetime=2006-01-02"`
	SeatType         string                `json:"seat_type"       validate:"omitempty,oneof=Reserved General"`
	RoomID           string                `json:"room_id"         validate:"omitempty,max=36"`
	SeatNo           int                   `json:"seat_no"         validate:"omitempty,min=1"`
	Photo            *multipart.FileHeader `json:"photo"           validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=1"`
	PhotoFile        multipart.File        `json:"-"`
}

// Placement merges the requested seat fields over the member's current ones.
func (u *UpdateMemberRequest) Placement(current model.Member) (seatType, roomID string, seatNo int) {
	seatType = current.SeatType
	if u.SeatType != constant.Empty {
		seatType = u.SeatType
	}

	if current.RoomID != nil {
		roomID = *current.RoomID
	}

	if u.RoomID != constant.Empty {
		roomID = u.RoomID
	}

	if current.SeatNo != nil {
		seatNo = *current.SeatNo
	}

	if u.SeatNo != 0 {
		seatNo = u.SeatNo
	}

	return seatType, roomID, seatNo
}

// ChangesPlacement reports whether the request touches seat type, room or seat.
func (u *UpdateMemberRequest) ChangesPlacement() bool {
	return u.SeatType != constant.Empty || u.RoomID != constant.Empty || u.SeatNo != 0
}

type MemberResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	FathersName      string  `json:"fathers_name"`
	Address          string  `json:"address"`
	Mobile           string  `json:"mobile"`
	EmergencyContact string  `json:"emergency_contact"`
	Status           string  `json:"status"`
	SeatType         string  `json:"seat_type"`
	RoomID           *string `json:"room_id"`
	SeatNo           *int    `json:"seat_no"`
	Shift            string  `json:"shift"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	MonthlyFee       float64 `json:"monthly_fee"`
	AdmissionDate    string  `json:"admission_date"`
	Photo            string  `json:"photo"`
	gDto.Metadata
}

func (r *MemberResponse) FromModel(model model.Member) {
	r.ID = model.ID
	r.Name = model.Name
	r.FathersName = model.FathersName
	r.Address = model.Address
	r.Mobile = model.Mobile
	r.EmergencyContact = model.EmergencyContact
	r.Status = model.Status
	r.SeatType = model.SeatType
	r.RoomID = model.RoomID
	r.SeatNo = model.SeatNo
	r.Shift = model.Shift
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.MonthlyFee = model.MonthlyFee
	r.AdmissionDate = model.AdmissionDate
	r.Photo = model.Photo
	r.Metadata.FromModel(model.Metadata)
}

type GetMembersResponse struct {
	Members   []MemberResponse `json:"members"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetMembersResponse) FromModels(models []model.Member, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Members = make([]MemberResponse, len(models))
	for i, mod := range models {
		r.Members[i].FromModel(mod)
	}
}
