package dto

import (
	"time"

	"seatdesk/internal/domains/attendance/model"
	memberModel "seatdesk/internal/domains/member/model"
	"seatdesk/shared"
	"seatdesk/shared/constant"
	"seatdesk/shared/timezone"
)

const (
	RosterInside = "INSIDE"
	RosterAway   = "AWAY"
)

type GetLogsRequest struct {
	Start    string `json:"start"     validate:"omitempty,datetime=2006-01-02"`
	End      string `json:"end"       validate:"omitempty,datetime=2006-01-02"`
	MemberID string `json:"member_id" validate:"omitempty,max=36"`
}

// Window resolves the requested days into [from, to). Missing bounds default to the day of now.
func (g *GetLogsRequest) Window(now time.Time) (from, to time.Time, err error) {
	from, to = timezone.DayBounds(now)

	if g.Start != constant.Empty {
		start, err := timezone.Parse(constant.DayFormat, g.Start)
		if err != nil {
			return from, to, err
		}

		from = timezone.StartOfDay(start)
		if g.End == constant.Empty {
			_, to = timezone.DayBounds(now)
		}
	}

	if g.End != constant.Empty {
		end, err := timezone.Parse(constant.DayFormat, g.End)
		if err != nil {
			return from, to, err
		}

		_, to = timezone.DayBounds(end)
	}

	return from, to, nil
}

type LogResponse struct {
	ID         string  `json:"id"`
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	InTime     *string `json:"in_time"`
	OutTime    *string `json:"out_time"`
	RoomName   *string `json:"room_name"`
	SeatNo     *int    `json:"seat_no"`
}

func (l *LogResponse) FromModel(entry model.Entry) {
	l.ID = entry.ID
	l.MemberID = entry.StudentID
	l.Date = timezone.Format(entry.Date, constant.DateFormat)
	l.Status = entry.Status
	l.InTime = formatClock(entry.InTime)
	l.OutTime = formatClock(entry.OutTime)
	l.RoomName = entry.RoomName
	l.SeatNo = entry.SeatNo

	if entry.MemberName != nil {
		l.MemberName = *entry.MemberName
	}
}

type GetLogsResponse struct {
	Logs      []LogResponse `json:"logs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetLogsResponse) FromModels(entries []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Logs = make([]LogResponse, len(entries))
	for i, entry := range entries {
		r.Logs[i].FromModel(entry)
	}
}

type RosterEntry struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name"`
	Mobile   string  `json:"mobile"`
	SeatType string  `json:"seat_type"`
	RoomID   *string `json:"room_id"`
	SeatNo   *int    `json:"seat_no"`
	Presence string  `json:"presence"`
}

func (r *RosterEntry) FromModel(member memberModel.Member, inside model.InsideSet) {
	r.MemberID = member.ID
	r.Name = member.Name
	r.Mobile = member.Mobile
	r.SeatType = member.SeatType
	r.RoomID = member.RoomID
	r.SeatNo = member.SeatNo
	r.Presence = RosterAway

	if inside.Has(member.ID) {
		r.Presence = RosterInside
	}
}

type PresenceResponse struct {
	MemberID  string  `json:"member_id"`
	State     string  `json:"state"`
	LastEvent *string `json:"last_event"`
}

func (p *PresenceResponse) FromModel(presence model.Presence) {
	p.MemberID = presence.MemberID
	p.State = presence.State

	if presence.Last != nil {
		last := timezone.Format(presence.Last.Date, constant.DateFormat)
		p.LastEvent = &last
	}
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.ClockFormat)

	return &formatted
}
