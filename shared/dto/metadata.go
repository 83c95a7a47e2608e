package dto

import (
	"seatdesk/shared/constant"
	"seatdesk/shared/model"
	"seatdesk/shared/timezone"
)

// Metadata is the audit trail attached to rooms and members. Timestamps are
// rendered in the application timezone; a row that was never modified has
// empty modified_* fields.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.CreatedBy = model.CreatedBy

	if !model.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(model.ModifiedAt, constant.DateFormat)
		m.ModifiedBy = model.ModifiedBy
	}
}
