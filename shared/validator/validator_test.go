package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"seatdesk/shared/failure"
	"seatdesk/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memberForm struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Mobile   string `json:"mobile"    validate:"required,numeric,min=10,max=15"`
	SeatType string `json:"seat_type" validate:"required,oneof=Reserved General"`
	SeatNo   int    `json:"seat_no"   validate:"required_if=SeatType Reserved"`
}

type shiftForm struct {
	StartTime string `json:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time"   validate:"omitempty,timeofday"`
}

type photoForm struct {
	Photo  *multipart.FileHeader `json:"photo"  validate:"omitempty,mimetypes=image/png image/jpeg,maxfilesize=1"`
	Inline string                `json:"inline" validate:"omitempty,mimetypes=image/png"`
}

func assertBadRequest(t *testing.T, err error, wantMessage string) {
	t.Helper()

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	if wantMessage != "" {
		assert.EqualError(t, err, wantMessage)
	}
}

func TestValidateStruct(t *testing.T) {
	valid := memberForm{Name: "Asha Verma", Mobile: "9876543210", SeatType: "General"}

	tests := []struct {
		name    string
		mutate  func(form *memberForm)
		wantErr string
	}{
		{
			name:   "valid general member",
			mutate: func(*memberForm) {},
		},
		{
			name:    "missing name uses the json key",
			mutate:  func(form *memberForm) { form.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "mobile with letters",
			mutate:  func(form *memberForm) { form.Mobile = "98765abcde" },
			wantErr: "mobile must contain digits only",
		},
		{
			name:    "short mobile",
			mutate:  func(form *memberForm) { form.Mobile = "98765" },
			wantErr: "mobile must be at least 10",
		},
		{
			name:    "unknown seat type",
			mutate:  func(form *memberForm) { form.SeatType = "VIP" },
			wantErr: "seat_type must be one of Reserved General",
		},
		{
			name:    "reserved member without a seat",
			mutate:  func(form *memberForm) { form.SeatType = "Reserved" },
			wantErr: "seat_no is required when SeatType Reserved",
		},
		{
			name: "reserved member with a seat",
			mutate: func(form *memberForm) {
				form.SeatType = "Reserved"
				form.SeatNo = 4
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			err := validator.ValidateStruct(&form)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assertBadRequest(t, err, tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"name":"Asha Verma","mobile":"9876543210","seat_type":"General"}`,
		},
		{
			name:    "fails validation",
			body:    `{"name":"Asha Verma","mobile":"9876543210","seat_type":"Standing"}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			body:    `{"name":"Asha Verma","mobile":}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var form memberForm

			err := validator.Validate(strings.NewReader(tt.body), &form)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, "Asha Verma", form.Name)

				return
			}

			assertBadRequest(t, err, "")
		})
	}
}

func TestValidate_TimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		form    shiftForm
		wantErr bool
	}{
		{name: "morning shift", form: shiftForm{StartTime: "08:00", EndTime: "14:00"}},
		{name: "overnight shift", form: shiftForm{StartTime: "20:00", EndTime: "02:00"}},
		{name: "open ended", form: shiftForm{StartTime: "08:00"}},
		{name: "hour out of range", form: shiftForm{StartTime: "24:30"}, wantErr: true},
		{name: "not a clock value", form: shiftForm{StartTime: "8am"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.form)

			if tt.wantErr {
				assertBadRequest(t, err, "start_time must be a time of day in HH:MM format")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_Photo(t *testing.T) {
	upload := func(contentType string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{
			Filename: "photo",
			Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
			Size:     size,
		}
	}

	tests := []struct {
		name    string
		form    photoForm
		wantErr string
	}{
		{name: "no photo", form: photoForm{}},
		{name: "png upload", form: photoForm{Photo: upload("image/png", 200<<10)}},
		{
			name:    "pdf upload",
			form:    photoForm{Photo: upload("application/pdf", 200<<10)},
			wantErr: "photo must be one of image/png image/jpeg",
		},
		{
			name:    "upload over a megabyte",
			form:    photoForm{Photo: upload("image/jpeg", 2<<20)},
			wantErr: "photo must not exceed 1 MB",
		},
		{name: "inline png", form: photoForm{Inline: "data:image/png;base64,iVBORw0KGgo="}},
		{
			name:    "inline without data prefix",
			form:    photoForm{Inline: "iVBORw0KGgo="},
			wantErr: "inline must be one of image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.form)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assertBadRequest(t, err, tt.wantErr)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("Morning", "oneof=Morning Evening"))
	assertBadRequest(t, validator.ValidateVar("7 o'clock", "timeofday"), "must be a time of day in HH:MM format")
	assertBadRequest(t, validator.ValidateVar("", "required"), "is required")
}
