package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"seatdesk/shared/failure"
	"seatdesk/transport/http/response"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "failure keeps its message",
			err:        failure.CapacityExceeded,
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"library is full, no free seat available"}`,
		},
		{
			name:       "wrapped failure drops the wrapping text",
			err:        fmt.Errorf("failed to get member: %w", failure.NotFound("member")),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"member"}`,
		},
		{
			name:       "internal error is not echoed",
			err:        errors.New(`pq: relation "members" does not exist`),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]int{"seat_no": 4})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"seat_no":4}}`, rec.Body.String())
}

func TestWithEvent(t *testing.T) {
	rec := httptest.NewRecorder()

	response.StartEvents(rec)
	require.NoError(t, response.WithEvent(rec, "room_status", map[string]int{"free": 3}))

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "event: room_status\ndata: {\"free\":3}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}
