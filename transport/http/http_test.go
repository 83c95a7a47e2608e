package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatdesk/infras/postgres"
)

func TestHTTP_HealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		state      ServerState
		db         *postgres.Connection
		wantStatus int
	}{
		{name: "ready without database", state: ServerStateReady, wantStatus: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, wantStatus: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, wantStatus: http.StatusServiceUnavailable},
		{name: "database not connected", state: ServerStateReady, db: &postgres.Connection{}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{State: tt.state, DB: tt.db}

			rec := httptest.NewRecorder()
			h.healthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
