package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveToggle(t *testing.T) {
	m, ok := NewWithRegistry(prometheus.NewRegistry()).(*metricsImpl)
	require.True(t, ok)

	m.ObserveToggle(OutcomeIn, 10*time.Millisecond)
	m.ObserveToggle(OutcomeIn, 20*time.Millisecond)
	m.ObserveToggle(OutcomeCapacityExceeded, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.toggles.WithLabelValues(OutcomeIn)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.toggles.WithLabelValues(OutcomeCapacityExceeded)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m.toggles.WithLabelValues(OutcomeOut)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestSetOccupiedSeats(t *testing.T) {
	m, ok := NewWithRegistry(prometheus.NewRegistry()).(*metricsImpl)
	require.True(t, ok)

	m.SetOccupiedSeats("hall", 3)
	m.SetOccupiedSeats("hall", 1)
	m.SetOccupiedSeats("annex", 4)

	assert.InDelta(t, 1, testutil.ToFloat64(m.occupied.WithLabelValues("hall")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.occupied.WithLabelValues("annex")), 0)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveToggle(OutcomeOut, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `seatdesk_attendance_toggles_total{outcome="out"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
