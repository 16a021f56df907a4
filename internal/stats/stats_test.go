package stats

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()

	m.HTTPRequestsTotal.WithLabelValues("GET", "/api/weather/history", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/api/weather/history").Observe(0.042)
	m.HTTPRequestsInFlight.Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "http_request_duration_seconds")
	assert.Contains(t, body, "http_requests_in_flight 1")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	// Two instances must not collide; nothing registers globally.
	a := NewMetrics()
	b := NewMetrics()

	a.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	rr := httptest.NewRecorder()
	b.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.NotContains(t, rr.Body.String(), `route="/health"`)
}
