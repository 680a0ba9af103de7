package prometheus_test

import (
	"hotel/infras/prometheus"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Handler(t *testing.T) {
	metrics := prometheus.New()

	metrics.ObserveHTTP("/api/rooms", http.MethodGet, http.StatusOK, 15*time.Millisecond)
	metrics.ObserveBooking("created")
	metrics.ObserveBooking("conflict")
	metrics.ObserveCache("room", prometheus.CacheHit)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `hotel_http_requests_total{method="GET",route="/api/rooms",status="200"} 1`)
	assert.Contains(t, string(body), `hotel_booking_events_total{event="created"} 1`)
	assert.Contains(t, string(body), `hotel_booking_events_total{event="conflict"} 1`)
	assert.Contains(t, string(body), `hotel_cache_events_total{cache="room",event="hit"} 1`)
	assert.Contains(t, string(body), "hotel_http_request_duration_seconds_bucket")
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		prometheus.New()
		prometheus.New()
	})
}
