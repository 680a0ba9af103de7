package prometheus

//go:generate go run go.uber.org/mock/mockgen -source=./prometheus.go -destination=./mocks/prometheus_mock.go -package=mocks

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

// Cache events.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
	ObserveBooking(event string)
	ObserveCache(cache, event string)
	Handler() http.Handler
}

type metricsImpl struct {
	registry      *prometheus.Registry
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
	bookingEvents *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
}

func New() Metrics {
	metrics := &metricsImpl{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		bookingEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "booking_events_total", Help: "Booking lifecycle events."},
			[]string{"event"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits and misses."},
			[]string{"cache", "event"},
		),
	}

	metrics.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpLatency,
		metrics.bookingEvents,
		metrics.cacheEvents,
	)

	return metrics
}

func (m *metricsImpl) ObserveHTTP(route, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *metricsImpl) ObserveBooking(event string) {
	m.bookingEvents.WithLabelValues(event).Inc()
}

func (m *metricsImpl) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
