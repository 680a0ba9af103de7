package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	prometheusMocks "hotel/infras/prometheus/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func limiterConfig(enable bool, maxRequests int) *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = maxRequests
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := prometheusMocks.NewMockMetrics(ctrl)

	t.Run("blocks past the window budget", func(t *testing.T) {
		redisCache, _ := newCache(t)
		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 2), redisCache, metrics)
		handler := app.RateLimit(http.HandlerFunc(ok))

		codes := make([]int, 0, 3)

		for range 3 {
			request := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
			request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

			rec, body := serve(handler, request)
			codes = append(codes, rec.Code)

			if rec.Code == http.StatusTooManyRequests {
				assert.Equal(t, "RATE_LIMITED", body["code"])
				assert.Equal(t, "0", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
			}
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("clients are counted apart", func(t *testing.T) {
		redisCache, _ := newCache(t)
		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 1), redisCache, metrics)
		handler := app.RateLimit(http.HandlerFunc(ok))

		first := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		first.RemoteAddr = "198.51.100.1:5000"

		second := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		second.RemoteAddr = "198.51.100.2:5000"

		rec, _ := serve(handler, first)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get(constant.RequestHeaderRateLimit))

		rec, _ = serve(handler, second)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		redisCache, server := newCache(t)
		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false, 0), redisCache, metrics)

		rec, _ := serve(app.RateLimit(http.HandlerFunc(ok)), httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, server.Keys())
	})

	t.Run("cache outage lets traffic through", func(t *testing.T) {
		redisCache, server := newCache(t)
		server.Close()

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(true, 1), redisCache, metrics)

		rec, _ := serve(app.RateLimit(http.HandlerFunc(ok)), httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAccessLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := prometheusMocks.NewMockMetrics(ctrl)
	redisCache, _ := newCache(t)
	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false, 0), redisCache, metrics)

	router := chi.NewRouter()
	router.Use(app.Tracing, app.AccessLog)
	router.Get("/api/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	metrics.EXPECT().ObserveHTTP("/api/rooms/{id}", http.MethodGet, http.StatusNotFound, gomock.Any())

	rec, _ := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms/42", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("unmatched routes share one label", func(t *testing.T) {
		metrics.EXPECT().ObserveHTTP("unmatched", http.MethodGet, http.StatusNotFound, gomock.Any())

		rec, _ := serve(router, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRecover(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := prometheusMocks.NewMockMetrics(ctrl)
	redisCache, _ := newCache(t)
	app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(false, 0), redisCache, metrics)

	handler := app.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec, body := serve(handler, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body["code"])

	t.Run("aborted handlers keep panicking", func(t *testing.T) {
		aborting := app.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))

		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			aborting.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
	})
}
