package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/transport/http/router"

	"github.com/stretchr/testify/assert"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestHTTP_HealthGuard(t *testing.T) {
	tests := []struct {
		name     string
		state    ServerState
		path     string
		wantCode int
	}{
		{name: "ready", state: ServerStateReady, path: healthPath, wantCode: http.StatusOK},
		{name: "grace period fails health", state: ServerStateInGracePeriod, path: healthPath, wantCode: http.StatusServiceUnavailable},
		{name: "cleanup period fails health", state: ServerStateInCleanupPeriod, path: healthPath, wantCode: http.StatusServiceUnavailable},
		{name: "grace period still serves traffic", state: ServerStateInGracePeriod, path: "/api/rooms", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := New(&config.Config{}, router.Router{}, nil, nil)
			server.state.Store(int32(tt.state))

			rec := httptest.NewRecorder()
			server.healthGuard(http.HandlerFunc(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHTTP_CORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}
	cfg.App.CORS.AllowedHeaders = []string{"Content-Type"}
	cfg.App.CORS.AllowCredentials = true

	server := New(cfg, router.Router{}, nil, nil)
	handler := server.cors()(http.HandlerFunc(ok))

	t.Run("allowed origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodOptions, "/api/rooms", nil)
		request.Header.Set("Origin", "http://localhost:3000")
		request.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		request.Header.Set("Origin", "http://evil.test")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, request)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
