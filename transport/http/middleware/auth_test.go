package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const routeTable = `{
	"skip": false,
	"endpoints": [
		{"path": "/api/rooms", "method": "GET", "skip": true},
		{"path": "/api/contacts", "method": "POST", "skip": true},
		{"path": "/api/auth/profile", "method": "GET", "permissions": ["user", "admin"]},
		{"path": "/api/bookings/admin/all", "method": "GET", "permissions": ["admin"]}
	]
}`

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return cache.NewRedisCache(client, mocks.NewOtel()), server
}

func newAuthRouter(t *testing.T, jwtService jwt.JWT, redisCache cache.RedisCache, cfg *config.Config) chi.Router {
	t.Helper()

	routes, err := permissions.Parse([]byte(routeTable))
	require.NoError(t, err)

	authRole := middleware.NewAuthRoleMiddleware(jwtService, redisCache, mocks.NewOtel(), routes, cfg)

	echoRole := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": userID, "role": role})
	}

	router := chi.NewRouter()
	router.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
	router.Get("/api/rooms", echoRole)
	router.Get("/api/auth/profile", echoRole)
	router.Get("/api/bookings/admin/all", echoRole)
	router.Route("/api/contacts", func(group chi.Router) {
		group.Post("/", echoRole)
	})

	return router
}

func claims(userID, role, tokenID string) *jwt.Claims {
	return &jwt.Claims{
		UserID:  userID,
		Email:   userID + "@hotel.com",
		Role:    role,
		TokenID: tokenID,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func serve(router http.Handler, request *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, request)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func TestAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	redisCache, server := newCache(t)
	router := newAuthRouter(t, jwtService, redisCache, &config.Config{})

	t.Run("public route needs no token", func(t *testing.T) {
		rec, _ := serve(router, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("public subrouter index", func(t *testing.T) {
		rec, _ := serve(router, httptest.NewRequest(http.MethodPost, "/api/contacts", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec, body := serve(router, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, no token", body["message"])
		assert.Equal(t, "UNAUTHENTICATED", body["code"])
	})

	t.Run("bearer token", func(t *testing.T) {
		jwtService.EXPECT().ValidateToken("bearer-token").Return(claims("u1", constant.RoleUser, "jti-1"), nil)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer bearer-token")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u1", body["id"])
		assert.Equal(t, constant.RoleUser, body["role"])
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		jwtService.EXPECT().ValidateToken("cookie-token").Return(claims("u2", constant.RoleUser, "jti-2"), nil)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.AddCookie(&http.Cookie{Name: constant.CookieToken, Value: "cookie-token"})
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer other")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u2", body["id"])
	})

	t.Run("malformed header", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Token abc")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, no token", body["message"])
	})

	t.Run("invalid token", func(t *testing.T) {
		jwtService.EXPECT().ValidateToken("forged").Return(nil, jwt.ErrInvalidToken)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer forged")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Not authorized, token failed", body["message"])
	})

	t.Run("expired token", func(t *testing.T) {
		jwtService.EXPECT().ValidateToken("stale").Return(nil, jwt.ErrExpiredToken)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer stale")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token has expired", body["message"])
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, server.Set("auth:revoked:jti-9", "true"))
		jwtService.EXPECT().ValidateToken("logged-out").Return(claims("u1", constant.RoleUser, "jti-9"), nil)

		request := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer logged-out")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token has been revoked", body["message"])
	})
}

func TestRBAC(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	redisCache, _ := newCache(t)
	router := newAuthRouter(t, jwtService, redisCache, &config.Config{})

	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "guest is forbidden", role: constant.RoleUser, wantCode: http.StatusForbidden},
		{name: "admin is allowed", role: constant.RoleAdmin, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService.EXPECT().ValidateToken("token").Return(claims("u1", tt.role, "jti-"+tt.role), nil)

			request := httptest.NewRequest(http.MethodGet, "/api/bookings/admin/all", nil)
			request.Header.Set(constant.RequestHeaderAuthorization, "Bearer token")

			rec, body := serve(router, request)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body["code"])
			}
		})
	}

	t.Run("no route table denies everything", func(t *testing.T) {
		authRole := middleware.NewAuthRoleMiddleware(jwtService, redisCache, mocks.NewOtel(), nil, &config.Config{})

		rec := httptest.NewRecorder()
		authRole.RBAC(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rooms", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestAPIKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	redisCache, _ := newCache(t)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	router := newAuthRouter(t, jwtService, redisCache, cfg)

	t.Run("valid key acts as admin", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/bookings/admin/all", nil)
		request.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

		rec, body := serve(router, request)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, constant.ContextSystem, body["id"])
		assert.Equal(t, constant.RoleAdmin, body["role"])
	})

	t.Run("wrong key", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/bookings/admin/all", nil)
		request.Header.Set(constant.RequestHeaderAPIKey, "guess")

		rec, _ := serve(router, request)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
