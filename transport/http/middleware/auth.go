package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/permissions"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	msgNoToken      = "Not authorized, no token"
	msgTokenFailed  = "Not authorized, token failed"
	msgTokenExpired = "Token has expired"
	msgTokenRevoked = "Token has been revoked"
)

type SkipAuthKey string

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	cache      cache.RedisCache
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, cache cache.RedisCache, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		cache:      cache,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth resolves the caller from the token cookie or a bearer header. Public
// routes pass through untouched.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")

		if m.skip(request) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       findRoute(request),
			"http.method":     request.Method,
		})

		tokenString := tokenFromRequest(request)
		if tokenString == constant.Empty {
			err := failure.Unauthorized(msgNoToken)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			message := msgTokenFailed
			if errors.Is(err, jwt.ErrExpiredToken) {
				message = msgTokenExpired
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		revoked, err := m.cache.Exists(ctx, shared.BuildCacheKey(constant.CacheKeyRevokedToken, claims.TokenID))
		if err != nil {
			log.Warn().Err(err).Msg("failed to check token revocation")
		}

		if revoked {
			err := failure.Unauthorized(msgTokenRevoked)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		if claims.ExpiresAt != nil {
			ctx = context.WithValue(ctx, constant.ContextKeyTokenExp, claims.ExpiresAt.Time)
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RBAC checks the caller's role against the route. Requires prior authentication via Auth.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.skip(request) {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		permission := m.permission.FindPermissions(findRoute(request), request.Method)
		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !permission.Allows(userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey lets internal callers holding the configured key bypass Auth and RBAC.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// skip reports whether the request came with a valid API key or hits a public route.
func (m *authRoleImpl) skip(request *http.Request) bool {
	if skip, _ := request.Context().Value(SkipAuthKey("skip")).(bool); skip {
		return true
	}

	if m.permission == nil {
		return false
	}

	return m.permission.Skip || m.permission.FindPermissions(findRoute(request), request.Method).Skip
}

// findRoute resolves the chi pattern before routing has reached the handler.
// The index route of a subrouter resolves with a trailing slash, which the
// route table leaves out.
func findRoute(request *http.Request) string {
	rctx := chi.RouteContext(request.Context())
	if rctx == nil || rctx.Routes == nil {
		return request.URL.Path
	}

	pattern := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)
	if len(pattern) > 1 {
		pattern = strings.TrimSuffix(pattern, "/")
	}

	return pattern
}

func tokenFromRequest(request *http.Request) string {
	if cookie, err := request.Cookie(constant.CookieToken); err == nil && cookie.Value != constant.Empty {
		return cookie.Value
	}

	token, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
	if err != nil {
		return constant.Empty
	}

	return token
}
