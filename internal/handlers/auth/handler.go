package auth

import (
	"context"
	"net/http"
	"strings"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userDto "hotel/internal/domains/user/model/dto"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	config  *config.Config
	otel    otel.Otel
}

func New(service service.Auth, config *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		config:  config,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/admin/login", handler.AdminLogin)
		r.Post("/logout", handler.Logout)
		r.Get("/profile", handler.Profile)
	})
}

// Register handles guest registration
// @Summary Register a new guest
// @Description Create a guest account and sign it in. The token is also set as the token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body userDto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Data[dto.AuthResponse] "Guest registered"
// @Failure 400 {object} response.Error
// @Router /api/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := userDto.RegisterRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register user")

		response.WithError(w, err)

		return
	}

	handler.setSession(w, res)
	scope.AddEvent("User registered successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// Login handles guest login
// @Summary Login a guest
// @Description Sign in with email and password. The token is also set as the token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.AuthResponse] "Guest logged in"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	handler.login(w, r, "Login", handler.service.Login)
}

// AdminLogin handles administrator login
// @Summary Login an administrator
// @Description Sign in to the back office. The token is also set as the token cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.AuthResponse] "Administrator logged in"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /api/auth/admin/login [post]
func (handler *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	handler.login(w, r, "AdminLogin", handler.service.AdminLogin)
}

// Logout handles sign out
// @Summary Logout
// @Description Revoke the current token and clear the token cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message "Logged out successfully"
// @Router /api/auth/logout [post]
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	token := constant.Empty

	if cookie, err := r.Cookie(constant.CookieToken); err == nil {
		token = cookie.Value
	} else if bearer, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization)); err == nil {
		token = bearer
	}

	if err := handler.service.Logout(ctx, token); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	handler.clearSession(w)
	scope.AddEvent("User logged out successfully")

	response.WithMessage(w, http.StatusOK, "Logged out successfully")
}

// Profile returns the signed-in account
// @Summary Get profile
// @Description Return the guest or administrator behind the current token.
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[dto.ProfileResponse] "Profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/auth/profile [get]
// @Security BearerAuth
func (handler *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Profile")
	defer scope.End()

	res, err := handler.service.Profile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) login(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	login func(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error),
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+name)
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login")

		response.WithError(w, err)

		return
	}

	handler.setSession(w, res)
	scope.AddEvent("Logged in successfully")

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) setSession(w http.ResponseWriter, res dto.AuthResponse) {
	http.SetCookie(w, handler.cookie(res.Token, res.MaxAge))
}

func (handler *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, handler.cookie(constant.Empty, -1))
}

func (handler *Handler) cookie(value string, maxAge int) *http.Cookie {
	settings := handler.config.App.Cookie

	return &http.Cookie{
		Name:     constant.CookieToken,
		Value:    value,
		Path:     "/",
		Domain:   settings.Domain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   settings.Secure || handler.config.IsProduction(),
		SameSite: sameSite(settings.SameSite),
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
