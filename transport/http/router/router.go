package router

import (
	"hotel/config"
	_ "hotel/docs" // registers the OpenAPI document served under /swagger
	"hotel/infras/prometheus"
	"hotel/internal/handlers/auth"
	"hotel/internal/handlers/booking"
	"hotel/internal/handlers/contact"
	"hotel/internal/handlers/health"
	"hotel/internal/handlers/room"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Health  health.Handler
	Auth    auth.Handler
	Room    room.Handler
	Booking booking.Handler
	Contact contact.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	Config         *config.Config
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
	Metrics        prometheus.Metrics
}

func (r *Router) SetupRoutes(router chi.Router) {
	app := r.Middlewares.App
	authRole := r.Middlewares.AuthRole

	router.Use(app.Recover, app.Tracing, app.AccessLog)

	if r.Config.Metrics.Enable {
		router.Handle(r.Config.Metrics.Path, r.Metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(app.RateLimit, authRole.APIKey, authRole.Auth, authRole.RBAC)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Contact.Router(routerGroup)
	})
}

func New(cfg *config.Config, domainHandlers DomainHandlers, middlewares Middlewares, metrics prometheus.Metrics) Router {
	return Router{
		Config:         cfg,
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
		Metrics:        metrics,
	}
}
