//go:build wireinject
// +build wireinject

package di

import (
	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/kafka"
	"hotel/infras/mailer"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/infras/prometheus"
	"hotel/infras/redis"
	"hotel/infras/s3"
	"hotel/permissions"
	"hotel/shared/cache"
	"hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"

	"github.com/google/wire"

	adminRepository "hotel/internal/domains/admin/repository"
	authService "hotel/internal/domains/auth/service"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	contactRepository "hotel/internal/domains/contact/repository"
	contactService "hotel/internal/domains/contact/service"
	notificationService "hotel/internal/domains/notification/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	userRepository "hotel/internal/domains/user/repository"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	contactHandler "hotel/internal/handlers/contact"
	healthHandler "hotel/internal/handlers/health"
	roomHandler "hotel/internal/handlers/room"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	mailer.New,
	prometheus.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var repositories = wire.NewSet(
	userRepository.New,
	adminRepository.New,
	roomRepository.New,
	bookingRepository.New,
	contactRepository.New,
)

var domains = wire.NewSet(
	notificationService.New,
	authService.New,
	roomService.New,
	bookingService.New,
	contactService.New,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	roomHandler.New,
	bookingHandler.New,
	contactHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		repositories,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
