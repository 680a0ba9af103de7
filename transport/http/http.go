package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"hotel/transport/http/router"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	healthPath        = "/api/health"
	readHeaderTimeout = 10 * time.Second
)

type HTTP struct {
	Config *config.Config
	Router router.Router

	otel   otel.Otel
	kafka  kafka.Client
	state  atomic.Int32
	mux    *chi.Mux
	server *http.Server
	once   sync.Once
	done   chan struct{}
}

func New(cfg *config.Config, r router.Router, otel otel.Otel, kafka kafka.Client) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		otel:   otel,
		kafka:  kafka,
		done:   make(chan struct{}),
	}
}

// Serve blocks until the server has shut down.
func (h *HTTP) Serve() {
	h.setup()

	h.server = &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-h.done
}

// Adaptor exposes the routes as a plain handler for serverless runtimes.
func (h *HTTP) Adaptor() http.HandlerFunc {
	h.setup()

	return h.mux.ServeHTTP
}

// State reports the shutdown phase the server is in.
func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.state.Store(int32(ServerStateReady))
	})
}

func (h *HTTP) setupRoutes() {
	h.mux = chi.NewRouter()

	h.mux.Use(chiMiddleware.RequestID, chiMiddleware.RealIP, h.healthGuard)

	if h.Config.App.CORS.Enable {
		h.mux.Use(h.cors())
	}

	h.Router.SetupRoutes(h.mux)
}

func (h *HTTP) cors() func(http.Handler) http.Handler {
	settings := h.Config.App.CORS

	return cors.Handler(cors.Options{
		AllowedOrigins:   settings.AllowedOrigins,
		AllowedMethods:   settings.AllowedMethods,
		AllowedHeaders:   settings.AllowedHeaders,
		AllowCredentials: settings.AllowCredentials,
		MaxAge:           settings.MaxAgeSeconds,
	})
}

// healthGuard fails the health check once shutdown has begun so load balancers
// stop routing new traffic here.
func (h *HTTP) healthGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == healthPath && h.State() != ServerStateReady {
			response.WithPreparingShutdown(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(signals chan os.Signal) {
	<-signals

	defer close(h.done)

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

		return
	}

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown drains in-flight requests, then flushes spans and queued events.
func (h *HTTP) shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to drain HTTP server")
	}

	if err := h.kafka.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka client")
	}

	if err := h.otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown tracer")
	}
}
