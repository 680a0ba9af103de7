package redis

import (
	"context"
	"net"
	"time"

	"hotel/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const pingTimeout = 5 * time.Second

// Options maps the primary cache settings onto a go-redis client config.
func Options(config *config.Config) *goRedis.Options {
	primary := config.Cache.Redis.Primary

	return &goRedis.Options{
		Addr:       net.JoinHostPort(primary.Host, primary.Port),
		Password:   primary.Password,
		DB:         primary.DB,
		ClientName: config.App.Name,
	}
}

// New connects to the rooms cache, rate limiter and revocation store. The
// process stops when Redis cannot be reached at startup.
func New(config *config.Config) *goRedis.Client {
	options := Options(config)
	client := goRedis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", options.Addr).Msg("Failed to connect to Redis")
	}

	log.Info().
		Int("db", options.DB).
		Str("addr", options.Addr).
		Msg("Connected to Redis")

	return client
}
