package logger

import (
	"hotel/config"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	log.Logger = log.Output(output)
	log.Trace().Msg("Zerolog initialized.")
}

// Configure applies the configured level and switches to JSON lines in production.
func Configure(config *config.Config) {
	SetLogLevel(config)

	if config.IsProduction() {
		UseOutput(os.Stdout)
	}
}

// UseOutput replaces the console writer with structured output on w.
func UseOutput(w io.Writer) {
	log.Logger = zerolog.New(w).With().Timestamp().Str("service", "hotel").Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil || config.Server.LogLevel == "" {
		level = zerolog.InfoLevel
		log.Info().Str("loglevel", level.String()).Msg("Environment has no valid log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
