package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/config"
)

// New builds the service logger: console output for local development,
// JSON everywhere else. Unknown levels fall back to info.
func New(cfg config.LoggingConfig, component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(writer)
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()
}
