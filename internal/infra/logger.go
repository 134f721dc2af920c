package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger. The level defaults by environment
// (debug in development, info otherwise) and LOG_LEVEL overrides it;
// development output is pretty-printed, everything else is JSON.
func NewLogger(appEnv, logLevel string) zerolog.Logger {
	out := io.Writer(os.Stdout)
	level := zerolog.InfoLevel
	if appEnv == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		level = zerolog.DebugLevel
	}
	if logLevel != "" {
		if parsed, err := zerolog.ParseLevel(logLevel); err == nil {
			level = parsed
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "fundbridge-api").
		Logger()
}
