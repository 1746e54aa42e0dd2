package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger. Unknown levels fall back to info.
func Init(level string, pretty bool) zerolog.Logger {
	return InitWriter(os.Stderr, level, pretty)
}

func InitWriter(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return log.Logger
}

// Component returns the global logger tagged with a component name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
