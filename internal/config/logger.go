package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global logger, matching the engine-wide
// level/format convention: JSON by default, a colorized console writer
// when format is "console".
func InitLogger(level, format string) {
	logLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if format == "console" {
		output = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	log.Info().Str("level", logLevel.String()).Str("format", format).Msg("logger initialized")
}

// NewLogger returns a child logger tagged with the given component name,
// the convention the simulation driver and the replication runner log
// under.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}
