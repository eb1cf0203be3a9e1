package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global zerolog logger from level and format settings.
// Unknown levels fall back to info; any format other than "console" emits JSON.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var base zerolog.Logger
	switch strings.ToLower(format) {
	case "console":
		base = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	default:
		base = zerolog.New(os.Stdout)
	}

	zerolog.SetGlobalLevel(lvl)
	log.Logger = base.With().
		Timestamp().
		Str("service", "web-mcp").
		Logger().
		Level(lvl)
}
