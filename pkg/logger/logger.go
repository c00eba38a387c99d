package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger initializes the global zerolog logger with JSON output to stdout.
// It sets the log level based on the provided string (e.g., "info", "debug", "error").
func InitLogger(logLevel string) {
	log.Logger = log.Output(os.Stdout).With().Timestamp().Logger()

	zerolog.SetGlobalLevel(parseLevel(logLevel))

	log.Info().Msgf("Logger initialized with level: %s", zerolog.GlobalLevel().String())
}

// New returns a standalone logger writing to w at the given level. Components
// that edit configuration take a logger value so callers can route their
// output; New builds one without touching the global logger.
func New(logLevel string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(parseLevel(logLevel)).With().Timestamp().Logger()
}

func parseLevel(logLevel string) zerolog.Level {
	switch logLevel {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel // Default to info if invalid
	}
}
