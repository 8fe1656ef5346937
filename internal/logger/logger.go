// Package logger holds the process-wide zerolog logger.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is usable before Init; it then writes info-level JSON to stderr.
var Log = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Init configures Log. level is a zerolog level name; pretty switches to the
// human readable console writer.
func Init(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if pretty {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			With().Timestamp().Logger()
		return
	}
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
