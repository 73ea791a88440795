package app

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: human-readable console output by
// default, JSON lines when LogJSON is set. Verbose lowers the global level to
// debug.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if !cfg.LogJSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
