// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Logger = zerolog.Logger

// New builds the root logger. An unknown level falls back to info; pretty
// enables the human-readable console writer for local runs.
func New(level string, pretty bool) Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	l := log.Logger
	if pretty {
		l = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = l
	return l
}
