// Package logger provides the structured logger used across straps.
//
// It mirrors the teacher's gnark/logger package: a single process-wide
// zerolog.Logger, configurable output and level, lazily initialized.
package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
}

// Logger returns the shared straps logger, initializing it on first use.
func Logger() *zerolog.Logger {
	once.Do(func() {
		logger = defaultLogger()
	})
	return &logger
}

// SetOutput redirects every subsequent log record. Intended for tests and
// embedders who want to capture or silence logs.
func SetOutput(w zerolog.Logger) {
	once.Do(func() {})
	logger = w
}

// SetLevel adjusts the minimum severity the shared logger emits.
func SetLevel(level zerolog.Level) {
	Logger() // ensure initialized
	logger = logger.Level(level)
}
