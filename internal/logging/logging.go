// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the given level.
// Level names follow zerolog ("debug", "info", "warn", ...).
func New(w io.Writer, level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", level, err)
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(writer).
		Level(parsed).
		With().
		Timestamp().
		Str("service", "doiminer").
		Logger()

	return logger, nil
}
