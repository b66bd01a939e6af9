// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the zerolog logger shared by every crowdassist
// component.
//
// Command-line runs log human-readable lines to stderr. While the TUI owns
// the terminal, logs go to a file instead so they do not corrupt the screen.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/config"
)

// DefaultFile is the log file name inside the config directory.
const DefaultFile = "crowdassist.log"

// Mode selects the log sink.
type Mode int

const (
	// Console writes colorized lines to stderr.
	Console Mode = iota
	// File appends JSON lines to the log file.
	File
)

// ParseLevel maps a config level name to a zerolog level. Unknown names
// fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds a logger for cfg. The returned closer releases the log file
// and is safe to call when no file was opened.
func New(cfg config.LoggingConfig, mode Mode) (zerolog.Logger, io.Closer, error) {
	level := ParseLevel(cfg.Level)

	if mode == Console {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return NewWithWriter(w, level), nopCloser{}, nil
	}

	path := cfg.File
	if path == "" {
		p, err := config.DataPath(DefaultFile)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}
	return NewWithWriter(f, level), f, nil
}

// NewWithWriter builds a logger writing to w at level.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
