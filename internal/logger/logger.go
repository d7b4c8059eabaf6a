// Package logger configures the zerolog logger. The TUI owns the terminal,
// so output goes to a file.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Setup opens the log file and returns a logger writing to it together with
// the file to close on exit.
//   - level: trace, debug, info, warn, error, or disabled
//   - format: "json" or "pretty" (console layout without colour)
//   - file: log path; empty resolves through DefaultLogPath
func Setup(level, format, file string) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	if lvl == zerolog.Disabled {
		return zerolog.Nop(), io.NopCloser(nil), nil
	}

	if file == "" {
		file, err = DefaultLogPath()
		if err != nil {
			return zerolog.Nop(), io.NopCloser(nil), err
		}
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("open log file: %w", err)
	}

	return New(f, lvl, format), f, nil
}

// New builds a logger on w.
func New(w io.Writer, lvl zerolog.Level, format string) zerolog.Logger {
	var writer io.Writer = w
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// DefaultLogPath resolves the log file path in priority order:
// 1. $XDG_STATE_HOME/quizdeck/quizdeck.log
// 2. ~/.local/state/quizdeck/quizdeck.log
func DefaultLogPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "quizdeck", "quizdeck.log"), nil
}
