// Package logging configures the diagnostic logger. Diagnostics never go to
// stdout, which belongs to the dashboard.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LevelEnv names the environment variable holding the default log level.
const LevelEnv = "PROGRESSWATCH_LOG_LEVEL"

// Config controls logger initialization.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Empty means info.
	Level string
	// File receives log lines. Empty discards all output.
	File string
}

var (
	base   = zerolog.Nop()
	closer io.Closer
)

// Init replaces the process logger. The returned function closes the log file.
func Init(cfg Config) (func(), error) {
	levelName := cfg.Level
	if levelName == "" {
		levelName = os.Getenv(LevelEnv)
	}
	level := zerolog.InfoLevel
	if levelName != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(levelName))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", levelName, err)
		}
		level = parsed
	}

	if cfg.File == "" {
		base = zerolog.Nop()
		return func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	closer = f

	zerolog.TimeFieldFormat = time.RFC3339
	base = zerolog.New(f).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()

	return func() {
		if closer != nil {
			_ = closer.Close()
			closer = nil
		}
		base = zerolog.Nop()
	}, nil
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
