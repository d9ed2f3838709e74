package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mvp-joe/sg-mcp/internal/config"
)

// newLogger builds the process logger. Stdout carries the MCP stream, so
// logs go to stderr unless a file is configured.
// The returned cleanup closes the log file, if any.
func newLogger(cfg config.LogConfig, verbose bool) (zerolog.Logger, func(), error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	if verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	var out io.Writer = os.Stderr
	cleanup := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return zerolog.Nop(), cleanup, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		cleanup = func() { _ = f.Close() }
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, cleanup, nil
}

func parseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
