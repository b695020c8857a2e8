// cmd/phototrap/logging.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/tamzrod/phototrap/internal/config"
	"github.com/tamzrod/phototrap/internal/persist"
)

// newLogger builds the root logger from config.
// When a log dir is set, JSON lines are also written to
// <dir>/motion_detection_<YYYYMMDD_HHMMSS>.log.
func newLogger(c config.LogConfig, stderr io.Writer, now time.Time) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", c.Level, err)
	}

	var console io.Writer = stderr
	if c.Format != "json" {
		console = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339}
	}

	closeFn := func() error { return nil }
	out := console

	if c.Dir != "" {
		if err := os.MkdirAll(c.Dir, 0o755); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log dir: %w", err)
		}
		name := filepath.Join(c.Dir, "motion_detection_"+now.Format(persist.TimestampLayout)+".log")
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log file: %w", err)
		}
		out = zerolog.MultiLevelWriter(console, f)
		closeFn = f.Close
	}

	log := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	return log, closeFn, nil
}
