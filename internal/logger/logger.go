// Package logger builds the zerolog logger from configuration: an optional
// console writer on stderr plus a rotating file.
package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"proofdiff/internal/config"
)

// Options select the writers. The TUI owns the terminal, so it logs to file
// only; the CLI subcommands also log to stderr.
type Options struct {
	Console bool
	// Stderr overrides the console destination (tests).
	Stderr io.Writer
}

// Logger bundles the zerolog instance with the resources backing it.
type Logger struct {
	zerolog.Logger
	file *lumberjack.Logger
	path string
}

// Path is the log file in use, or "".
func (l *Logger) Path() string { return l.path }

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// DefaultFile is the log location when none is configured.
func DefaultFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "proofdiff", "proofdiff.log")
}

// New builds a logger from cfg.
func New(cfg config.LogConfig, opts Options) (*Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		lv, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = lv
	}
	format := strings.ToLower(cfg.Format)

	var writers []io.Writer
	if opts.Console {
		dst := opts.Stderr
		if dst == nil {
			dst = os.Stderr
		}
		if format == "json" {
			writers = append(writers, dst)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: dst, TimeFormat: time.Kitchen})
		}
	}

	out := &Logger{}
	path := cfg.File
	if path == "" {
		path = DefaultFile()
	}
	if path != "-" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		out.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    max(cfg.MaxSizeMB, 1),
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		out.path = path
		if format == "json" {
			writers = append(writers, out.file)
		} else {
			writers = append(writers, zerolog.ConsoleWriter{Out: out.file, NoColor: true, TimeFormat: time.RFC3339})
		}
	}

	if len(writers) == 0 {
		out.Logger = zerolog.Nop()
		return out, nil
	}
	out.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	stdlog.SetFlags(0)
	stdlog.SetOutput(out.Logger)
	return out, nil
}
