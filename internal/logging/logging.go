// Package logging builds the CLI's slog logger: a tint console handler on
// stderr, optionally teed into a size-rotated log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures NewLogger. Console defaults to os.Stderr.
type Options struct {
	Level   string
	File    string
	NoColor bool
	Console io.Writer
}

const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// NewLogger creates the logger and installs it as the slog default. The
// returned closer flushes and closes the log file, if any.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	file := strings.TrimSpace(opts.File)
	if file == "" {
		logger := newLogger(console, level, opts.NoColor)
		slog.SetDefault(logger)
		return logger, io.NopCloser(nil), nil
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir failed: %w", err)
		}
	}
	logFile := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
	}
	logger := newLogger(io.MultiWriter(console, logFile), level, true)
	slog.SetDefault(logger)
	logger.Debug("file_logging_enabled", "path", logFile.Filename)
	return logger, logFile, nil
}

func newLogger(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// ParseLevel maps a level name to slog.Level. Unknown names mean warn,
// which keeps the CLI quiet by default.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
