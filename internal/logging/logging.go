// Package logging configures the application logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/handiism/pls/internal/config"
)

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds a logger writing to the rotated log file of settings and,
// when console is not nil, to console as well.
//
// The returned closer releases the log file. If the log file cannot be
// prepared the logger writes to console only, warns about it there and the
// reason is returned alongside a usable logger and closer.
func Setup(settings *config.Settings, console io.Writer) (*slog.Logger, io.Closer, error) {
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}

	var (
		closer  io.Closer = nopCloser{}
		fileErr error
	)
	if settings.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(settings.LogFile), 0o755); err != nil {
			fileErr = fmt.Errorf("log file %s disabled: %w", settings.LogFile, err)
		} else {
			file := &lumberjack.Logger{
				Filename:   settings.LogFile,
				MaxSize:    settings.LogMaxSize,    // MB
				MaxBackups: settings.LogMaxBackups, // number of old files
			}
			writers = append(writers, file)
			closer = file
		}
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(settings.LogLevel),
	})
	logger := slog.New(handler)
	if fileErr != nil {
		logger.Warn("file logging disabled", "path", settings.LogFile, "error", fileErr)
	}
	return logger, closer, fileErr
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
