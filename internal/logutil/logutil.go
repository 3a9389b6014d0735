// Package logutil configures the application logger
package logutil

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const envLogLevel = "DETOX_LOG_LEVEL"

// Setup installs a JSON logger writing to a rotating file at path as the
// default slog logger. The returned closer flushes and closes the file.
func Setup(path string) (*slog.Logger, io.Closer) {
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: Level(os.Getenv(envLogLevel)),
	}))

	slog.SetDefault(logger)

	return logger, w
}

// Level parses a level name, defaulting to info.
func Level(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}
