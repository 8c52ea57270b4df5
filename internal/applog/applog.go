// Package applog は設定に基づいて slog ロガーを組み立てます。
package applog

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel は log.level の文字列を slog.Level に変換します。不明な値は Info
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New は APP_ENV=dev なら tint の色付きハンドラ、それ以外はソース位置付きの JSON ハンドラでロガーを作ります
func New(w io.Writer, level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	lvl, ok := ParseLevel(level)
	logLevel.Set(lvl)

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}

	logger := slog.New(handler).With(slog.String("app", "algo-review-keep"))
	if !ok {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	return logger
}
