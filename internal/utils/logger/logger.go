package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"scanpass/internal/config"
)

// New создает логгер для окружения env с выводом в stdout
func New(env string) *slog.Logger {
	return NewWithOutput(env, os.Stdout)
}

// NewWithOutput создает логгер для окружения env с выводом в w.
// local - цветной человекочитаемый вывод, dev - JSON с DEBUG, prod - JSON с INFO.
func NewWithOutput(env string, w io.Writer) *slog.Logger {
	return NewWithLevel(env, "", w)
}

// NewWithLevel как NewWithOutput, но level (debug, info, warn, error)
// заменяет уровень окружения. Пустой или неизвестный level не меняет его.
func NewWithLevel(env, level string, w io.Writer) *slog.Logger {
	lvl := envLevel(env)
	if parsed, err := ParseLevel(level); err == nil && level != "" {
		lvl = parsed
	}

	if env == config.EnvLocal {
		return setupPrettySlogTo(w, lvl)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ParseLevel разбирает имя уровня журнала
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

func envLevel(env string) slog.Level {
	switch env {
	case config.EnvLocal, config.EnvDev:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Discard возвращает логгер, который ничего не пишет. Удобно в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogTo(os.Stdout, slog.LevelDebug)
}

func setupPrettySlogTo(w io.Writer, level slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: level,
		},
	}

	return slog.New(opts.NewPrettyHandler(w))
}
