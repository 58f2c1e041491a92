package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"

	"github.com/shaiso/glimpse/internal/config"
)

// ParseLevel переводит строку уровня в slog.Level.
// Возможные значения: debug, info, warn, error (регистр не важен).
// По умолчанию: info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// SetupLogger инициализирует глобальный логгер.
//
// Формат вывода:
//   - "json" (по умолчанию) — JSON формат для production
//   - "text" — logfmt
//   - "pretty" — цветной вывод для локальной разработки
func SetupLogger(cfg config.LogConfig) *slog.Logger {
	logger := slog.New(NewHandler(os.Stdout, cfg))
	slog.SetDefault(logger)
	return logger
}

// NewHandler создаёт slog.Handler по конфигурации.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := ParseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	switch strings.ToLower(cfg.Format) {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "pretty":
		return charmlog.NewWithOptions(w, charmlog.Options{
			Level:           charmlog.Level(level),
			ReportTimestamp: true,
			ReportCaller:    level == slog.LevelDebug,
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// Ключи контекста для передачи данных в логгер.
type ctxKey string

const (
	// CtxLogger — ключ для логгера в контексте.
	CtxLogger ctxKey = "logger"
)

// WithLogger добавляет логгер в контекст.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, CtxLogger, logger)
}

// FromContext извлекает логгер из контекста.
// Если логгер не найден, возвращает глобальный.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(CtxLogger).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithRequestID возвращает логгер с добавленным request_id.
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

// WithEntity возвращает логгер с сущностью каталога и её ID.
func WithEntity(logger *slog.Logger, entity, id string) *slog.Logger {
	return logger.With("entity", entity, "entity_id", id)
}
