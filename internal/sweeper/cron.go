package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Run запускает Tick по расписанию schedule до отмены ctx.
//
// schedule — стандартное cron-выражение из пяти полей или дескриптор
// (@hourly, @every 30m). Пересекающиеся тики пропускаются.
func (s *Sweeper) Run(ctx context.Context, schedule string) error {
	logger := cronLogger{s.logger}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(schedule, func() {
		if err := s.Tick(ctx, time.Now().UTC()); err != nil {
			s.logger.Error("sweep tick failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("parse schedule %q: %w", schedule, err)
	}

	s.logger.Info("sweeper scheduled", "schedule", schedule)
	c.Start()

	<-ctx.Done()

	// ждём завершения текущего тика
	<-c.Stop().Done()
	s.logger.Info("sweeper stopped")
	return nil
}

// cronLogger — адаптер slog для cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
