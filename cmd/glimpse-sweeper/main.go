// Glimpse Sweeper — фоновый процесс обслуживания связей каталога.
//
// Слушает события *.deleted и *.restored из RabbitMQ и переносит удаление
// и восстановление на join-записи. По расписанию (SWEEPER_SCHEDULE) сверяет
// связи с живыми записями и физически удаляет записи старше SWEEPER_RETENTION.
// Без AMQP_URL работает только по расписанию.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/glimpse/internal/app"
	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/sweeper"
	"github.com/shaiso/glimpse/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(cfg.Log)
	logger.Info("starting glimpse-sweeper",
		"schedule", cfg.Sweeper.Schedule,
		"retention", cfg.Sweeper.Retention,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repos, closeStore, err := app.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	sw := sweeper.New(sweeper.Config{
		Repos:       repos,
		Logger:      logger,
		Retention:   cfg.Sweeper.Retention,
		Concurrency: cfg.Sweeper.Concurrency,
	})

	conn, err := app.ConnectAMQP(ctx, cfg.AMQP, "glimpse-sweeper", logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	if conn != nil {
		defer conn.Close()
		logger.Debug(mq.TopologyInfo())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := repos.Pinger.Ping(pingCtx); err != nil {
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		if conn != nil && !conn.IsConnected() {
			http.Error(w, "rabbitmq unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", telemetry.MetricsHandler())

	server := &http.Server{
		Addr:              cfg.Sweeper.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sw.Run(gctx, cfg.Sweeper.Schedule)
	})

	if conn != nil {
		consumer := mq.NewConsumer(conn, logger, mq.ConsumerConfig{
			Queue:    mq.QueueSweeper,
			Handler:  sw.HandleMessage,
			Prefetch: cfg.Sweeper.Concurrency,
		})
		g.Go(func() error {
			return consumer.Run(gctx)
		})
	}

	g.Go(func() error {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("sweeper stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped")
}
