// Glimpse API — HTTP-сервер каталога фильмов.
//
// Конфигурация: значения по умолчанию, затем glimpse.yaml (или CONFIG_PATH),
// затем переменные окружения (PORT, MONGO_URI, STORE_DRIVER, DB_URL, AMQP_URL,
// LOG_LEVEL, LOG_FORMAT, ...).
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaiso/glimpse/internal/api"
	"github.com/shaiso/glimpse/internal/app"
	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := telemetry.SetupLogger(cfg.Log)
	logger.Info("starting glimpse-api", "driver", cfg.Store.Driver)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repos, closeStore, err := app.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	handlerCfg := api.Config{
		Repos:       repos,
		Logger:      logger,
		CORSOrigins: cfg.Server.CORSOrigins,
	}

	conn, err := app.ConnectAMQP(ctx, cfg.AMQP, "glimpse-api", logger)
	if err != nil {
		// API работает и без событий.
		logger.Warn("catalog events disabled", "error", err)
	}
	if conn != nil {
		defer conn.Close()
		handlerCfg.Publisher = mq.NewPublisher(conn, logger)
	}

	handler := api.NewHandler(handlerCfg)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
