package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/repo/memrepo"
	"github.com/shaiso/glimpse/internal/repo/mongorepo"
	"github.com/shaiso/glimpse/internal/repo/pgrepo"
)

// OpenStore подключается к хранилищу, выбранному в cfg.Driver.
// Возвращённую функцию close нужно вызвать при завершении процесса.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (repo.Repos, func(), error) {
	switch cfg.Driver {
	case config.DriverMongo:
		store, err := mongorepo.Connect(ctx, cfg)
		if err != nil {
			return repo.Repos{}, nil, err
		}
		logger.Info("connected to mongo", "database", cfg.MongoDatabase)

		// Индексы ускоряют выборки, но без них сервис работает.
		if err := store.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}

		closeFn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Close(closeCtx); err != nil {
				logger.Error("failed to disconnect mongo", "error", err)
			}
		}
		return store.Repos(), closeFn, nil

	case config.DriverPostgres:
		pool, err := pgrepo.NewPool(ctx, cfg)
		if err != nil {
			return repo.Repos{}, nil, err
		}
		logger.Info("connected to postgres")

		if err := pgrepo.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return repo.Repos{}, nil, err
		}
		return pgrepo.NewRepos(pool), pool.Close, nil

	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memrepo.New().Repos(), func() {}, nil

	default:
		return repo.Repos{}, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
