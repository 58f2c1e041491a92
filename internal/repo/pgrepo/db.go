package pgrepo

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/repo"
)

//go:embed schema.sql
var schemaSQL string

// NewPool создаёт пул соединений и проверяет доступность БД.
func NewPool(ctx context.Context, cfg config.StoreConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = 10
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

// EnsureSchema создаёт таблицы и индексы, если их нет.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// NewRepos собирает все репозитории поверх пула.
func NewRepos(pool *pgxpool.Pool) repo.Repos {
	return repo.Repos{
		Movies:          NewMovieRepo(pool),
		Categories:      NewCategoryRepo(pool),
		Genres:          NewGenreRepo(pool),
		MovieCategories: NewMovieCategoryRepo(pool),
		MovieGenres:     NewMovieGenreRepo(pool),
		Pinger:          pool,
	}
}
