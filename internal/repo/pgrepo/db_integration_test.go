//go:build integration

package pgrepo

import (
	"context"
	"testing"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/repo/repotest"
	"github.com/shaiso/glimpse/internal/testinfra"
)

func TestRepos_Integration(t *testing.T) {
	testinfra.SkipIfNoDocker(t)
	dsn := testinfra.StartPostgres(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, config.StoreConfig{PostgresURL: dsn, MaxConns: 4})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	// повторный вызов не должен падать
	if err := EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("EnsureSchema (second run): %v", err)
	}

	repotest.Run(t, func(t *testing.T) repo.Repos {
		_, err := pool.Exec(ctx, `TRUNCATE movies, categories, genres, movie_categories, movie_genres`)
		if err != nil {
			t.Fatalf("truncate: %v", err)
		}
		return NewRepos(pool)
	})
}
