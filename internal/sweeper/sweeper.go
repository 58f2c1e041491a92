package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/telemetry"
)

// Sweeper поддерживает join-записи в согласованном состоянии с фильмами,
// категориями и жанрами.
type Sweeper struct {
	repos       repo.Repos
	logger      *slog.Logger
	retention   time.Duration
	concurrency int
}

// Config — конфигурация Sweeper.
type Config struct {
	Repos  repo.Repos
	Logger *slog.Logger

	// Retention — сколько хранить удалённые записи перед физическим удалением.
	// 0 отключает Purge.
	Retention time.Duration

	// Concurrency — сколько запросов к хранилищу выполняется параллельно (default: 2).
	Concurrency int
}

// New создаёт новый Sweeper.
func New(cfg Config) *Sweeper {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	return &Sweeper{
		repos:       cfg.Repos,
		logger:      logger.With("component", "sweeper"),
		retention:   cfg.Retention,
		concurrency: concurrency,
	}
}

// HandleMessage — mq.Handler для очереди catalog.sweeper.
func (s *Sweeper) HandleMessage(ctx context.Context, msg *mq.Message) error {
	event, err := mq.ParseCatalogEvent(msg)
	if err != nil {
		return err
	}
	return s.Cascade(ctx, event)
}

// Cascade переносит удаление или восстановление записи на её join-записи.
//
// movie.deleted помечает удалёнными связи фильма с категориями и жанрами,
// category.deleted и genre.deleted — связи тега. restored восстанавливает
// только связи, вторая сторона которых жива. Прочие действия игнорируются.
func (s *Sweeper) Cascade(ctx context.Context, event mq.CatalogEvent) error {
	if event.Action != mq.ActionDeleted && event.Action != mq.ActionRestored {
		return nil
	}

	id, err := domain.ParseID(event.EntityID)
	if err != nil {
		return fmt.Errorf("%w: entity_id %q", mq.ErrBadMessage, event.EntityID)
	}

	restore := event.Action == mq.ActionRestored
	ops, err := s.cascadeOps(event.Entity, id, restore)
	if err != nil {
		return err
	}

	var total int64
	for _, op := range ops {
		n, err := op(ctx)
		if err != nil {
			return fmt.Errorf("cascade %s: %w", event.Type(), err)
		}
		total += n
	}

	label := "cascade_delete"
	if restore {
		label = "cascade_restore"
	}
	telemetry.SweepLinksTotal.WithLabelValues(label).Add(float64(total))

	s.logger.Info("cascade applied",
		"type", event.Type(),
		"entity_id", id,
		"links", total,
	)
	return nil
}

type linkOp func(ctx context.Context) (int64, error)

func (s *Sweeper) cascadeOps(entity mq.Entity, id domain.ID, restore bool) ([]linkOp, error) {
	mc, mg := s.repos.MovieCategories, s.repos.MovieGenres

	bind := func(fn func(context.Context, domain.ID) (int64, error)) linkOp {
		return func(ctx context.Context) (int64, error) { return fn(ctx, id) }
	}

	switch {
	case entity == mq.EntityMovie && !restore:
		return []linkOp{bind(mc.DeleteByMovie), bind(mg.DeleteByMovie)}, nil
	case entity == mq.EntityMovie && restore:
		return []linkOp{bind(mc.RestoreByMovie), bind(mg.RestoreByMovie)}, nil
	case entity == mq.EntityCategory && !restore:
		return []linkOp{bind(mc.DeleteByCategory)}, nil
	case entity == mq.EntityCategory && restore:
		return []linkOp{bind(mc.RestoreByCategory)}, nil
	case entity == mq.EntityGenre && !restore:
		return []linkOp{bind(mg.DeleteByGenre)}, nil
	case entity == mq.EntityGenre && restore:
		return []linkOp{bind(mg.RestoreByGenre)}, nil
	default:
		return nil, fmt.Errorf("%w: unknown entity %q", mq.ErrBadMessage, entity)
	}
}

// Reconcile помечает удалёнными висячие связи: фильм или тег которых
// отсутствует в хранилище (физически удалён или никогда не существовал).
func (s *Sweeper) Reconcile(ctx context.Context) (int64, error) {
	var byCategory, byGenre int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	g.Go(func() (err error) {
		byCategory, err = s.repos.MovieCategories.DeleteDangling(gctx)
		return err
	})
	g.Go(func() (err error) {
		byGenre, err = s.repos.MovieGenres.DeleteDangling(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, fmt.Errorf("delete dangling links: %w", err)
	}

	total := byCategory + byGenre
	telemetry.SweepLinksTotal.WithLabelValues("dangling").Add(float64(total))
	return total, nil
}

// PurgeStats — сколько записей удалено физически.
type PurgeStats struct {
	Links      int64
	Movies     int
	Categories int
	Genres     int
}

// Purge физически удаляет записи, помеченные удалёнными дольше Retention назад.
// Сначала удаляются связи, затем сами записи.
func (s *Sweeper) Purge(ctx context.Context, now time.Time) (PurgeStats, error) {
	var stats PurgeStats
	if s.retention <= 0 {
		return stats, nil
	}
	before := now.Add(-s.retention)

	var byCategory, byGenre int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	g.Go(func() (err error) {
		byCategory, err = s.repos.MovieCategories.Purge(gctx, before)
		return err
	})
	g.Go(func() (err error) {
		byGenre, err = s.repos.MovieGenres.Purge(gctx, before)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("purge links: %w", err)
	}
	stats.Links = byCategory + byGenre

	var movies, categories, genres []domain.ID
	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	g.Go(func() (err error) {
		movies, err = s.repos.Movies.Purge(gctx, before)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repos.Categories.Purge(gctx, before)
		return err
	})
	g.Go(func() (err error) {
		genres, err = s.repos.Genres.Purge(gctx, before)
		return err
	})
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("purge records: %w", err)
	}
	stats.Movies, stats.Categories, stats.Genres = len(movies), len(categories), len(genres)

	telemetry.SweepLinksTotal.WithLabelValues("purge").Add(float64(stats.Links))
	return stats, nil
}

// Tick выполняет Reconcile и Purge. Ошибка Reconcile не отменяет Purge.
func (s *Sweeper) Tick(ctx context.Context, now time.Time) error {
	start := time.Now()

	dangling, reconcileErr := s.Reconcile(ctx)
	if reconcileErr != nil {
		s.logger.Error("reconcile failed", "error", reconcileErr)
	}

	stats, err := s.Purge(ctx, now)
	if err != nil {
		s.logger.Error("purge failed", "error", err)
		return err
	}
	if reconcileErr != nil {
		return reconcileErr
	}

	telemetry.SweepLastRun.Set(float64(now.Unix()))
	s.logger.Info("sweep completed",
		"dangling_links", dangling,
		"purged_links", stats.Links,
		"purged_movies", stats.Movies,
		"purged_categories", stats.Categories,
		"purged_genres", stats.Genres,
		"duration", time.Since(start),
	)
	return nil
}
