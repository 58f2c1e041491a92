package api

import (
	"context"
	"log/slog"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/repo"
	"github.com/shaiso/glimpse/internal/telemetry"
)

// EventPublisher публикует события каталога. Реализуется mq.Publisher.
type EventPublisher interface {
	PublishCatalogEvent(ctx context.Context, event mq.CatalogEvent) error
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	movies          repo.MovieRepo
	categories      repo.CategoryRepo
	genres          repo.GenreRepo
	movieCategories repo.MovieCategoryRepo
	movieGenres     repo.MovieGenreRepo
	pinger          repo.Pinger
	publisher       EventPublisher
	logger          *slog.Logger

	corsOrigins []string
}

// Config — конфигурация для создания Handler.
type Config struct {
	Repos repo.Repos

	// Publisher — nil отключает публикацию событий.
	Publisher EventPublisher
	Logger    *slog.Logger

	// CORSOrigins — разрешённые origin-ы. Пустой список разрешает все.
	CORSOrigins []string
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		movies:          cfg.Repos.Movies,
		categories:      cfg.Repos.Categories,
		genres:          cfg.Repos.Genres,
		movieCategories: cfg.Repos.MovieCategories,
		movieGenres:     cfg.Repos.MovieGenres,
		pinger:          cfg.Repos.Pinger,
		publisher:       cfg.Publisher,
		logger:          logger,
		corsOrigins:     cfg.CORSOrigins,
	}
}

// publish отправляет событие каталога. Ошибка публикации только логируется.
func (h *Handler) publish(ctx context.Context, entity mq.Entity, action mq.Action, id domain.ID, related ...domain.ID) {
	if h.publisher == nil {
		return
	}

	event := mq.CatalogEvent{
		Entity:   entity,
		Action:   action,
		EntityID: id.String(),
	}
	for _, r := range related {
		event.IDs = append(event.IDs, r.String())
	}

	if err := h.publisher.PublishCatalogEvent(ctx, event); err != nil {
		h.logger.Warn("failed to publish catalog event",
			"type", event.Type(),
			"entity_id", event.EntityID,
			"error", err,
		)
	}
}

// log возвращает логгер запроса (с request_id), если он есть в контексте.
func (h *Handler) log(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(telemetry.CtxLogger).(*slog.Logger); ok {
		return logger
	}
	return h.logger
}

// restoreLinks восстанавливает связи записи сразу при её восстановлении,
// не дожидаясь события. Повторное восстановление идемпотентно.
func (h *Handler) restoreLinks(ctx context.Context, entity mq.Entity, id domain.ID) {
	var ops []func(context.Context, domain.ID) (int64, error)
	switch entity {
	case mq.EntityMovie:
		ops = append(ops, h.movieCategories.RestoreByMovie, h.movieGenres.RestoreByMovie)
	case mq.EntityCategory:
		ops = append(ops, h.movieCategories.RestoreByCategory)
	case mq.EntityGenre:
		ops = append(ops, h.movieGenres.RestoreByGenre)
	}

	var total int64
	for _, op := range ops {
		n, err := op(ctx, id)
		if err != nil {
			h.log(ctx).Warn("failed to restore links", "entity", entity, "id", id, "error", err)
			return
		}
		total += n
	}
	if total > 0 {
		h.log(ctx).Info("links restored", "entity", entity, "id", id, "links", total)
	}
}
