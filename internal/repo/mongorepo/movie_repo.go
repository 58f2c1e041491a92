package mongorepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// MovieRepo — репозиторий фильмов.
type MovieRepo struct {
	coll *mongo.Collection
}

var _ repo.MovieRepo = (*MovieRepo)(nil)

// List возвращает все живые фильмы.
func (r *MovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	return r.find(ctx, live())
}

// GetByID возвращает живой фильм.
func (r *MovieRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Movie, error) {
	doc, err := findOne[movieDoc](ctx, r.coll, live(byID(id)))
	if err != nil {
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

// GetByIDs возвращает живые фильмы из списка.
func (r *MovieRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Movie, error) {
	if len(ids) == 0 {
		return []domain.Movie{}, nil
	}
	return r.find(ctx, live(inIDs("_id", ids)))
}

// Create создаёт фильм.
func (r *MovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	if movie.ID == "" {
		movie.ID = domain.NewID()
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}
	movie.UpdatedAt = movie.CreatedAt

	if _, err := r.coll.InsertOne(ctx, movieToDoc(movie)); err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// Update применяет патч к живому фильму.
func (r *MovieRepo) Update(ctx context.Context, id domain.ID, patch domain.MoviePatch) (*domain.Movie, error) {
	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Overview != nil {
		set = append(set, bson.E{Key: "overview", Value: *patch.Overview})
	}
	if patch.PosterPath != nil {
		set = append(set, bson.E{Key: "poster_path", Value: *patch.PosterPath})
	}
	if patch.OriginalLanguage != nil {
		set = append(set, bson.E{Key: "original_language", Value: *patch.OriginalLanguage})
	}
	if patch.VoteAverage != nil {
		set = append(set, bson.E{Key: "vote_average", Value: *patch.VoteAverage})
	}

	doc, err := updateOne[movieDoc](ctx, r.coll, live(byID(id)), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

// Delete помечает фильм удалённым.
func (r *MovieRepo) Delete(ctx context.Context, id domain.ID) error {
	return softDelete(ctx, r.coll, id)
}

// Restore снимает пометку удаления.
func (r *MovieRepo) Restore(ctx context.Context, id domain.ID) (*domain.Movie, error) {
	update := restoreUpdate(bson.E{Key: "updatedAt", Value: time.Now().UTC()})
	doc, err := updateOne[movieDoc](ctx, r.coll, deletedFilter(id), update)
	if err != nil {
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

// Purge физически удаляет фильмы, удалённые раньше before.
func (r *MovieRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purge(ctx, r.coll, before)
}

func (r *MovieRepo) find(ctx context.Context, filter bson.D) ([]domain.Movie, error) {
	docs, err := findAll[movieDoc](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	movies := make([]domain.Movie, len(docs))
	for i, d := range docs {
		movies[i] = d.toDomain()
	}
	return movies, nil
}
