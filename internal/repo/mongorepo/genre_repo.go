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

// GenreRepo — репозиторий жанров.
type GenreRepo struct {
	coll *mongo.Collection
}

var _ repo.GenreRepo = (*GenreRepo)(nil)

func (r *GenreRepo) List(ctx context.Context) ([]domain.Genre, error) {
	return r.find(ctx, live())
}

func (r *GenreRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Genre, error) {
	doc, err := findOne[genreDoc](ctx, r.coll, live(byID(id)))
	if err != nil {
		return nil, err
	}
	g := doc.toDomain()
	return &g, nil
}

func (r *GenreRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return []domain.Genre{}, nil
	}
	return r.find(ctx, live(inIDs("_id", ids)))
}

func (r *GenreRepo) Create(ctx context.Context, genre *domain.Genre) error {
	if genre.ID == "" {
		genre.ID = domain.NewID()
	}
	if _, err := r.coll.InsertOne(ctx, genreDoc{ID: genre.ID.ObjectID(), Name: genre.Name}); err != nil {
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *GenreRepo) Update(ctx context.Context, id domain.ID, patch domain.GenrePatch) (*domain.Genre, error) {
	if patch.Name == nil {
		return r.GetByID(ctx, id)
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "name", Value: *patch.Name}}}}
	doc, err := updateOne[genreDoc](ctx, r.coll, live(byID(id)), update)
	if err != nil {
		return nil, err
	}
	g := doc.toDomain()
	return &g, nil
}

func (r *GenreRepo) Delete(ctx context.Context, id domain.ID) error {
	return softDelete(ctx, r.coll, id)
}

func (r *GenreRepo) Restore(ctx context.Context, id domain.ID) (*domain.Genre, error) {
	doc, err := updateOne[genreDoc](ctx, r.coll, deletedFilter(id), restoreUpdate())
	if err != nil {
		return nil, err
	}
	g := doc.toDomain()
	return &g, nil
}

func (r *GenreRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purge(ctx, r.coll, before)
}

func (r *GenreRepo) find(ctx context.Context, filter bson.D) ([]domain.Genre, error) {
	docs, err := findAll[genreDoc](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	genres := make([]domain.Genre, len(docs))
	for i, d := range docs {
		genres[i] = d.toDomain()
	}
	return genres, nil
}
