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

// linkColl — join-коллекция: movieId + поле тега (categoryId/genreId).
type linkColl struct {
	coll     *mongo.Collection
	movies   *mongo.Collection
	tags     *mongo.Collection
	tagField string
}

// linkRef — минимальная проекция join-документа.
type linkRef struct {
	ID         bson.ObjectID `bson:"_id"`
	MovieID    bson.ObjectID `bson:"movieId"`
	CategoryID bson.ObjectID `bson:"categoryId"`
	GenreID    bson.ObjectID `bson:"genreId"`
}

func (l linkRef) tag(field string) domain.ID {
	if field == "genreId" {
		return domain.IDFromObjectID(l.GenreID)
	}
	return domain.IDFromObjectID(l.CategoryID)
}

func (c linkColl) byField(field string, id domain.ID) bson.E {
	return bson.E{Key: field, Value: id.ObjectID()}
}

func (c linkColl) link(ctx context.Context, tagID domain.ID, movieIDs []domain.ID) error {
	movieIDs = domain.UniqueIDs(movieIDs)
	if len(movieIDs) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(movieIDs))
	for _, movieID := range movieIDs {
		filter := bson.D{c.byField("movieId", movieID), c.byField(c.tagField, tagID)}
		update := append(restoreUpdate(),
			bson.E{Key: "$setOnInsert", Value: bson.D{{Key: "_id", Value: bson.NewObjectID()}}},
		)
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
	}

	if _, err := c.coll.BulkWrite(ctx, models); err != nil {
		return fmt.Errorf("link %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c linkColl) markDeleted(ctx context.Context, filter bson.D) (int64, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "deleted", Value: true},
		{Key: "deletedAt", Value: time.Now().UTC()},
	}}}
	result, err := c.coll.UpdateMany(ctx, append(live(), filter...), update)
	if err != nil {
		return 0, fmt.Errorf("delete links in %s: %w", c.coll.Name(), err)
	}
	return result.ModifiedCount, nil
}

func (c linkColl) deleteBy(ctx context.Context, field string, id domain.ID) (int64, error) {
	return c.markDeleted(ctx, bson.D{c.byField(field, id)})
}

// restoreBy восстанавливает удалённые связи, у которых обе стороны живы.
func (c linkColl) restoreBy(ctx context.Context, field string, id domain.ID) (int64, error) {
	refs, err := findAll[linkRef](ctx, c.coll, bson.D{
		c.byField(field, id),
		{Key: "deleted", Value: true},
	})
	if err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	movieIDs := make([]domain.ID, 0, len(refs))
	tagIDs := make([]domain.ID, 0, len(refs))
	for _, ref := range refs {
		movieIDs = append(movieIDs, domain.IDFromObjectID(ref.MovieID))
		tagIDs = append(tagIDs, ref.tag(c.tagField))
	}

	liveMovies, err := liveSet(ctx, c.movies, movieIDs)
	if err != nil {
		return 0, err
	}
	liveTags, err := liveSet(ctx, c.tags, tagIDs)
	if err != nil {
		return 0, err
	}

	var restorable []domain.ID
	for _, ref := range refs {
		if liveMovies[domain.IDFromObjectID(ref.MovieID)] && liveTags[ref.tag(c.tagField)] {
			restorable = append(restorable, domain.IDFromObjectID(ref.ID))
		}
	}
	if len(restorable) == 0 {
		return 0, nil
	}

	result, err := c.coll.UpdateMany(ctx, bson.D{inIDs("_id", restorable)}, restoreUpdate())
	if err != nil {
		return 0, fmt.Errorf("restore links in %s: %w", c.coll.Name(), err)
	}
	return result.ModifiedCount, nil
}

// deleteDangling помечает удалёнными связи, вторая сторона которых отсутствует.
// Связи с мягко удалёнными записями остаются: их скрывает чтение.
func (c linkColl) deleteDangling(ctx context.Context) (int64, error) {
	movies, err := distinctIDs(ctx, c.movies, bson.D{})
	if err != nil {
		return 0, err
	}
	tags, err := distinctIDs(ctx, c.tags, bson.D{})
	if err != nil {
		return 0, err
	}

	return c.markDeleted(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "movieId", Value: bson.D{{Key: "$nin", Value: objectIDs(movies)}}}},
		bson.D{{Key: c.tagField, Value: bson.D{{Key: "$nin", Value: objectIDs(tags)}}}},
	}}})
}

func (c linkColl) purge(ctx context.Context, before time.Time) (int64, error) {
	result, err := c.coll.DeleteMany(ctx, bson.D{
		{Key: "deleted", Value: true},
		{Key: "deletedAt", Value: bson.D{{Key: "$lt", Value: before}}},
	})
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", c.coll.Name(), err)
	}
	return result.DeletedCount, nil
}

// liveSet возвращает множество живых ID из списка.
func liveSet(ctx context.Context, coll *mongo.Collection, ids []domain.ID) (map[domain.ID]bool, error) {
	found, err := distinctIDs(ctx, coll, live(inIDs("_id", domain.UniqueIDs(ids))))
	if err != nil {
		return nil, err
	}
	set := make(map[domain.ID]bool, len(found))
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}

// --- MovieCategory ---

// MovieCategoryRepo — репозиторий связей фильм ↔ категория.
type MovieCategoryRepo struct {
	c linkColl
}

var _ repo.MovieCategoryRepo = (*MovieCategoryRepo)(nil)

func (s *Store) movieCategoryRepo() *MovieCategoryRepo {
	return &MovieCategoryRepo{c: linkColl{
		coll:     s.db.Collection(collMovieCategories),
		movies:   s.db.Collection(collMovies),
		tags:     s.db.Collection(collCategories),
		tagField: "categoryId",
	}}
}

func (r *MovieCategoryRepo) List(ctx context.Context) ([]domain.MovieCategory, error) {
	return r.find(ctx, live())
}

func (r *MovieCategoryRepo) ListByCategory(ctx context.Context, categoryID domain.ID) ([]domain.MovieCategory, error) {
	return r.find(ctx, live(r.c.byField("categoryId", categoryID)))
}

func (r *MovieCategoryRepo) ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieCategory, error) {
	if len(movieIDs) == 0 {
		return []domain.MovieCategory{}, nil
	}
	return r.find(ctx, live(inIDs("movieId", movieIDs)))
}

func (r *MovieCategoryRepo) Link(ctx context.Context, categoryID domain.ID, movieIDs []domain.ID) error {
	return r.c.link(ctx, categoryID, movieIDs)
}

func (r *MovieCategoryRepo) DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.c.deleteBy(ctx, "movieId", movieID)
}

func (r *MovieCategoryRepo) DeleteByCategory(ctx context.Context, categoryID domain.ID) (int64, error) {
	return r.c.deleteBy(ctx, "categoryId", categoryID)
}

func (r *MovieCategoryRepo) RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.c.restoreBy(ctx, "movieId", movieID)
}

func (r *MovieCategoryRepo) RestoreByCategory(ctx context.Context, categoryID domain.ID) (int64, error) {
	return r.c.restoreBy(ctx, "categoryId", categoryID)
}

func (r *MovieCategoryRepo) DeleteDangling(ctx context.Context) (int64, error) {
	return r.c.deleteDangling(ctx)
}

func (r *MovieCategoryRepo) Purge(ctx context.Context, before time.Time) (int64, error) {
	return r.c.purge(ctx, before)
}

func (r *MovieCategoryRepo) find(ctx context.Context, filter bson.D) ([]domain.MovieCategory, error) {
	docs, err := findAll[movieCategoryDoc](ctx, r.c.coll, filter)
	if err != nil {
		return nil, err
	}
	links := make([]domain.MovieCategory, len(docs))
	for i, d := range docs {
		links[i] = d.toDomain()
	}
	return links, nil
}

// --- MovieGenre ---

// MovieGenreRepo — репозиторий связей фильм ↔ жанр.
type MovieGenreRepo struct {
	c linkColl
}

var _ repo.MovieGenreRepo = (*MovieGenreRepo)(nil)

func (s *Store) movieGenreRepo() *MovieGenreRepo {
	return &MovieGenreRepo{c: linkColl{
		coll:     s.db.Collection(collMovieGenres),
		movies:   s.db.Collection(collMovies),
		tags:     s.db.Collection(collGenres),
		tagField: "genreId",
	}}
}

func (r *MovieGenreRepo) List(ctx context.Context) ([]domain.MovieGenre, error) {
	return r.find(ctx, live())
}

func (r *MovieGenreRepo) ListByGenre(ctx context.Context, genreID domain.ID) ([]domain.MovieGenre, error) {
	return r.find(ctx, live(r.c.byField("genreId", genreID)))
}

func (r *MovieGenreRepo) ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieGenre, error) {
	if len(movieIDs) == 0 {
		return []domain.MovieGenre{}, nil
	}
	return r.find(ctx, live(inIDs("movieId", movieIDs)))
}

func (r *MovieGenreRepo) Link(ctx context.Context, genreID domain.ID, movieIDs []domain.ID) error {
	return r.c.link(ctx, genreID, movieIDs)
}

func (r *MovieGenreRepo) DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.c.deleteBy(ctx, "movieId", movieID)
}

func (r *MovieGenreRepo) DeleteByGenre(ctx context.Context, genreID domain.ID) (int64, error) {
	return r.c.deleteBy(ctx, "genreId", genreID)
}

func (r *MovieGenreRepo) RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.c.restoreBy(ctx, "movieId", movieID)
}

func (r *MovieGenreRepo) RestoreByGenre(ctx context.Context, genreID domain.ID) (int64, error) {
	return r.c.restoreBy(ctx, "genreId", genreID)
}

func (r *MovieGenreRepo) DeleteDangling(ctx context.Context) (int64, error) {
	return r.c.deleteDangling(ctx)
}

func (r *MovieGenreRepo) Purge(ctx context.Context, before time.Time) (int64, error) {
	return r.c.purge(ctx, before)
}

func (r *MovieGenreRepo) find(ctx context.Context, filter bson.D) ([]domain.MovieGenre, error) {
	docs, err := findAll[movieGenreDoc](ctx, r.c.coll, filter)
	if err != nil {
		return nil, err
	}
	links := make([]domain.MovieGenre, len(docs))
	for i, d := range docs {
		links[i] = d.toDomain()
	}
	return links, nil
}
