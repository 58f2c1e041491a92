package mongorepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/shaiso/glimpse/internal/config"
	"github.com/shaiso/glimpse/internal/repo"
)

// Имена коллекций совпадают с теми, что создавало исходное приложение.
const (
	collMovies          = "movies"
	collCategories      = "categories"
	collGenres          = "genres"
	collMovieCategories = "moviecategories"
	collMovieGenres     = "moviegenres"
)

// Store — подключение к документному хранилищу.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect подключается к MongoDB и проверяет доступность.
func Connect(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	opts := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(cfg.MongoDatabase),
	}, nil
}

// Close закрывает подключение.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ping проверяет доступность сервера.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Repos возвращает репозитории поверх подключения.
func (s *Store) Repos() repo.Repos {
	return repo.Repos{
		Movies:          &MovieRepo{coll: s.db.Collection(collMovies)},
		Categories:      &CategoryRepo{coll: s.db.Collection(collCategories)},
		Genres:          &GenreRepo{coll: s.db.Collection(collGenres)},
		MovieCategories: s.movieCategoryRepo(),
		MovieGenres:     s.movieGenreRepo(),
		Pinger:          s,
	}
}

// EnsureIndexes создаёт индексы для выборок связей и фильтра удалённых.
//
// Уникальный индекс на пару (movieId, tagId) не создастся, если в коллекции
// уже есть дубликаты; ошибка возвращается, остальные индексы при этом созданы.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collMovies: {
			{Keys: bson.D{{Key: "deleted", Value: 1}}},
		},
		collCategories: {
			{Keys: bson.D{{Key: "deleted", Value: 1}, {Key: "type", Value: 1}}},
		},
		collGenres: {
			{Keys: bson.D{{Key: "deleted", Value: 1}}},
		},
		collMovieCategories: {
			{Keys: bson.D{{Key: "categoryId", Value: 1}}},
			{
				Keys:    bson.D{{Key: "movieId", Value: 1}, {Key: "categoryId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_movie_category"),
			},
		},
		collMovieGenres: {
			{Keys: bson.D{{Key: "genreId", Value: 1}}},
			{
				Keys:    bson.D{{Key: "movieId", Value: 1}, {Key: "genreId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("unique_movie_genre"),
			},
		},
	}

	var firstErr error
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return firstErr
}
