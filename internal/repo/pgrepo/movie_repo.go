package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

const movieColumns = `id, title, overview, poster_path, original_language, vote_average,
	created_at, updated_at, deleted, deleted_at`

// MovieRepo — репозиторий фильмов.
type MovieRepo struct {
	pool *pgxpool.Pool
}

// NewMovieRepo создаёт новый MovieRepo.
func NewMovieRepo(pool *pgxpool.Pool) *MovieRepo {
	return &MovieRepo{pool: pool}
}

var _ repo.MovieRepo = (*MovieRepo)(nil)

// Create создаёт новый фильм.
func (r *MovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	if movie.ID == "" {
		movie.ID = domain.NewID()
	}
	now := time.Now().UTC()
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = now
	}
	movie.UpdatedAt = movie.CreatedAt

	query := `
		INSERT INTO movies (id, title, overview, poster_path, original_language, vote_average, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		movie.ID.String(),
		movie.Title,
		movie.Overview,
		movie.PosterPath,
		movie.OriginalLanguage,
		movie.VoteAverage,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	return nil
}

// GetByID возвращает живой фильм по ID.
func (r *MovieRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1 AND NOT deleted`
	return scanMovie(r.pool.QueryRow(ctx, query, id.String()))
}

// GetByIDs возвращает живые фильмы из списка.
func (r *MovieRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Movie, error) {
	if len(ids) == 0 {
		return []domain.Movie{}, nil
	}
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE id = ANY($1) AND NOT deleted
		ORDER BY created_at, id
	`
	return r.query(ctx, query, idStrings(ids))
}

// List возвращает все живые фильмы.
func (r *MovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE NOT deleted
		ORDER BY created_at, id
	`
	return r.query(ctx, query)
}

// Update применяет патч к живому фильму.
func (r *MovieRepo) Update(ctx context.Context, id domain.ID, patch domain.MoviePatch) (*domain.Movie, error) {
	query := `
		UPDATE movies
		SET title             = COALESCE($2, title),
		    overview          = COALESCE($3, overview),
		    poster_path       = COALESCE($4, poster_path),
		    original_language = COALESCE($5, original_language),
		    vote_average      = COALESCE($6, vote_average),
		    updated_at        = NOW()
		WHERE id = $1 AND NOT deleted
		RETURNING ` + movieColumns
	return scanMovie(r.pool.QueryRow(ctx, query,
		id.String(),
		patch.Title,
		patch.Overview,
		patch.PosterPath,
		patch.OriginalLanguage,
		patch.VoteAverage,
	))
}

// Delete помечает фильм удалённым.
func (r *MovieRepo) Delete(ctx context.Context, id domain.ID) error {
	ok, err := softDelete(ctx, r.pool, "movies", id)
	if err != nil {
		return err
	}
	if !ok {
		return repo.ErrNotFound
	}
	return nil
}

// Restore снимает пометку удаления.
func (r *MovieRepo) Restore(ctx context.Context, id domain.ID) (*domain.Movie, error) {
	query := `
		UPDATE movies
		SET deleted = FALSE, deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted
		RETURNING ` + movieColumns
	return scanMovie(r.pool.QueryRow(ctx, query, id.String()))
}

// Purge физически удаляет фильмы, удалённые раньше before.
func (r *MovieRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purgeIDs(ctx, r.pool, "movies", before)
}

func (r *MovieRepo) query(ctx context.Context, query string, args ...any) ([]domain.Movie, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

func scanMovie(row scanner) (*domain.Movie, error) {
	var m domain.Movie
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Overview,
		&m.PosterPath,
		&m.OriginalLanguage,
		&m.VoteAverage,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.Deleted,
		&m.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan movie: %w", err)
	}
	return &m, nil
}
