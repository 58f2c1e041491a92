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

const genreColumns = `id, name, deleted, deleted_at`

// GenreRepo — репозиторий жанров.
type GenreRepo struct {
	pool *pgxpool.Pool
}

// NewGenreRepo создаёт новый GenreRepo.
func NewGenreRepo(pool *pgxpool.Pool) *GenreRepo {
	return &GenreRepo{pool: pool}
}

var _ repo.GenreRepo = (*GenreRepo)(nil)

// Create создаёт новый жанр.
func (r *GenreRepo) Create(ctx context.Context, genre *domain.Genre) error {
	if genre.ID == "" {
		genre.ID = domain.NewID()
	}
	query := `INSERT INTO genres (id, name) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, genre.ID.String(), genre.Name); err != nil {
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

// GetByID возвращает живой жанр.
func (r *GenreRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Genre, error) {
	query := `SELECT ` + genreColumns + ` FROM genres WHERE id = $1 AND NOT deleted`
	return scanGenre(r.pool.QueryRow(ctx, query, id.String()))
}

// GetByIDs возвращает живые жанры из списка.
func (r *GenreRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Genre, error) {
	if len(ids) == 0 {
		return []domain.Genre{}, nil
	}
	query := `
		SELECT ` + genreColumns + `
		FROM genres
		WHERE id = ANY($1) AND NOT deleted
		ORDER BY created_at, id
	`
	return r.query(ctx, query, idStrings(ids))
}

// List возвращает все живые жанры.
func (r *GenreRepo) List(ctx context.Context) ([]domain.Genre, error) {
	query := `
		SELECT ` + genreColumns + `
		FROM genres
		WHERE NOT deleted
		ORDER BY created_at, id
	`
	return r.query(ctx, query)
}

// Update применяет патч к живому жанру.
func (r *GenreRepo) Update(ctx context.Context, id domain.ID, patch domain.GenrePatch) (*domain.Genre, error) {
	query := `
		UPDATE genres
		SET name = COALESCE($2, name)
		WHERE id = $1 AND NOT deleted
		RETURNING ` + genreColumns
	return scanGenre(r.pool.QueryRow(ctx, query, id.String(), patch.Name))
}

// Delete помечает жанр удалённым.
func (r *GenreRepo) Delete(ctx context.Context, id domain.ID) error {
	ok, err := softDelete(ctx, r.pool, "genres", id)
	if err != nil {
		return err
	}
	if !ok {
		return repo.ErrNotFound
	}
	return nil
}

// Restore снимает пометку удаления.
func (r *GenreRepo) Restore(ctx context.Context, id domain.ID) (*domain.Genre, error) {
	query := `
		UPDATE genres
		SET deleted = FALSE, deleted_at = NULL
		WHERE id = $1 AND deleted
		RETURNING ` + genreColumns
	return scanGenre(r.pool.QueryRow(ctx, query, id.String()))
}

// Purge физически удаляет жанры, удалённые раньше before.
func (r *GenreRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purgeIDs(ctx, r.pool, "genres", before)
}

func (r *GenreRepo) query(ctx context.Context, query string, args ...any) ([]domain.Genre, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	genres := []domain.Genre{}
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		genres = append(genres, *g)
	}
	return genres, rows.Err()
}

func scanGenre(row scanner) (*domain.Genre, error) {
	var g domain.Genre
	err := row.Scan(&g.ID, &g.Name, &g.Deleted, &g.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan genre: %w", err)
	}
	return &g, nil
}
