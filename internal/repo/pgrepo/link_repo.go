package pgrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// linkTable описывает join-таблицу: movie_id + столбец тега (category_id/genre_id).
type linkTable struct {
	pool      *pgxpool.Pool
	table     string
	tagColumn string
	tagTable  string
}

func (t linkTable) columns() string {
	return "id, movie_id, " + t.tagColumn + ", deleted, deleted_at"
}

func (t linkTable) selectLive(where string) string {
	q := "SELECT " + t.columns() + " FROM " + t.table + " WHERE NOT deleted"
	if where != "" {
		q += " AND " + where
	}
	return q + " ORDER BY created_at, id"
}

// link вставляет связи, восстанавливая ранее удалённые.
func (t linkTable) link(ctx context.Context, tagID domain.ID, movieIDs []domain.ID) error {
	movieIDs = domain.UniqueIDs(movieIDs)
	if len(movieIDs) == 0 {
		return nil
	}

	ids := make([]string, len(movieIDs))
	for i := range ids {
		ids[i] = domain.NewID().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, movie_id, %[2]s)
		SELECT x.id, x.movie_id, $3
		FROM unnest($1::text[], $2::text[]) AS x(id, movie_id)
		ON CONFLICT (movie_id, %[2]s)
		DO UPDATE SET deleted = FALSE, deleted_at = NULL
	`, t.table, t.tagColumn)

	if _, err := t.pool.Exec(ctx, query, ids, idStrings(movieIDs), tagID.String()); err != nil {
		return fmt.Errorf("link %s: %w", t.table, err)
	}
	return nil
}

// deleteBy помечает удалёнными живые связи по условию column = id.
func (t linkTable) deleteBy(ctx context.Context, column string, id domain.ID) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted = TRUE, deleted_at = NOW()
		WHERE %s = $1 AND NOT deleted
	`, t.table, column)
	result, err := t.pool.Exec(ctx, query, id.String())
	if err != nil {
		return 0, fmt.Errorf("delete %s by %s: %w", t.table, column, err)
	}
	return result.RowsAffected(), nil
}

// restoreBy восстанавливает связи по условию column = id,
// если обе стороны связи живы.
func (t linkTable) restoreBy(ctx context.Context, column string, id domain.ID) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s l
		SET deleted = FALSE, deleted_at = NULL
		WHERE l.%[2]s = $1 AND l.deleted
		  AND EXISTS (SELECT 1 FROM movies m WHERE m.id = l.movie_id AND NOT m.deleted)
		  AND EXISTS (SELECT 1 FROM %[3]s t WHERE t.id = l.%[4]s AND NOT t.deleted)
	`, t.table, column, t.tagTable, t.tagColumn)
	result, err := t.pool.Exec(ctx, query, id.String())
	if err != nil {
		return 0, fmt.Errorf("restore %s by %s: %w", t.table, column, err)
	}
	return result.RowsAffected(), nil
}

// deleteDangling помечает удалёнными связи, вторая сторона которых отсутствует.
// Связи с мягко удалёнными записями остаются: их скрывает чтение.
func (t linkTable) deleteDangling(ctx context.Context) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %[1]s l
		SET deleted = TRUE, deleted_at = NOW()
		WHERE NOT l.deleted AND (
		    NOT EXISTS (SELECT 1 FROM movies m WHERE m.id = l.movie_id)
		    OR NOT EXISTS (SELECT 1 FROM %[2]s t WHERE t.id = l.%[3]s)
		)
	`, t.table, t.tagTable, t.tagColumn)
	result, err := t.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete dangling %s: %w", t.table, err)
	}
	return result.RowsAffected(), nil
}

func (t linkTable) purge(ctx context.Context, before time.Time) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE deleted AND deleted_at < $1`, t.table)
	result, err := t.pool.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("purge %s: %w", t.table, err)
	}
	return result.RowsAffected(), nil
}

// --- MovieCategory ---

// MovieCategoryRepo — репозиторий связей фильм ↔ категория.
type MovieCategoryRepo struct {
	t linkTable
}

// NewMovieCategoryRepo создаёт новый MovieCategoryRepo.
func NewMovieCategoryRepo(pool *pgxpool.Pool) *MovieCategoryRepo {
	return &MovieCategoryRepo{t: linkTable{
		pool:      pool,
		table:     "movie_categories",
		tagColumn: "category_id",
		tagTable:  "categories",
	}}
}

var _ repo.MovieCategoryRepo = (*MovieCategoryRepo)(nil)

// List возвращает все живые связи.
func (r *MovieCategoryRepo) List(ctx context.Context) ([]domain.MovieCategory, error) {
	return r.query(ctx, r.t.selectLive(""))
}

// ListByCategory возвращает живые связи категории.
func (r *MovieCategoryRepo) ListByCategory(ctx context.Context, categoryID domain.ID) ([]domain.MovieCategory, error) {
	return r.query(ctx, r.t.selectLive("category_id = $1"), categoryID.String())
}

// ListByMovieIDs возвращает живые связи фильмов.
func (r *MovieCategoryRepo) ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieCategory, error) {
	if len(movieIDs) == 0 {
		return []domain.MovieCategory{}, nil
	}
	return r.query(ctx, r.t.selectLive("movie_id = ANY($1)"), idStrings(movieIDs))
}

// Link связывает фильмы с категорией.
func (r *MovieCategoryRepo) Link(ctx context.Context, categoryID domain.ID, movieIDs []domain.ID) error {
	return r.t.link(ctx, categoryID, movieIDs)
}

func (r *MovieCategoryRepo) DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.t.deleteBy(ctx, "movie_id", movieID)
}

func (r *MovieCategoryRepo) DeleteByCategory(ctx context.Context, categoryID domain.ID) (int64, error) {
	return r.t.deleteBy(ctx, "category_id", categoryID)
}

func (r *MovieCategoryRepo) RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.t.restoreBy(ctx, "movie_id", movieID)
}

func (r *MovieCategoryRepo) RestoreByCategory(ctx context.Context, categoryID domain.ID) (int64, error) {
	return r.t.restoreBy(ctx, "category_id", categoryID)
}

func (r *MovieCategoryRepo) DeleteDangling(ctx context.Context) (int64, error) {
	return r.t.deleteDangling(ctx)
}

func (r *MovieCategoryRepo) Purge(ctx context.Context, before time.Time) (int64, error) {
	return r.t.purge(ctx, before)
}

func (r *MovieCategoryRepo) query(ctx context.Context, query string, args ...any) ([]domain.MovieCategory, error) {
	rows, err := r.t.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movie categories: %w", err)
	}
	defer rows.Close()

	links := []domain.MovieCategory{}
	for rows.Next() {
		var l domain.MovieCategory
		if err := rows.Scan(&l.ID, &l.MovieID, &l.CategoryID, &l.Deleted, &l.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan movie category: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// --- MovieGenre ---

// MovieGenreRepo — репозиторий связей фильм ↔ жанр.
type MovieGenreRepo struct {
	t linkTable
}

// NewMovieGenreRepo создаёт новый MovieGenreRepo.
func NewMovieGenreRepo(pool *pgxpool.Pool) *MovieGenreRepo {
	return &MovieGenreRepo{t: linkTable{
		pool:      pool,
		table:     "movie_genres",
		tagColumn: "genre_id",
		tagTable:  "genres",
	}}
}

var _ repo.MovieGenreRepo = (*MovieGenreRepo)(nil)

func (r *MovieGenreRepo) List(ctx context.Context) ([]domain.MovieGenre, error) {
	return r.query(ctx, r.t.selectLive(""))
}

func (r *MovieGenreRepo) ListByGenre(ctx context.Context, genreID domain.ID) ([]domain.MovieGenre, error) {
	return r.query(ctx, r.t.selectLive("genre_id = $1"), genreID.String())
}

func (r *MovieGenreRepo) ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieGenre, error) {
	if len(movieIDs) == 0 {
		return []domain.MovieGenre{}, nil
	}
	return r.query(ctx, r.t.selectLive("movie_id = ANY($1)"), idStrings(movieIDs))
}

func (r *MovieGenreRepo) Link(ctx context.Context, genreID domain.ID, movieIDs []domain.ID) error {
	return r.t.link(ctx, genreID, movieIDs)
}

func (r *MovieGenreRepo) DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.t.deleteBy(ctx, "movie_id", movieID)
}

func (r *MovieGenreRepo) DeleteByGenre(ctx context.Context, genreID domain.ID) (int64, error) {
	return r.t.deleteBy(ctx, "genre_id", genreID)
}

func (r *MovieGenreRepo) RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error) {
	return r.t.restoreBy(ctx, "movie_id", movieID)
}

func (r *MovieGenreRepo) RestoreByGenre(ctx context.Context, genreID domain.ID) (int64, error) {
	return r.t.restoreBy(ctx, "genre_id", genreID)
}

func (r *MovieGenreRepo) DeleteDangling(ctx context.Context) (int64, error) {
	return r.t.deleteDangling(ctx)
}

func (r *MovieGenreRepo) Purge(ctx context.Context, before time.Time) (int64, error) {
	return r.t.purge(ctx, before)
}

func (r *MovieGenreRepo) query(ctx context.Context, query string, args ...any) ([]domain.MovieGenre, error) {
	rows, err := r.t.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movie genres: %w", err)
	}
	defer rows.Close()

	links := []domain.MovieGenre{}
	for rows.Next() {
		var l domain.MovieGenre
		if err := rows.Scan(&l.ID, &l.MovieID, &l.GenreID, &l.Deleted, &l.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan movie genre: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
