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

const categoryColumns = `id, name, type, deleted, deleted_at`

// CategoryRepo — репозиторий категорий.
type CategoryRepo struct {
	pool *pgxpool.Pool
}

// NewCategoryRepo создаёт новый CategoryRepo.
func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

var _ repo.CategoryRepo = (*CategoryRepo)(nil)

// Create создаёт новую категорию.
func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = domain.NewID()
	}
	query := `INSERT INTO categories (id, name, type) VALUES ($1, $2, $3)`
	if _, err := r.pool.Exec(ctx, query, category.ID.String(), category.Name, nullString(category.Type)); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID возвращает живую категорию.
func (r *CategoryRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND NOT deleted`
	return scanCategory(r.pool.QueryRow(ctx, query, id.String()))
}

// GetByIDs возвращает живые категории из списка.
func (r *CategoryRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ANY($1) AND NOT deleted
		ORDER BY created_at, id
	`
	return r.query(ctx, query, idStrings(ids))
}

// List возвращает живые категории с фильтрацией по типу.
func (r *CategoryRepo) List(ctx context.Context, filter repo.CategoryFilter) ([]domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE NOT deleted AND ($1 = '' OR type = $1)
		ORDER BY created_at, id
	`
	return r.query(ctx, query, filter.Type)
}

// Update применяет патч к живой категории.
func (r *CategoryRepo) Update(ctx context.Context, id domain.ID, patch domain.CategoryPatch) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($2, name),
		    type = COALESCE($3, type)
		WHERE id = $1 AND NOT deleted
		RETURNING ` + categoryColumns
	return scanCategory(r.pool.QueryRow(ctx, query, id.String(), patch.Name, patch.Type))
}

// Delete помечает категорию удалённой.
func (r *CategoryRepo) Delete(ctx context.Context, id domain.ID) error {
	ok, err := softDelete(ctx, r.pool, "categories", id)
	if err != nil {
		return err
	}
	if !ok {
		return repo.ErrNotFound
	}
	return nil
}

// Restore снимает пометку удаления.
func (r *CategoryRepo) Restore(ctx context.Context, id domain.ID) (*domain.Category, error) {
	query := `
		UPDATE categories
		SET deleted = FALSE, deleted_at = NULL
		WHERE id = $1 AND deleted
		RETURNING ` + categoryColumns
	return scanCategory(r.pool.QueryRow(ctx, query, id.String()))
}

// Purge физически удаляет категории, удалённые раньше before.
func (r *CategoryRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purgeIDs(ctx, r.pool, "categories", before)
}

func (r *CategoryRepo) query(ctx context.Context, query string, args ...any) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func scanCategory(row scanner) (*domain.Category, error) {
	var c domain.Category
	var categoryType *string

	err := row.Scan(&c.ID, &c.Name, &categoryType, &c.Deleted, &c.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan category: %w", err)
	}

	if categoryType != nil {
		c.Type = *categoryType
	}
	return &c, nil
}
