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

// CategoryRepo — репозиторий категорий.
type CategoryRepo struct {
	coll *mongo.Collection
}

var _ repo.CategoryRepo = (*CategoryRepo)(nil)

// List возвращает живые категории с фильтрацией по типу.
func (r *CategoryRepo) List(ctx context.Context, filter repo.CategoryFilter) ([]domain.Category, error) {
	f := live()
	if filter.Type != "" {
		f = append(f, bson.E{Key: "type", Value: filter.Type})
	}
	return r.find(ctx, f)
}

// GetByID возвращает живую категорию.
func (r *CategoryRepo) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	doc, err := findOne[categoryDoc](ctx, r.coll, live(byID(id)))
	if err != nil {
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// GetByIDs возвращает живые категории из списка.
func (r *CategoryRepo) GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	return r.find(ctx, live(inIDs("_id", ids)))
}

// Create создаёт категорию.
func (r *CategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	if category.ID == "" {
		category.ID = domain.NewID()
	}
	doc := categoryDoc{ID: category.ID.ObjectID(), Name: category.Name, Type: category.Type}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// Update применяет патч к живой категории.
func (r *CategoryRepo) Update(ctx context.Context, id domain.ID, patch domain.CategoryPatch) (*domain.Category, error) {
	var set bson.D
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Type != nil {
		set = append(set, bson.E{Key: "type", Value: *patch.Type})
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	doc, err := updateOne[categoryDoc](ctx, r.coll, live(byID(id)), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// Delete помечает категорию удалённой.
func (r *CategoryRepo) Delete(ctx context.Context, id domain.ID) error {
	return softDelete(ctx, r.coll, id)
}

// Restore снимает пометку удаления.
func (r *CategoryRepo) Restore(ctx context.Context, id domain.ID) (*domain.Category, error) {
	doc, err := updateOne[categoryDoc](ctx, r.coll, deletedFilter(id), restoreUpdate())
	if err != nil {
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// Purge физически удаляет категории, удалённые раньше before.
func (r *CategoryRepo) Purge(ctx context.Context, before time.Time) ([]domain.ID, error) {
	return purge(ctx, r.coll, before)
}

func (r *CategoryRepo) find(ctx context.Context, filter bson.D) ([]domain.Category, error) {
	docs, err := findAll[categoryDoc](ctx, r.coll, filter)
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, len(docs))
	for i, d := range docs {
		categories[i] = d.toDomain()
	}
	return categories, nil
}
