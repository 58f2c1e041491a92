package api

import (
	"net/http"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
	"github.com/shaiso/glimpse/internal/repo"
)

// ListCategories возвращает категории, опционально по типу.
// GET /categories?type=
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := repo.CategoryFilter{Type: r.URL.Query().Get("type")}
	categories, err := h.categories.List(ctx, filter)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "", mapSlice(categories, CategoryFromDomain))
}

// GetCategory возвращает категорию.
// GET /categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	category, err := h.categories.GetByID(ctx, id)
	if HandleRepoError(w, h.log(ctx), err, "category not found") {
		return
	}

	Success(w, CategoryFromDomain(*category))
}

// CreateCategory создаёт категорию.
// POST /categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCategoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	category := domain.Category{Name: req.Name, Type: req.Type}
	if err := h.categories.Create(ctx, &category); err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	h.log(ctx).Info("category created", "category_id", category.ID, "name", category.Name)
	h.publish(ctx, mq.EntityCategory, mq.ActionCreated, category.ID)

	Created(w, "Category is Added", CategoryFromDomain(category))
}

// UpdateCategory частично обновляет категорию.
// PATCH /categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	var req UpdateCategoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	category, err := h.categories.Update(ctx, id, domain.CategoryPatch{Name: req.Name, Type: req.Type})
	if HandleRepoError(w, h.log(ctx), err, "category not found") {
		return
	}

	if req.Name != nil || req.Type != nil {
		h.publish(ctx, mq.EntityCategory, mq.ActionUpdated, id)
	}

	Success(w, CategoryFromDomain(*category))
}

// DeleteCategory помечает категорию удалённой.
// DELETE /categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	if HandleRepoError(w, h.log(ctx), h.categories.Delete(ctx, id), "category not found") {
		return
	}

	h.log(ctx).Info("category deleted", "category_id", id)
	h.publish(ctx, mq.EntityCategory, mq.ActionDeleted, id)

	NoContent(w)
}

// RestoreCategory снимает пометку удаления.
// POST /categories/{id}/restore
func (h *Handler) RestoreCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	category, err := h.categories.Restore(ctx, id)
	if HandleRepoError(w, h.log(ctx), err, "category not found") {
		return
	}

	h.log(ctx).Info("category restored", "category_id", id)
	h.restoreLinks(ctx, mq.EntityCategory, id)
	h.publish(ctx, mq.EntityCategory, mq.ActionRestored, id)

	Success(w, CategoryFromDomain(*category))
}
