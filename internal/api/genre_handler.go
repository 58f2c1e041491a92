package api

import (
	"net/http"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
)

// ListGenres возвращает все жанры.
// GET /genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	genres, err := h.genres.List(ctx)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "", mapSlice(genres, GenreFromDomain))
}

// GetGenre возвращает жанр.
// GET /genres/{id}
func (h *Handler) GetGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	genre, err := h.genres.GetByID(ctx, id)
	if HandleRepoError(w, h.log(ctx), err, "genre not found") {
		return
	}

	Success(w, GenreFromDomain(*genre))
}

// CreateGenre создаёт жанр.
// POST /genres
func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateGenreRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	genre := domain.Genre{Name: req.Name}
	if err := h.genres.Create(ctx, &genre); err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	h.log(ctx).Info("genre created", "genre_id", genre.ID, "name", genre.Name)
	h.publish(ctx, mq.EntityGenre, mq.ActionCreated, genre.ID)

	Created(w, "Genre is Added", GenreFromDomain(genre))
}

// UpdateGenre переименовывает жанр.
// PATCH /genres/{id}
func (h *Handler) UpdateGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	var req UpdateGenreRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	genre, err := h.genres.Update(ctx, id, domain.GenrePatch{Name: req.Name})
	if HandleRepoError(w, h.log(ctx), err, "genre not found") {
		return
	}

	if req.Name != nil {
		h.publish(ctx, mq.EntityGenre, mq.ActionUpdated, id)
	}

	Success(w, GenreFromDomain(*genre))
}

// DeleteGenre помечает жанр удалённым.
// DELETE /genres/{id}
func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	if HandleRepoError(w, h.log(ctx), h.genres.Delete(ctx, id), "genre not found") {
		return
	}

	h.log(ctx).Info("genre deleted", "genre_id", id)
	h.publish(ctx, mq.EntityGenre, mq.ActionDeleted, id)

	NoContent(w)
}

// RestoreGenre снимает пометку удаления.
// POST /genres/{id}/restore
func (h *Handler) RestoreGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	genre, err := h.genres.Restore(ctx, id)
	if HandleRepoError(w, h.log(ctx), err, "genre not found") {
		return
	}

	h.log(ctx).Info("genre restored", "genre_id", id)
	h.restoreLinks(ctx, mq.EntityGenre, id)
	h.publish(ctx, mq.EntityGenre, mq.ActionRestored, id)

	Success(w, GenreFromDomain(*genre))
}
