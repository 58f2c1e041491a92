package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
)

// ListMovies возвращает все фильмы с именами категорий и жанров.
// GET /movies
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log(ctx)

	movies, err := h.movies.List(ctx)
	if err != nil {
		InternalError(w, log, err)
		return
	}

	details, err := h.movieDetails(ctx, movies)
	if err != nil {
		InternalError(w, log, err)
		return
	}

	List(w, "", mapSlice(details, MovieDetailsFromDomain))
}

// GetMovie возвращает фильм с именами категорий и жанров.
// GET /movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.log(ctx)

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid movie id")
		return
	}

	movie, err := h.movies.GetByID(ctx, id)
	if HandleRepoError(w, log, err, "movie not found") {
		return
	}

	details, err := h.movieDetails(ctx, []domain.Movie{*movie})
	if err != nil {
		InternalError(w, log, err)
		return
	}

	Success(w, MovieDetailsFromDomain(details[0]))
}

// CreateMovie создаёт фильм.
// POST /movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateMovieRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	movie := req.ToDomain()
	if err := h.movies.Create(ctx, &movie); err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	h.log(ctx).Info("movie created", "movie_id", movie.ID, "title", movie.Title)
	h.publish(ctx, mq.EntityMovie, mq.ActionCreated, movie.ID)

	Created(w, "", MovieFromDomain(movie))
}

// UpdateMovie частично обновляет фильм.
// PATCH /movies/{id}
func (h *Handler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid movie id")
		return
	}

	var req UpdateMovieRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	patch := req.ToPatch()
	movie, err := h.movies.Update(ctx, id, patch)
	if HandleRepoError(w, h.log(ctx), err, "movie not found") {
		return
	}

	if !patch.IsEmpty() {
		h.publish(ctx, mq.EntityMovie, mq.ActionUpdated, id)
	}

	Success(w, MovieFromDomain(*movie))
}

// DeleteMovie помечает фильм удалённым.
// DELETE /movies/{id}
func (h *Handler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid movie id")
		return
	}

	if HandleRepoError(w, h.log(ctx), h.movies.Delete(ctx, id), "movie not found") {
		return
	}

	h.log(ctx).Info("movie deleted", "movie_id", id)
	h.publish(ctx, mq.EntityMovie, mq.ActionDeleted, id)

	NoContent(w)
}

// RestoreMovie снимает пометку удаления.
// POST /movies/{id}/restore
func (h *Handler) RestoreMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid movie id")
		return
	}

	movie, err := h.movies.Restore(ctx, id)
	if HandleRepoError(w, h.log(ctx), err, "movie not found") {
		return
	}

	h.log(ctx).Info("movie restored", "movie_id", id)
	h.restoreLinks(ctx, mq.EntityMovie, id)
	h.publish(ctx, mq.EntityMovie, mq.ActionRestored, id)

	Success(w, MovieFromDomain(*movie))
}

// movieDetails подставляет фильмам имена их категорий и жанров.
// Связи и теги загружаются параллельно.
func (h *Handler) movieDetails(ctx context.Context, movies []domain.Movie) ([]domain.MovieDetails, error) {
	if len(movies) == 0 {
		return []domain.MovieDetails{}, nil
	}

	ids := make([]domain.ID, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}

	var (
		catLinks   []domain.MovieCategory
		genreLinks []domain.MovieGenre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		catLinks, err = h.movieCategories.ListByMovieIDs(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		genreLinks, err = h.movieGenres.ListByMovieIDs(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	_, categoryIDs := domain.CategoryLinkIDs(catLinks)
	_, genreIDs := domain.GenreLinkIDs(genreLinks)

	var (
		categories []domain.Category
		genres     []domain.Genre
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = h.categories.GetByIDs(gctx, categoryIDs)
		return err
	})
	g.Go(func() (err error) {
		genres, err = h.genres.GetByIDs(gctx, genreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.AttachTaxonomy(movies, catLinks, domain.IndexCategories(categories), genreLinks, domain.IndexGenres(genres)), nil
}
