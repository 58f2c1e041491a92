package api

import (
	"context"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
)

// ListCategoryMovies возвращает join-записи категории с подставленными фильмами.
// GET /categories/{id}/movies
func (h *Handler) ListCategoryMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	links, err := h.movieCategories.ListByCategory(ctx, id)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	populated, err := h.populateCategoryLinks(ctx, links)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "All Movies in this category", mapSlice(populated, MovieCategoryFromDomain))
}

// LinkCategoryMovies привязывает фильмы к категории.
// POST /categories/{id}/movies
func (h *Handler) LinkCategoryMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid category id")
		return
	}

	movieIDs, ok := h.decodeMovieIDs(w, r)
	if !ok {
		return
	}

	if _, err := h.categories.GetByID(ctx, id); HandleRepoError(w, h.log(ctx), err, "category not found") {
		return
	}

	if err := h.movieCategories.Link(ctx, id, movieIDs); err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	h.log(ctx).Info("movies linked to category", "category_id", id, "count", len(movieIDs))
	h.publish(ctx, mq.EntityCategory, mq.ActionLinked, id, movieIDs...)

	Created(w, "Movies have been added to this category", movieIDs)
}

// ListGenreMovies возвращает фильмы жанра (сами фильмы, не join-записи).
// GET /genres/{id}/movies
func (h *Handler) ListGenreMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	links, err := h.movieGenres.ListByGenre(ctx, id)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	populated, err := h.populateGenreLinks(ctx, links)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "", mapSlice(populated, func(l domain.MovieGenreLink) MovieResponse {
		return MovieFromDomain(*l.Movie)
	}))
}

// LinkGenreMovies привязывает фильмы к жанру.
// POST /genres/{id}/movies
func (h *Handler) LinkGenreMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r)
	if err != nil {
		BadRequest(w, "invalid genre id")
		return
	}

	movieIDs, ok := h.decodeMovieIDs(w, r)
	if !ok {
		return
	}

	if _, err := h.genres.GetByID(ctx, id); HandleRepoError(w, h.log(ctx), err, "genre not found") {
		return
	}

	if err := h.movieGenres.Link(ctx, id, movieIDs); err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	h.log(ctx).Info("movies linked to genre", "genre_id", id, "count", len(movieIDs))
	h.publish(ctx, mq.EntityGenre, mq.ActionLinked, id, movieIDs...)

	Created(w, "Movies have been added to this genre", movieIDs)
}

// ListMovieCategories возвращает все связи фильм ↔ категория.
// GET /movieCategories
func (h *Handler) ListMovieCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.movieCategories.List(ctx)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	populated, err := h.populateCategoryLinks(ctx, links)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "", mapSlice(populated, MovieCategoryFromDomain))
}

// ListMovieGenres возвращает все связи фильм ↔ жанр.
// GET /movieGenres
func (h *Handler) ListMovieGenres(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	links, err := h.movieGenres.List(ctx)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	populated, err := h.populateGenreLinks(ctx, links)
	if err != nil {
		InternalError(w, h.log(ctx), err)
		return
	}

	List(w, "", mapSlice(populated, MovieGenreFromDomain))
}

// decodeMovieIDs читает {"movieIds": [...]} и проверяет идентификаторы.
// Повторы убираются. При ошибке ответ уже отправлен.
func (h *Handler) decodeMovieIDs(w http.ResponseWriter, r *http.Request) ([]domain.ID, bool) {
	var req LinkMoviesRequest
	if err := decodeBody(w, r, &req); err != nil {
		BadRequest(w, err.Error())
		return nil, false
	}

	ids, err := domain.ParseIDs(req.MovieIDs)
	if err != nil {
		BadRequest(w, "invalid movie id in movieIds")
		return nil, false
	}
	return domain.UniqueIDs(ids), true
}

// populateCategoryLinks загружает фильмы и категории связей.
// Висячие связи отбрасываются.
func (h *Handler) populateCategoryLinks(ctx context.Context, links []domain.MovieCategory) ([]domain.MovieCategoryLink, error) {
	if len(links) == 0 {
		return nil, nil
	}

	movieIDs, categoryIDs := domain.CategoryLinkIDs(links)

	var (
		movies     []domain.Movie
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = h.movies.GetByIDs(gctx, movieIDs)
		return err
	})
	g.Go(func() (err error) {
		categories, err = h.categories.GetByIDs(gctx, categoryIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.PopulateCategoryLinks(links, domain.IndexMovies(movies), domain.IndexCategories(categories)), nil
}

// populateGenreLinks загружает фильмы и жанры связей.
func (h *Handler) populateGenreLinks(ctx context.Context, links []domain.MovieGenre) ([]domain.MovieGenreLink, error) {
	if len(links) == 0 {
		return nil, nil
	}

	movieIDs, genreIDs := domain.GenreLinkIDs(links)

	var (
		movies []domain.Movie
		genres []domain.Genre
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = h.movies.GetByIDs(gctx, movieIDs)
		return err
	})
	g.Go(func() (err error) {
		genres, err = h.genres.GetByIDs(gctx, genreIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.PopulateGenreLinks(links, domain.IndexMovies(movies), domain.IndexGenres(genres)), nil
}
