package memrepo

import (
	"context"
	"time"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// --- MovieCategory ---

// MovieCategoryRepo — связи фильм ↔ категория в памяти.
type MovieCategoryRepo struct {
	s *Store
}

var _ repo.MovieCategoryRepo = (*MovieCategoryRepo)(nil)

func (r *MovieCategoryRepo) filter(keep func(domain.MovieCategory) bool) []domain.MovieCategory {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	links := []domain.MovieCategory{}
	for _, l := range r.s.movieCategories {
		if !l.Deleted && keep(l) {
			links = append(links, l)
		}
	}
	return links
}

func (r *MovieCategoryRepo) List(_ context.Context) ([]domain.MovieCategory, error) {
	return r.filter(func(domain.MovieCategory) bool { return true }), nil
}

func (r *MovieCategoryRepo) ListByCategory(_ context.Context, categoryID domain.ID) ([]domain.MovieCategory, error) {
	return r.filter(func(l domain.MovieCategory) bool { return l.CategoryID == categoryID }), nil
}

func (r *MovieCategoryRepo) ListByMovieIDs(_ context.Context, movieIDs []domain.ID) ([]domain.MovieCategory, error) {
	return r.filter(func(l domain.MovieCategory) bool { return contains(movieIDs, l.MovieID) }), nil
}

func (r *MovieCategoryRepo) Link(_ context.Context, categoryID domain.ID, movieIDs []domain.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, movieID := range domain.UniqueIDs(movieIDs) {
		found := false
		for i := range r.s.movieCategories {
			l := &r.s.movieCategories[i]
			if l.MovieID == movieID && l.CategoryID == categoryID {
				l.Restore()
				found = true
				break
			}
		}
		if !found {
			r.s.movieCategories = append(r.s.movieCategories, domain.MovieCategory{
				ID:         domain.NewID(),
				MovieID:    movieID,
				CategoryID: categoryID,
			})
		}
	}
	return nil
}

// update применяет fn к связям, для которых match возвращает true.
func (r *MovieCategoryRepo) update(match func(*domain.MovieCategory) bool, fn func(*domain.MovieCategory)) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for i := range r.s.movieCategories {
		if l := &r.s.movieCategories[i]; match(l) {
			fn(l)
			n++
		}
	}
	return n
}

func (r *MovieCategoryRepo) markDeleted(match func(*domain.MovieCategory) bool) int64 {
	now := time.Now().UTC()
	return r.update(
		func(l *domain.MovieCategory) bool { return !l.Deleted && match(l) },
		func(l *domain.MovieCategory) { l.MarkDeleted(now) },
	)
}

func (r *MovieCategoryRepo) restore(match func(*domain.MovieCategory) bool) int64 {
	return r.update(
		func(l *domain.MovieCategory) bool {
			return l.Deleted && match(l) && r.s.liveMovie(l.MovieID) && r.s.liveCategory(l.CategoryID)
		},
		func(l *domain.MovieCategory) { l.Restore() },
	)
}

func (r *MovieCategoryRepo) DeleteByMovie(_ context.Context, movieID domain.ID) (int64, error) {
	return r.markDeleted(func(l *domain.MovieCategory) bool { return l.MovieID == movieID }), nil
}

func (r *MovieCategoryRepo) DeleteByCategory(_ context.Context, categoryID domain.ID) (int64, error) {
	return r.markDeleted(func(l *domain.MovieCategory) bool { return l.CategoryID == categoryID }), nil
}

func (r *MovieCategoryRepo) RestoreByMovie(_ context.Context, movieID domain.ID) (int64, error) {
	return r.restore(func(l *domain.MovieCategory) bool { return l.MovieID == movieID }), nil
}

func (r *MovieCategoryRepo) RestoreByCategory(_ context.Context, categoryID domain.ID) (int64, error) {
	return r.restore(func(l *domain.MovieCategory) bool { return l.CategoryID == categoryID }), nil
}

func (r *MovieCategoryRepo) DeleteDangling(_ context.Context) (int64, error) {
	return r.markDeleted(func(l *domain.MovieCategory) bool {
		return !r.s.existsMovie(l.MovieID) || !r.s.existsCategory(l.CategoryID)
	}), nil
}

func (r *MovieCategoryRepo) Purge(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []domain.ID
	r.s.movieCategories, ids = purge(r.s.movieCategories, before, movieCategoryID, movieCategorySD)
	return int64(len(ids)), nil
}

// --- MovieGenre ---

// MovieGenreRepo — связи фильм ↔ жанр в памяти.
type MovieGenreRepo struct {
	s *Store
}

var _ repo.MovieGenreRepo = (*MovieGenreRepo)(nil)

func (r *MovieGenreRepo) filter(keep func(domain.MovieGenre) bool) []domain.MovieGenre {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	links := []domain.MovieGenre{}
	for _, l := range r.s.movieGenres {
		if !l.Deleted && keep(l) {
			links = append(links, l)
		}
	}
	return links
}

func (r *MovieGenreRepo) List(_ context.Context) ([]domain.MovieGenre, error) {
	return r.filter(func(domain.MovieGenre) bool { return true }), nil
}

func (r *MovieGenreRepo) ListByGenre(_ context.Context, genreID domain.ID) ([]domain.MovieGenre, error) {
	return r.filter(func(l domain.MovieGenre) bool { return l.GenreID == genreID }), nil
}

func (r *MovieGenreRepo) ListByMovieIDs(_ context.Context, movieIDs []domain.ID) ([]domain.MovieGenre, error) {
	return r.filter(func(l domain.MovieGenre) bool { return contains(movieIDs, l.MovieID) }), nil
}

func (r *MovieGenreRepo) Link(_ context.Context, genreID domain.ID, movieIDs []domain.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, movieID := range domain.UniqueIDs(movieIDs) {
		found := false
		for i := range r.s.movieGenres {
			l := &r.s.movieGenres[i]
			if l.MovieID == movieID && l.GenreID == genreID {
				l.Restore()
				found = true
				break
			}
		}
		if !found {
			r.s.movieGenres = append(r.s.movieGenres, domain.MovieGenre{
				ID:      domain.NewID(),
				MovieID: movieID,
				GenreID: genreID,
			})
		}
	}
	return nil
}

func (r *MovieGenreRepo) update(match func(*domain.MovieGenre) bool, fn func(*domain.MovieGenre)) int64 {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for i := range r.s.movieGenres {
		if l := &r.s.movieGenres[i]; match(l) {
			fn(l)
			n++
		}
	}
	return n
}

func (r *MovieGenreRepo) markDeleted(match func(*domain.MovieGenre) bool) int64 {
	now := time.Now().UTC()
	return r.update(
		func(l *domain.MovieGenre) bool { return !l.Deleted && match(l) },
		func(l *domain.MovieGenre) { l.MarkDeleted(now) },
	)
}

func (r *MovieGenreRepo) restore(match func(*domain.MovieGenre) bool) int64 {
	return r.update(
		func(l *domain.MovieGenre) bool {
			return l.Deleted && match(l) && r.s.liveMovie(l.MovieID) && r.s.liveGenre(l.GenreID)
		},
		func(l *domain.MovieGenre) { l.Restore() },
	)
}

func (r *MovieGenreRepo) DeleteByMovie(_ context.Context, movieID domain.ID) (int64, error) {
	return r.markDeleted(func(l *domain.MovieGenre) bool { return l.MovieID == movieID }), nil
}

func (r *MovieGenreRepo) DeleteByGenre(_ context.Context, genreID domain.ID) (int64, error) {
	return r.markDeleted(func(l *domain.MovieGenre) bool { return l.GenreID == genreID }), nil
}

func (r *MovieGenreRepo) RestoreByMovie(_ context.Context, movieID domain.ID) (int64, error) {
	return r.restore(func(l *domain.MovieGenre) bool { return l.MovieID == movieID }), nil
}

func (r *MovieGenreRepo) RestoreByGenre(_ context.Context, genreID domain.ID) (int64, error) {
	return r.restore(func(l *domain.MovieGenre) bool { return l.GenreID == genreID }), nil
}

func (r *MovieGenreRepo) DeleteDangling(_ context.Context) (int64, error) {
	return r.markDeleted(func(l *domain.MovieGenre) bool {
		return !r.s.existsMovie(l.MovieID) || !r.s.existsGenre(l.GenreID)
	}), nil
}

func (r *MovieGenreRepo) Purge(_ context.Context, before time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []domain.ID
	r.s.movieGenres, ids = purge(r.s.movieGenres, before, movieGenreID, movieGenreSD)
	return int64(len(ids)), nil
}
