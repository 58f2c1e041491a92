package memrepo

import (
	"context"
	"time"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// --- Movies ---

// MovieRepo — фильмы в памяти.
type MovieRepo struct {
	s *Store
}

var _ repo.MovieRepo = (*MovieRepo)(nil)

func (r *MovieRepo) List(_ context.Context) ([]domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := []domain.Movie{}
	for _, m := range r.s.movies {
		if !m.Deleted {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (r *MovieRepo) GetByID(_ context.Context, id domain.ID) (*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := find(r.s.movies, id, movieID)
	if i < 0 || r.s.movies[i].Deleted {
		return nil, repo.ErrNotFound
	}
	m := r.s.movies[i]
	return &m, nil
}

func (r *MovieRepo) GetByIDs(_ context.Context, ids []domain.ID) ([]domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := []domain.Movie{}
	for _, m := range r.s.movies {
		if !m.Deleted && contains(ids, m.ID) {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (r *MovieRepo) Create(_ context.Context, movie *domain.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if movie.ID == "" {
		movie.ID = domain.NewID()
	}
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}
	movie.UpdatedAt = movie.CreatedAt
	r.s.movies = append(r.s.movies, *movie)
	return nil
}

func (r *MovieRepo) Update(_ context.Context, id domain.ID, patch domain.MoviePatch) (*domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.movies, id, movieID)
	if i < 0 || r.s.movies[i].Deleted {
		return nil, repo.ErrNotFound
	}
	patch.Apply(&r.s.movies[i])
	r.s.movies[i].UpdatedAt = time.Now().UTC()
	m := r.s.movies[i]
	return &m, nil
}

func (r *MovieRepo) Delete(_ context.Context, id domain.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.movies, id, movieID)
	if i < 0 || r.s.movies[i].Deleted {
		return repo.ErrNotFound
	}
	r.s.movies[i].MarkDeleted(time.Now().UTC())
	return nil
}

func (r *MovieRepo) Restore(_ context.Context, id domain.ID) (*domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.movies, id, movieID)
	if i < 0 || !r.s.movies[i].Deleted {
		return nil, repo.ErrNotFound
	}
	r.s.movies[i].Restore()
	r.s.movies[i].UpdatedAt = time.Now().UTC()
	m := r.s.movies[i]
	return &m, nil
}

func (r *MovieRepo) Purge(_ context.Context, before time.Time) ([]domain.ID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []domain.ID
	r.s.movies, ids = purge(r.s.movies, before, movieID, movieSD)
	return ids, nil
}

// --- Categories ---

// CategoryRepo — категории в памяти.
type CategoryRepo struct {
	s *Store
}

var _ repo.CategoryRepo = (*CategoryRepo)(nil)

func (r *CategoryRepo) List(_ context.Context, filter repo.CategoryFilter) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := []domain.Category{}
	for _, c := range r.s.categories {
		if c.Deleted || (filter.Type != "" && c.Type != filter.Type) {
			continue
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id domain.ID) (*domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := find(r.s.categories, id, categoryID)
	if i < 0 || r.s.categories[i].Deleted {
		return nil, repo.ErrNotFound
	}
	c := r.s.categories[i]
	return &c, nil
}

func (r *CategoryRepo) GetByIDs(_ context.Context, ids []domain.ID) ([]domain.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := []domain.Category{}
	for _, c := range r.s.categories {
		if !c.Deleted && contains(ids, c.ID) {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

func (r *CategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if category.ID == "" {
		category.ID = domain.NewID()
	}
	r.s.categories = append(r.s.categories, *category)
	return nil
}

func (r *CategoryRepo) Update(_ context.Context, id domain.ID, patch domain.CategoryPatch) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.categories, id, categoryID)
	if i < 0 || r.s.categories[i].Deleted {
		return nil, repo.ErrNotFound
	}
	patch.Apply(&r.s.categories[i])
	c := r.s.categories[i]
	return &c, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id domain.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.categories, id, categoryID)
	if i < 0 || r.s.categories[i].Deleted {
		return repo.ErrNotFound
	}
	r.s.categories[i].MarkDeleted(time.Now().UTC())
	return nil
}

func (r *CategoryRepo) Restore(_ context.Context, id domain.ID) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.categories, id, categoryID)
	if i < 0 || !r.s.categories[i].Deleted {
		return nil, repo.ErrNotFound
	}
	r.s.categories[i].Restore()
	c := r.s.categories[i]
	return &c, nil
}

func (r *CategoryRepo) Purge(_ context.Context, before time.Time) ([]domain.ID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []domain.ID
	r.s.categories, ids = purge(r.s.categories, before, categoryID, categorySD)
	return ids, nil
}

// --- Genres ---

// GenreRepo — жанры в памяти.
type GenreRepo struct {
	s *Store
}

var _ repo.GenreRepo = (*GenreRepo)(nil)

func (r *GenreRepo) List(_ context.Context) ([]domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	genres := []domain.Genre{}
	for _, g := range r.s.genres {
		if !g.Deleted {
			genres = append(genres, g)
		}
	}
	return genres, nil
}

func (r *GenreRepo) GetByID(_ context.Context, id domain.ID) (*domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i := find(r.s.genres, id, genreID)
	if i < 0 || r.s.genres[i].Deleted {
		return nil, repo.ErrNotFound
	}
	g := r.s.genres[i]
	return &g, nil
}

func (r *GenreRepo) GetByIDs(_ context.Context, ids []domain.ID) ([]domain.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	genres := []domain.Genre{}
	for _, g := range r.s.genres {
		if !g.Deleted && contains(ids, g.ID) {
			genres = append(genres, g)
		}
	}
	return genres, nil
}

func (r *GenreRepo) Create(_ context.Context, genre *domain.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if genre.ID == "" {
		genre.ID = domain.NewID()
	}
	r.s.genres = append(r.s.genres, *genre)
	return nil
}

func (r *GenreRepo) Update(_ context.Context, id domain.ID, patch domain.GenrePatch) (*domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.genres, id, genreID)
	if i < 0 || r.s.genres[i].Deleted {
		return nil, repo.ErrNotFound
	}
	patch.Apply(&r.s.genres[i])
	g := r.s.genres[i]
	return &g, nil
}

func (r *GenreRepo) Delete(_ context.Context, id domain.ID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.genres, id, genreID)
	if i < 0 || r.s.genres[i].Deleted {
		return repo.ErrNotFound
	}
	r.s.genres[i].MarkDeleted(time.Now().UTC())
	return nil
}

func (r *GenreRepo) Restore(_ context.Context, id domain.ID) (*domain.Genre, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := find(r.s.genres, id, genreID)
	if i < 0 || !r.s.genres[i].Deleted {
		return nil, repo.ErrNotFound
	}
	r.s.genres[i].Restore()
	g := r.s.genres[i]
	return &g, nil
}

func (r *GenreRepo) Purge(_ context.Context, before time.Time) ([]domain.ID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var ids []domain.ID
	r.s.genres, ids = purge(r.s.genres, before, genreID, genreSD)
	return ids, nil
}
