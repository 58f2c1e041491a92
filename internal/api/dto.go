package api

import (
	"time"

	"github.com/shaiso/glimpse/internal/domain"
)

// Movie DTOs

// CreateMovieRequest — запрос на создание фильма.
type CreateMovieRequest struct {
	Title            string  `json:"title" validate:"required"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	OriginalLanguage string  `json:"original_language"`
	VoteAverage      float64 `json:"vote_average"`
}

// ToDomain конвертирует запрос в domain.Movie.
func (r CreateMovieRequest) ToDomain() domain.Movie {
	return domain.Movie{
		Title:            r.Title,
		Overview:         r.Overview,
		PosterPath:       r.PosterPath,
		OriginalLanguage: r.OriginalLanguage,
		VoteAverage:      r.VoteAverage,
	}
}

// UpdateMovieRequest — частичное обновление фильма.
type UpdateMovieRequest struct {
	Title            *string  `json:"title,omitempty"`
	Overview         *string  `json:"overview,omitempty"`
	PosterPath       *string  `json:"poster_path,omitempty"`
	OriginalLanguage *string  `json:"original_language,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
}

// ToPatch конвертирует запрос в domain.MoviePatch.
func (r UpdateMovieRequest) ToPatch() domain.MoviePatch {
	return domain.MoviePatch{
		Title:            r.Title,
		Overview:         r.Overview,
		PosterPath:       r.PosterPath,
		OriginalLanguage: r.OriginalLanguage,
		VoteAverage:      r.VoteAverage,
	}
}

// MovieResponse — ответ с фильмом.
type MovieResponse struct {
	ID               domain.ID `json:"id"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`
	OriginalLanguage string    `json:"original_language"`
	VoteAverage      float64   `json:"vote_average"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// MovieFromDomain конвертирует domain.Movie в MovieResponse.
func MovieFromDomain(m domain.Movie) MovieResponse {
	return MovieResponse{
		ID:               m.ID,
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		OriginalLanguage: m.OriginalLanguage,
		VoteAverage:      m.VoteAverage,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// MovieDetailsResponse — фильм с именами категорий и жанров.
// Пустые списки сериализуются как [].
type MovieDetailsResponse struct {
	MovieResponse
	Categories []string `json:"categories"`
	Genres     []string `json:"genres"`
}

// MovieDetailsFromDomain конвертирует domain.MovieDetails в ответ.
func MovieDetailsFromDomain(d domain.MovieDetails) MovieDetailsResponse {
	return MovieDetailsResponse{
		MovieResponse: MovieFromDomain(d.Movie),
		Categories:    d.Categories,
		Genres:        d.Genres,
	}
}

// Category DTOs

// CreateCategoryRequest — запрос на создание категории.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type"`
}

// UpdateCategoryRequest — частичное обновление категории.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// CategoryResponse — ответ с категорией.
type CategoryResponse struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type,omitempty"`
}

// CategoryFromDomain конвертирует domain.Category в CategoryResponse.
func CategoryFromDomain(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type}
}

// Genre DTOs

// CreateGenreRequest — запрос на создание жанра.
type CreateGenreRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateGenreRequest — частичное обновление жанра.
type UpdateGenreRequest struct {
	Name *string `json:"name,omitempty"`
}

// GenreResponse — ответ с жанром.
type GenreResponse struct {
	ID   domain.ID `json:"id"`
	Name string    `json:"name"`
}

// GenreFromDomain конвертирует domain.Genre в GenreResponse.
func GenreFromDomain(g domain.Genre) GenreResponse {
	return GenreResponse{ID: g.ID, Name: g.Name}
}

// Link DTOs

// LinkMoviesRequest — привязка фильмов к категории или жанру.
type LinkMoviesRequest struct {
	MovieIDs []string `json:"movieIds" validate:"required,dive,required"`
}

// MovieCategoryResponse — join-запись с подставленными фильмом и категорией.
// Ключи movieId/categoryId содержат сами записи.
type MovieCategoryResponse struct {
	ID       domain.ID        `json:"id"`
	Movie    MovieResponse    `json:"movieId"`
	Category CategoryResponse `json:"categoryId"`
}

// MovieCategoryFromDomain конвертирует domain.MovieCategoryLink в ответ.
func MovieCategoryFromDomain(l domain.MovieCategoryLink) MovieCategoryResponse {
	return MovieCategoryResponse{
		ID:       l.ID,
		Movie:    MovieFromDomain(*l.Movie),
		Category: CategoryFromDomain(*l.Category),
	}
}

// MovieGenreResponse — join-запись с подставленными фильмом и жанром.
type MovieGenreResponse struct {
	ID    domain.ID     `json:"id"`
	Movie MovieResponse `json:"movieId"`
	Genre GenreResponse `json:"genreId"`
}

// MovieGenreFromDomain конвертирует domain.MovieGenreLink в ответ.
func MovieGenreFromDomain(l domain.MovieGenreLink) MovieGenreResponse {
	return MovieGenreResponse{
		ID:    l.ID,
		Movie: MovieFromDomain(*l.Movie),
		Genre: GenreFromDomain(*l.Genre),
	}
}

// mapSlice конвертирует срез доменных записей в срез DTO.
func mapSlice[T, R any](items []T, fn func(T) R) []R {
	result := make([]R, len(items))
	for i, it := range items {
		result[i] = fn(it)
	}
	return result
}
