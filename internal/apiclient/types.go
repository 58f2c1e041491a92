package apiclient

import "time"

// Типы ответов дублируются из api/dto.go: клиент не импортирует internal/api.

// Movie — фильм из API. Categories и Genres заполнены в ответах /movies.
type Movie struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`
	OriginalLanguage string    `json:"original_language"`
	VoteAverage      float64   `json:"vote_average"`
	Categories       []string  `json:"categories,omitempty"`
	Genres           []string  `json:"genres,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Category — категория из API.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Genre — жанр из API.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieCategory — join-запись с подставленными фильмом и категорией.
type MovieCategory struct {
	ID       string   `json:"id"`
	Movie    Movie    `json:"movieId"`
	Category Category `json:"categoryId"`
}

// MovieGenre — join-запись с подставленными фильмом и жанром.
type MovieGenre struct {
	ID    string `json:"id"`
	Movie Movie  `json:"movieId"`
	Genre Genre  `json:"genreId"`
}

// --- Request types ---

// CreateMovieRequest — создание фильма.
type CreateMovieRequest struct {
	Title            string  `json:"title"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       string  `json:"poster_path,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
}

// UpdateMovieRequest — частичное обновление фильма. Nil-поля не отправляются.
type UpdateMovieRequest struct {
	Title            *string  `json:"title,omitempty"`
	Overview         *string  `json:"overview,omitempty"`
	PosterPath       *string  `json:"poster_path,omitempty"`
	OriginalLanguage *string  `json:"original_language,omitempty"`
	VoteAverage      *float64 `json:"vote_average,omitempty"`
}

// UpdateCategoryRequest — частичное обновление категории.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}
