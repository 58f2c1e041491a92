package domain

import "time"

// Movie — фильм в каталоге.
type Movie struct {
	// ID — уникальный идентификатор фильма.
	ID ID `json:"id"`

	// Title — название.
	Title string `json:"title"`

	// Overview — краткое описание сюжета.
	Overview string `json:"overview"`

	// PosterPath — путь или URL постера.
	PosterPath string `json:"poster_path"`

	// OriginalLanguage — язык оригинала (ISO 639-1, например "en").
	OriginalLanguage string `json:"original_language"`

	// VoteAverage — средняя оценка зрителей.
	VoteAverage float64 `json:"vote_average"`

	// CreatedAt, UpdatedAt проставляются хранилищем.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SoftDelete
}

// MoviePatch — частичное обновление фильма. Nil-поля не меняются.
type MoviePatch struct {
	Title            *string
	Overview         *string
	PosterPath       *string
	OriginalLanguage *string
	VoteAverage      *float64
}

// IsEmpty возвращает true, если патч ничего не меняет.
func (p MoviePatch) IsEmpty() bool {
	return p.Title == nil && p.Overview == nil && p.PosterPath == nil &&
		p.OriginalLanguage == nil && p.VoteAverage == nil
}

// Apply применяет патч к фильму.
func (p MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Overview != nil {
		m.Overview = *p.Overview
	}
	if p.PosterPath != nil {
		m.PosterPath = *p.PosterPath
	}
	if p.OriginalLanguage != nil {
		m.OriginalLanguage = *p.OriginalLanguage
	}
	if p.VoteAverage != nil {
		m.VoteAverage = *p.VoteAverage
	}
}

// MovieDetails — фильм вместе с именами его категорий и жанров.
type MovieDetails struct {
	Movie

	// Categories — имена живых категорий фильма.
	Categories []string `json:"categories"`

	// Genres — имена живых жанров фильма.
	Genres []string `json:"genres"`
}
