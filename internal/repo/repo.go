package repo

import (
	"context"
	"time"

	"github.com/shaiso/glimpse/internal/domain"
)

// MovieRepo — хранилище фильмов.
type MovieRepo interface {
	// List возвращает все живые фильмы в порядке создания.
	List(ctx context.Context) ([]domain.Movie, error)

	// GetByID возвращает живой фильм или ErrNotFound.
	GetByID(ctx context.Context, id domain.ID) (*domain.Movie, error)

	// GetByIDs возвращает живые фильмы из списка. Отсутствующие пропускаются.
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Movie, error)

	// Create сохраняет фильм. ID и временные метки проставляются, если пусты.
	Create(ctx context.Context, movie *domain.Movie) error

	// Update применяет патч и возвращает обновлённый фильм.
	Update(ctx context.Context, id domain.ID, patch domain.MoviePatch) (*domain.Movie, error)

	// Delete помечает фильм удалённым.
	Delete(ctx context.Context, id domain.ID) error

	// Restore снимает пометку удаления и возвращает фильм.
	Restore(ctx context.Context, id domain.ID) (*domain.Movie, error)

	// Purge физически удаляет фильмы, помеченные удалёнными раньше before.
	// Возвращает ID удалённых записей.
	Purge(ctx context.Context, before time.Time) ([]domain.ID, error)
}

// CategoryFilter — фильтр для списка категорий.
type CategoryFilter struct {
	// Type — точное совпадение по типу. Пустая строка — без фильтра.
	Type string
}

// CategoryRepo — хранилище категорий.
type CategoryRepo interface {
	List(ctx context.Context, filter CategoryFilter) ([]domain.Category, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Category, error)
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Category, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, id domain.ID, patch domain.CategoryPatch) (*domain.Category, error)
	Delete(ctx context.Context, id domain.ID) error
	Restore(ctx context.Context, id domain.ID) (*domain.Category, error)
	Purge(ctx context.Context, before time.Time) ([]domain.ID, error)
}

// GenreRepo — хранилище жанров.
type GenreRepo interface {
	List(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Genre, error)
	GetByIDs(ctx context.Context, ids []domain.ID) ([]domain.Genre, error)
	Create(ctx context.Context, genre *domain.Genre) error
	Update(ctx context.Context, id domain.ID, patch domain.GenrePatch) (*domain.Genre, error)
	Delete(ctx context.Context, id domain.ID) error
	Restore(ctx context.Context, id domain.ID) (*domain.Genre, error)
	Purge(ctx context.Context, before time.Time) ([]domain.ID, error)
}

// MovieCategoryRepo — хранилище связей фильм ↔ категория.
//
// Методы Delete*/Restore* возвращают количество затронутых связей;
// отсутствие связей не считается ошибкой. Restore* восстанавливают
// только связи, у которых вторая сторона существует и не удалена.
type MovieCategoryRepo interface {
	// List возвращает все живые связи.
	List(ctx context.Context) ([]domain.MovieCategory, error)

	// ListByCategory возвращает живые связи категории.
	ListByCategory(ctx context.Context, categoryID domain.ID) ([]domain.MovieCategory, error)

	// ListByMovieIDs возвращает живые связи для набора фильмов.
	ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieCategory, error)

	// Link связывает фильмы с категорией. Повторная связь не создаёт дубликат,
	// удалённая связь восстанавливается.
	Link(ctx context.Context, categoryID domain.ID, movieIDs []domain.ID) error

	DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error)
	DeleteByCategory(ctx context.Context, categoryID domain.ID) (int64, error)
	RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error)
	RestoreByCategory(ctx context.Context, categoryID domain.ID) (int64, error)

	// DeleteDangling помечает удалёнными связи, у которых фильм или категория
	// отсутствует в хранилище. Мягко удалённая сторона связь не затрагивает.
	DeleteDangling(ctx context.Context) (int64, error)

	// Purge физически удаляет связи, помеченные удалёнными раньше before.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// MovieGenreRepo — хранилище связей фильм ↔ жанр.
type MovieGenreRepo interface {
	List(ctx context.Context) ([]domain.MovieGenre, error)
	ListByGenre(ctx context.Context, genreID domain.ID) ([]domain.MovieGenre, error)
	ListByMovieIDs(ctx context.Context, movieIDs []domain.ID) ([]domain.MovieGenre, error)
	Link(ctx context.Context, genreID domain.ID, movieIDs []domain.ID) error
	DeleteByMovie(ctx context.Context, movieID domain.ID) (int64, error)
	DeleteByGenre(ctx context.Context, genreID domain.ID) (int64, error)
	RestoreByMovie(ctx context.Context, movieID domain.ID) (int64, error)
	RestoreByGenre(ctx context.Context, genreID domain.ID) (int64, error)
	DeleteDangling(ctx context.Context) (int64, error)
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// Pinger — проверка доступности хранилища для /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Repos — набор репозиториев одного backend-а.
type Repos struct {
	Movies          MovieRepo
	Categories      CategoryRepo
	Genres          GenreRepo
	MovieCategories MovieCategoryRepo
	MovieGenres     MovieGenreRepo
	Pinger          Pinger
}
