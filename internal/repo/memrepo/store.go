package memrepo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// Store — хранилище каталога в памяти процесса.
//
// Записи хранятся в порядке вставки. Все репозитории одного Store
// разделяют общий мьютекс, поэтому проверки "жива ли вторая сторона связи"
// выполняются атомарно.
type Store struct {
	mu              sync.RWMutex
	movies          []domain.Movie
	categories      []domain.Category
	genres          []domain.Genre
	movieCategories []domain.MovieCategory
	movieGenres     []domain.MovieGenre
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{}
}

// Repos возвращает репозитории поверх хранилища.
func (s *Store) Repos() repo.Repos {
	return repo.Repos{
		Movies:          &MovieRepo{s: s},
		Categories:      &CategoryRepo{s: s},
		Genres:          &GenreRepo{s: s},
		MovieCategories: &MovieCategoryRepo{s: s},
		MovieGenres:     &MovieGenreRepo{s: s},
		Pinger:          s,
	}
}

// Ping всегда успешен.
func (s *Store) Ping(context.Context) error {
	return nil
}

// --- Общие операции над записями с SoftDelete ---

// record — запись каталога с ID и признаком удаления.
type record interface {
	domain.Movie | domain.Category | domain.Genre | domain.MovieCategory | domain.MovieGenre
}

func find[T record](items []T, id domain.ID, idOf func(*T) domain.ID) int {
	return slices.IndexFunc(items, func(it T) bool { return idOf(&it) == id })
}

// purge удаляет записи, помеченные удалёнными раньше before, и возвращает их ID.
func purge[T record](items []T, before time.Time, idOf func(*T) domain.ID, sd func(*T) *domain.SoftDelete) ([]T, []domain.ID) {
	var purged []domain.ID
	kept := items[:0]
	for i := range items {
		d := sd(&items[i])
		if d.Deleted && d.DeletedAt != nil && d.DeletedAt.Before(before) {
			purged = append(purged, idOf(&items[i]))
			continue
		}
		kept = append(kept, items[i])
	}
	return kept, purged
}

func (s *Store) liveMovie(id domain.ID) bool {
	i := find(s.movies, id, movieID)
	return i >= 0 && !s.movies[i].Deleted
}

func (s *Store) liveCategory(id domain.ID) bool {
	i := find(s.categories, id, categoryID)
	return i >= 0 && !s.categories[i].Deleted
}

func (s *Store) liveGenre(id domain.ID) bool {
	i := find(s.genres, id, genreID)
	return i >= 0 && !s.genres[i].Deleted
}

// exists* учитывают и удалённые записи: связь висит, только если второй стороны нет совсем.

func (s *Store) existsMovie(id domain.ID) bool { return find(s.movies, id, movieID) >= 0 }

func (s *Store) existsCategory(id domain.ID) bool { return find(s.categories, id, categoryID) >= 0 }

func (s *Store) existsGenre(id domain.ID) bool { return find(s.genres, id, genreID) >= 0 }

func movieID(m *domain.Movie) domain.ID { return m.ID }

func categoryID(c *domain.Category) domain.ID { return c.ID }

func genreID(g *domain.Genre) domain.ID { return g.ID }

func movieCategoryID(l *domain.MovieCategory) domain.ID { return l.ID }

func movieGenreID(l *domain.MovieGenre) domain.ID { return l.ID }

func movieSD(m *domain.Movie) *domain.SoftDelete { return &m.SoftDelete }

func categorySD(c *domain.Category) *domain.SoftDelete { return &c.SoftDelete }

func genreSD(g *domain.Genre) *domain.SoftDelete { return &g.SoftDelete }

func movieCategorySD(l *domain.MovieCategory) *domain.SoftDelete { return &l.SoftDelete }

func movieGenreSD(l *domain.MovieGenre) *domain.SoftDelete { return &l.SoftDelete }

func contains(ids []domain.ID, id domain.ID) bool {
	return slices.Contains(ids, id)
}
