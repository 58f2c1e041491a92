// Package repotest — общий набор проверок для реализаций repo.Repos.
//
// Каждый backend запускает Run в своих тестах: memrepo напрямую,
// mongorepo и pgrepo в интеграционных тестах с контейнерами.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/repo"
)

// Factory создаёт чистый набор репозиториев для одного подтеста.
type Factory func(t *testing.T) repo.Repos

// Run прогоняет все проверки против backend-а.
func Run(t *testing.T, newRepos Factory) {
	t.Run("MovieCRUD", func(t *testing.T) { testMovieCRUD(t, newRepos(t)) })
	t.Run("MovieSoftDelete", func(t *testing.T) { testMovieSoftDelete(t, newRepos(t)) })
	t.Run("CategoryFilter", func(t *testing.T) { testCategoryFilter(t, newRepos(t)) })
	t.Run("GenreCRUD", func(t *testing.T) { testGenreCRUD(t, newRepos(t)) })
	t.Run("LinkIdempotent", func(t *testing.T) { testLinkIdempotent(t, newRepos(t)) })
	t.Run("LinkCascade", func(t *testing.T) { testLinkCascade(t, newRepos(t)) })
	t.Run("DeleteDangling", func(t *testing.T) { testDeleteDangling(t, newRepos(t)) })
	t.Run("Purge", func(t *testing.T) { testPurge(t, newRepos(t)) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, newRepos(t).Pinger.Ping(context.Background())) })
}

func createMovie(t *testing.T, r repo.Repos, title string) domain.Movie {
	t.Helper()
	m := domain.Movie{Title: title, OriginalLanguage: "en", VoteAverage: 7.5}
	require.NoError(t, r.Movies.Create(context.Background(), &m))
	require.NotEmpty(t, m.ID)
	return m
}

func createCategory(t *testing.T, r repo.Repos, name, typ string) domain.Category {
	t.Helper()
	c := domain.Category{Name: name, Type: typ}
	require.NoError(t, r.Categories.Create(context.Background(), &c))
	return c
}

func createGenre(t *testing.T, r repo.Repos, name string) domain.Genre {
	t.Helper()
	g := domain.Genre{Name: name}
	require.NoError(t, r.Genres.Create(context.Background(), &g))
	return g
}

func testMovieCRUD(t *testing.T, r repo.Repos) {
	ctx := context.Background()

	alien := createMovie(t, r, "Alien")
	heat := createMovie(t, r, "Heat")

	got, err := r.Movies.GetByID(ctx, alien.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", got.Title)
	assert.Equal(t, 7.5, got.VoteAverage)
	assert.False(t, got.CreatedAt.IsZero())

	list, err := r.Movies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alien.ID, list[0].ID)
	assert.Equal(t, heat.ID, list[1].ID)

	title := "Aliens"
	updated, err := r.Movies.Update(ctx, alien.ID, domain.MoviePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Aliens", updated.Title)
	assert.Equal(t, "en", updated.OriginalLanguage)

	byIDs, err := r.Movies.GetByIDs(ctx, []domain.ID{heat.ID, domain.NewID()})
	require.NoError(t, err)
	require.Len(t, byIDs, 1)
	assert.Equal(t, "Heat", byIDs[0].Title)

	_, err = r.Movies.GetByID(ctx, domain.NewID())
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = r.Movies.Update(ctx, domain.NewID(), domain.MoviePatch{Title: &title})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func testMovieSoftDelete(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	m := createMovie(t, r, "Ronin")

	require.NoError(t, r.Movies.Delete(ctx, m.ID))
	assert.ErrorIs(t, r.Movies.Delete(ctx, m.ID), repo.ErrNotFound, "second delete")

	_, err := r.Movies.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	list, err := r.Movies.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	restored, err := r.Movies.Restore(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted())
	assert.Nil(t, restored.DeletedAt)

	_, err = r.Movies.Restore(ctx, m.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound, "restore of live movie")

	assert.ErrorIs(t, r.Movies.Delete(ctx, domain.NewID()), repo.ErrNotFound)
}

func testCategoryFilter(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	trending := createCategory(t, r, "Trending", "list")
	createCategory(t, r, "Staff Picks", "editorial")
	untyped := createCategory(t, r, "Misc", "")

	all, err := r.Categories.List(ctx, repo.CategoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	lists, err := r.Categories.List(ctx, repo.CategoryFilter{Type: "list"})
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, trending.ID, lists[0].ID)

	got, err := r.Categories.GetByID(ctx, untyped.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Type)

	name := "Hot"
	updated, err := r.Categories.Update(ctx, trending.ID, domain.CategoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Hot", updated.Name)
	assert.Equal(t, "list", updated.Type)

	require.NoError(t, r.Categories.Delete(ctx, trending.ID))
	lists, err = r.Categories.List(ctx, repo.CategoryFilter{Type: "list"})
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func testGenreCRUD(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	horror := createGenre(t, r, "Horror")
	crime := createGenre(t, r, "Crime")

	byIDs, err := r.Genres.GetByIDs(ctx, []domain.ID{horror.ID, crime.ID})
	require.NoError(t, err)
	assert.Len(t, byIDs, 2)

	require.NoError(t, r.Genres.Delete(ctx, horror.ID))
	list, err := r.Genres.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Crime", list[0].Name)

	restored, err := r.Genres.Restore(ctx, horror.ID)
	require.NoError(t, err)
	assert.Equal(t, "Horror", restored.Name)
}

func testLinkIdempotent(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	m1 := createMovie(t, r, "Alien")
	m2 := createMovie(t, r, "Heat")
	c := createCategory(t, r, "Trending", "")
	g := createGenre(t, r, "Thriller")

	require.NoError(t, r.MovieCategories.Link(ctx, c.ID, []domain.ID{m1.ID, m2.ID, m1.ID}))
	require.NoError(t, r.MovieCategories.Link(ctx, c.ID, []domain.ID{m1.ID}))

	links, err := r.MovieCategories.ListByCategory(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, links, 2, "duplicates must not be stored")

	byMovie, err := r.MovieCategories.ListByMovieIDs(ctx, []domain.ID{m2.ID})
	require.NoError(t, err)
	require.Len(t, byMovie, 1)
	assert.Equal(t, c.ID, byMovie[0].CategoryID)

	require.NoError(t, r.MovieGenres.Link(ctx, g.ID, []domain.ID{m1.ID}))
	require.NoError(t, r.MovieGenres.Link(ctx, g.ID, []domain.ID{m1.ID}))
	genreLinks, err := r.MovieGenres.ListByGenre(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, genreLinks, 1)

	// повторная связь восстанавливает удалённую
	n, err := r.MovieGenres.DeleteByGenre(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, r.MovieGenres.Link(ctx, g.ID, []domain.ID{m1.ID}))
	all, err := r.MovieGenres.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, genreLinks[0].ID, all[0].ID)
}

func testLinkCascade(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	m := createMovie(t, r, "Alien")
	c1 := createCategory(t, r, "Trending", "")
	c2 := createCategory(t, r, "Upcoming", "")
	require.NoError(t, r.MovieCategories.Link(ctx, c1.ID, []domain.ID{m.ID}))
	require.NoError(t, r.MovieCategories.Link(ctx, c2.ID, []domain.ID{m.ID}))

	require.NoError(t, r.Movies.Delete(ctx, m.ID))
	n, err := r.MovieCategories.DeleteByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// пока фильм удалён, связи не восстанавливаются
	require.NoError(t, r.Categories.Delete(ctx, c2.ID))
	n, err = r.MovieCategories.RestoreByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = r.Movies.Restore(ctx, m.ID)
	require.NoError(t, err)
	n, err = r.MovieCategories.RestoreByMovie(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only link with live category is restored")

	_, err = r.Categories.Restore(ctx, c2.ID)
	require.NoError(t, err)
	n, err = r.MovieCategories.RestoreByCategory(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	links, err := r.MovieCategories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}

func testDeleteDangling(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	live := createMovie(t, r, "Alien")
	hidden := createMovie(t, r, "Hidden")
	g := createGenre(t, r, "Horror")

	require.NoError(t, r.MovieGenres.Link(ctx, g.ID, []domain.ID{live.ID, hidden.ID, domain.NewID()}))
	require.NoError(t, r.Movies.Delete(ctx, hidden.ID))

	// висит только связь с несуществующим фильмом
	n, err := r.MovieGenres.DeleteDangling(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	links, err := r.MovieGenres.List(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.ElementsMatch(t, []domain.ID{live.ID, hidden.ID}, []domain.ID{links[0].MovieID, links[1].MovieID})

	_, err = r.Movies.Restore(ctx, hidden.ID)
	require.NoError(t, err)
	links, err = r.MovieGenres.ListByGenre(ctx, g.ID)
	require.NoError(t, err)
	assert.Len(t, links, 2, "restored movie keeps its links")

	n, err = r.MovieCategories.DeleteDangling(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func testPurge(t *testing.T, r repo.Repos) {
	ctx := context.Background()
	keep := createMovie(t, r, "Keep")
	drop := createMovie(t, r, "Drop")
	c := createCategory(t, r, "Trending", "")
	require.NoError(t, r.MovieCategories.Link(ctx, c.ID, []domain.ID{keep.ID, drop.ID}))

	require.NoError(t, r.Movies.Delete(ctx, drop.ID))
	_, err := r.MovieCategories.DeleteByMovie(ctx, drop.ID)
	require.NoError(t, err)

	// before в прошлом — ничего не удаляется
	ids, err := r.Movies.Purge(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, ids)

	future := time.Now().Add(time.Hour)
	n, err := r.MovieCategories.Purge(ctx, future)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	ids, err = r.Movies.Purge(ctx, future)
	require.NoError(t, err)
	assert.Equal(t, []domain.ID{drop.ID}, ids)

	_, err = r.Movies.Restore(ctx, drop.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound, "purged movie cannot be restored")

	list, err := r.Movies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	catIDs, err := r.Categories.Purge(ctx, future)
	require.NoError(t, err)
	assert.Empty(t, catIDs)
	genreIDs, err := r.Genres.Purge(ctx, future)
	require.NoError(t, err)
	assert.Empty(t, genreIDs)
	n, err = r.MovieGenres.Purge(ctx, future)
	require.NoError(t, err)
	assert.Zero(t, n)
}
