package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/domain"
	"github.com/shaiso/glimpse/internal/mq"
)

func TestCategories_TypeFilter(t *testing.T) {
	s := newTestServer(t)
	s.createCategory(t, "Trending", "list")
	s.createCategory(t, "Staff Picks", "editorial")
	s.createCategory(t, "Upcoming", "list")

	rec, env := s.do(t, http.MethodGet, "/categories?type=list", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	categories := decodeData[[]CategoryResponse](t, env)
	require.Len(t, categories, 2)
	assert.Equal(t, "Trending", categories[0].Name)
	assert.Equal(t, "Upcoming", categories[1].Name)

	_, env = s.do(t, http.MethodGet, "/categories", nil)
	assert.Equal(t, 3, env.Total)
}

func TestCategory_CRUD(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/categories", `{"name":"Discover"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Category is Added", env.Message)
	category := decodeData[CategoryResponse](t, env)

	rec, env = s.do(t, http.MethodPatch, "/categories/"+category.ID.String(), `{"type":"list"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeData[CategoryResponse](t, env)
	assert.Equal(t, "Discover", updated.Name)
	assert.Equal(t, "list", updated.Type)

	rec, _ = s.do(t, http.MethodDelete, "/categories/"+category.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, env = s.do(t, http.MethodGet, "/categories", nil)
	assert.Equal(t, 0, env.Total)

	rec, _ = s.do(t, http.MethodPost, "/categories/"+category.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/categories/"+category.ID.String()+"/restore", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "restoring a live category")
}

func TestGenre_CRUD(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodPost, "/genres", `{"name":"Horor"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Genre is Added", env.Message)
	genre := decodeData[GenreResponse](t, env)

	rec, env = s.do(t, http.MethodPatch, "/genres/"+genre.ID.String(), `{"name":"Horror"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Horror", decodeData[GenreResponse](t, env).Name)

	rec, env = s.do(t, http.MethodGet, "/genres/"+genre.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Horror", decodeData[GenreResponse](t, env).Name)

	rec, _ = s.do(t, http.MethodDelete, "/genres/"+genre.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = s.do(t, http.MethodGet, "/genres/"+genre.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []mq.MessageType{"genre.created", "genre.updated", "genre.deleted"}, s.publisher.types())
}

func TestCategoryMovies_LinkAndList(t *testing.T) {
	s := newTestServer(t)
	alien := s.createMovie(t, "Alien")
	heat := s.createMovie(t, "Heat")
	trending := s.createCategory(t, "Trending", "list")
	path := "/categories/" + trending.ID.String() + "/movies"

	body := LinkMoviesRequest{MovieIDs: []string{alien.ID.String(), heat.ID.String(), alien.ID.String()}}
	rec, env := s.do(t, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Movies have been added to this category", env.Message)
	assert.Equal(t, []domain.ID{alien.ID, heat.ID}, decodeData[[]domain.ID](t, env))

	// повторная привязка не создаёт дубликатов
	rec, _ = s.do(t, http.MethodPost, path, LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})
	require.Equal(t, http.StatusCreated, rec.Code)

	s.do(t, http.MethodDelete, "/movies/"+heat.ID.String(), nil)

	rec, env = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "All Movies in this category", env.Message)

	links := decodeData[[]MovieCategoryResponse](t, env)
	require.Len(t, links, 1, "deleted movie is omitted")
	assert.Equal(t, "Alien", links[0].Movie.Title)
	assert.Equal(t, "Trending", links[0].Category.Name)
	assert.Contains(t, string(env.Data), `"movieId":{`)

	rec, env = s.do(t, http.MethodGet, "/movieCategories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, env.Total)

	linked := s.publisher.events[len(s.publisher.events)-3]
	assert.Equal(t, mq.MessageType("category.linked"), linked.Type())
	assert.Equal(t, trending.ID.String(), linked.EntityID)
	assert.Equal(t, []string{alien.ID.String(), heat.ID.String()}, linked.IDs)
}

func TestCategoryMovies_UnknownCategoryIsEmpty(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(t, http.MethodGet, "/categories/"+domain.NewID().String()+"/movies", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestLinkMovies_BadBody(t *testing.T) {
	s := newTestServer(t)
	genre := s.createGenre(t, "Crime")
	path := "/genres/" + genre.ID.String() + "/movies"

	tests := []struct {
		name string
		body string
	}{
		{"missing movieIds", `{}`},
		{"invalid id", `{"movieIds":["nope"]}`},
		{"empty id", `{"movieIds":[""]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := s.do(t, http.MethodPost, path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGenreMovies_ReturnsMovies(t *testing.T) {
	s := newTestServer(t)
	alien := s.createMovie(t, "Alien")
	horror := s.createGenre(t, "Horror")
	path := "/genres/" + horror.ID.String() + "/movies"

	rec, env := s.do(t, http.MethodPost, path, LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Movies have been added to this genre", env.Message)

	rec, env = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	movies := decodeData[[]MovieResponse](t, env)
	require.Len(t, movies, 1)
	assert.Equal(t, alien.ID, movies[0].ID)

	rec, env = s.do(t, http.MethodGet, "/movieGenres", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	links := decodeData[[]MovieGenreResponse](t, env)
	require.Len(t, links, 1)
	assert.Equal(t, "Horror", links[0].Genre.Name)

	// удалённый жанр прячет связи
	s.do(t, http.MethodDelete, "/genres/"+horror.ID.String(), nil)
	_, env = s.do(t, http.MethodGet, "/movieGenres", nil)
	assert.Equal(t, 0, env.Total)
}
