package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/mq"
)

func TestMovie_Lifecycle(t *testing.T) {
	s := newTestServer(t)

	movie := s.createMovie(t, "Alien")
	assert.Equal(t, "Alien", movie.Title)
	assert.NotEmpty(t, movie.ID)
	assert.False(t, movie.CreatedAt.IsZero())

	// GET возвращает пустые списки тегов, а не null
	rec, env := s.do(t, http.MethodGet, "/movies/"+movie.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"categories":[]`)
	assert.Contains(t, string(env.Data), `"genres":[]`)

	rec, env = s.do(t, http.MethodPatch, "/movies/"+movie.ID.String(), `{"title":"Aliens","vote_average":8.4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeData[MovieResponse](t, env)
	assert.Equal(t, "Aliens", updated.Title)
	assert.Equal(t, 8.4, updated.VoteAverage)
	assert.Equal(t, "en", updated.OriginalLanguage, "untouched field kept")

	rec, _ = s.do(t, http.MethodDelete, "/movies/"+movie.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, _ = s.do(t, http.MethodGet, "/movies/"+movie.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, env.Total)
	assert.JSONEq(t, `[]`, string(env.Data))

	rec, _ = s.do(t, http.MethodDelete, "/movies/"+movie.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "second delete")

	rec, env = s.do(t, http.MethodPost, "/movies/"+movie.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Aliens", decodeData[MovieResponse](t, env).Title)

	rec, _ = s.do(t, http.MethodGet, "/movies/"+movie.ID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []mq.MessageType{
		"movie.created", "movie.updated", "movie.deleted", "movie.restored",
	}, s.publisher.types())
}

func TestMovie_EmptyPatchReturnsMovie(t *testing.T) {
	s := newTestServer(t)
	movie := s.createMovie(t, "Heat")

	rec, env := s.do(t, http.MethodPatch, "/movies/"+movie.ID.String(), `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Heat", decodeData[MovieResponse](t, env).Title)
	assert.Equal(t, []mq.MessageType{"movie.created"}, s.publisher.types())
}

func TestListMovies_WithTaxonomy(t *testing.T) {
	s := newTestServer(t)

	alien := s.createMovie(t, "Alien")
	heat := s.createMovie(t, "Heat")
	trending := s.createCategory(t, "Trending", "")
	hidden := s.createCategory(t, "Hidden", "")
	horror := s.createGenre(t, "Horror")

	s.do(t, http.MethodPost, "/categories/"+trending.ID.String()+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String(), heat.ID.String()}})
	s.do(t, http.MethodPost, "/categories/"+hidden.ID.String()+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})
	s.do(t, http.MethodPost, "/genres/"+horror.ID.String()+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})

	// удалённая категория не попадает в имена
	rec, _ := s.do(t, http.MethodDelete, "/categories/"+hidden.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.Total)

	movies := decodeData[[]MovieDetailsResponse](t, env)
	require.Len(t, movies, 2)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Equal(t, []string{"Trending"}, movies[0].Categories)
	assert.Equal(t, []string{"Horror"}, movies[0].Genres)
	assert.Equal(t, "Heat", movies[1].Title)
	assert.Equal(t, []string{"Trending"}, movies[1].Categories)
	assert.Empty(t, movies[1].Genres)
}

func TestPublishFailure_DoesNotFailRequest(t *testing.T) {
	s := newTestServer(t)
	s.publisher.err = errors.New("broker down")

	rec, _ := s.do(t, http.MethodPost, "/movies", `{"title":"Ronin"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRestoreMovie_RestoresLinks(t *testing.T) {
	s := newTestServer(t)
	alien := s.createMovie(t, "Alien")
	trending := s.createCategory(t, "Trending", "")
	horror := s.createGenre(t, "Horror")

	s.do(t, http.MethodPost, "/categories/"+trending.ID.String()+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})
	s.do(t, http.MethodPost, "/genres/"+horror.ID.String()+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})

	rec, _ := s.do(t, http.MethodDelete, "/movies/"+alien.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// movie.deleted уже обработан, а movie.restored до sweeper не дойдёт
	ctx := context.Background()
	_, err := s.repos.MovieCategories.DeleteByMovie(ctx, alien.ID)
	require.NoError(t, err)
	_, err = s.repos.MovieGenres.DeleteByMovie(ctx, alien.ID)
	require.NoError(t, err)

	rec, _ = s.do(t, http.MethodPost, "/movies/"+alien.ID.String()+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, "/movies/"+alien.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	details := decodeData[MovieDetailsResponse](t, env)
	assert.Equal(t, []string{"Trending"}, details.Categories)
	assert.Equal(t, []string{"Horror"}, details.Genres)
}

func TestRestoreCategory_RestoresLinks(t *testing.T) {
	s := newTestServer(t)
	alien := s.createMovie(t, "Alien")
	trending := s.createCategory(t, "Trending", "")
	path := "/categories/" + trending.ID.String()

	s.do(t, http.MethodPost, path+"/movies", LinkMoviesRequest{MovieIDs: []string{alien.ID.String()}})
	s.do(t, http.MethodDelete, path, nil)
	_, err := s.repos.MovieCategories.DeleteByCategory(context.Background(), trending.ID)
	require.NoError(t, err)

	rec, _ := s.do(t, http.MethodPost, path+"/restore", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := s.do(t, http.MethodGet, path+"/movies", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]MovieCategoryResponse](t, env), 1)
}
