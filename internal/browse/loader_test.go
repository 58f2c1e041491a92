package browse

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/apiclient"
)

type fakeSource struct {
	mu sync.Mutex

	movies     []Movie
	categories []apiclient.Category
	links      map[string][]apiclient.MovieCategory

	failCategory string
	failMovies   bool

	categoryCalls int
	linkCalls     []string
}

func (s *fakeSource) ListMovies(context.Context) ([]apiclient.Movie, error) {
	if s.failMovies {
		return nil, errors.New("movies unavailable")
	}
	return s.movies, nil
}

func (s *fakeSource) ListCategories(context.Context, string) ([]apiclient.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryCalls++
	return s.categories, nil
}

func (s *fakeSource) ListCategoryMovies(_ context.Context, id string) ([]apiclient.MovieCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.linkCalls = append(s.linkCalls, id)

	if id == s.failCategory {
		return nil, errors.New("category unavailable")
	}
	return s.links[id], nil
}

func linksFor(categoryID string, movies ...Movie) []apiclient.MovieCategory {
	out := make([]apiclient.MovieCategory, len(movies))
	for i, m := range movies {
		out[i] = apiclient.MovieCategory{
			ID:       "link-" + m.ID,
			Movie:    m,
			Category: apiclient.Category{ID: categoryID},
		}
	}
	return out
}

func actionTypes(actions []Action) []ActionType {
	out := make([]ActionType, len(actions))
	for i, a := range actions {
		out[i] = a.Type
	}
	return out
}

func TestLoader_ResolvesCategoriesByName(t *testing.T) {
	alien, heat := movie("1", "Alien"), movie("2", "Heat")
	src := &fakeSource{
		movies: []Movie{alien, heat},
		categories: []apiclient.Category{
			{ID: "c-disc", Name: "Discover"},
			{ID: "c-trend", Name: "trending"},
			{ID: "c-top", Name: "Top Rated"},
		},
		links: map[string][]apiclient.MovieCategory{
			"c-disc":  linksFor("c-disc", alien),
			"c-trend": linksFor("c-trend", heat, alien),
		},
	}

	actions, err := NewLoader(src, CategoryIDs{}).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ActionType{
		SetAllMovies, SetDiscoverMovies, SetTrendingMovies, SetTopRatedMovies, SetUpcomingMovies,
	}, actionTypes(actions))

	var s State
	for _, a := range actions {
		s = Reduce(s, a)
	}
	assert.Len(t, s.AllMovies, 2)
	assert.Equal(t, []Movie{alien}, s.Discover)
	assert.Equal(t, []Movie{heat, alien}, s.Trending)
	assert.Empty(t, s.TopRated)
	assert.NotNil(t, s.Upcoming, "missing category yields an empty list, not nil")
	assert.Empty(t, s.Upcoming)

	assert.ElementsMatch(t, []string{"c-disc", "c-trend", "c-top"}, src.linkCalls)
}

func TestLoader_ConfiguredIDsSkipLookup(t *testing.T) {
	src := &fakeSource{links: map[string][]apiclient.MovieCategory{}}
	ids := CategoryIDs{Discover: "d", Trending: "t", TopRated: "r", Upcoming: "u"}

	_, err := NewLoader(src, ids).Load(context.Background())
	require.NoError(t, err)

	assert.Zero(t, src.categoryCalls)
	assert.ElementsMatch(t, []string{"d", "t", "r", "u"}, src.linkCalls)
}

func TestLoader_ErrorReturnsNoActions(t *testing.T) {
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{"movies fail", &fakeSource{failMovies: true}},
		{"category fails", &fakeSource{failCategory: "t"}},
	}

	ids := CategoryIDs{Discover: "d", Trending: "t", TopRated: "r", Upcoming: "u"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, err := NewLoader(tt.src, ids).Load(context.Background())
			assert.Error(t, err)
			assert.Nil(t, actions)
		})
	}
}

func TestTab_String(t *testing.T) {
	var names []string
	for _, tab := range Tabs {
		names = append(names, tab.String())
	}
	assert.Equal(t, []string{"All", "Discover", "Trending", "Top Rated", "Upcoming"}, names)
}
