package browse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReduce_SetLists(t *testing.T) {
	all := []Movie{movie("1", "Alien"), movie("2", "Heat")}
	one := []Movie{movie("1", "Alien")}

	tests := []struct {
		name   string
		action Action
		want   State
	}{
		{"all", Action{Type: SetAllMovies, Movies: all}, State{AllMovies: all}},
		{"discover", Action{Type: SetDiscoverMovies, Movies: one}, State{Discover: one}},
		{"trending", Action{Type: SetTrendingMovies, Movies: one}, State{Trending: one}},
		{"top rated", Action{Type: SetTopRatedMovies, Movies: one}, State{TopRated: one}},
		{"upcoming", Action{Type: SetUpcomingMovies, Movies: one}, State{Upcoming: one}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(State{}, tt.action)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReduce_SetReplacesList(t *testing.T) {
	s := State{Trending: []Movie{movie("1", "Alien")}}
	s = Reduce(s, Action{Type: SetTrendingMovies, Movies: []Movie{movie("2", "Heat")}})

	if len(s.Trending) != 1 || s.Trending[0].ID != "2" {
		t.Errorf("Trending = %v, want only movie 2", s.Trending)
	}
}

func TestReduce_AddToFavorites(t *testing.T) {
	fav := Favorite{ID: "1", Title: "Alien", PosterPath: "/1.jpg"}

	s := Reduce(State{}, Action{Type: AddToFavorites, Favorite: fav})
	s = Reduce(s, Action{Type: AddToFavorites, Favorite: fav})

	if diff := cmp.Diff([]Favorite{fav}, s.Favorites); diff != "" {
		t.Errorf("Favorites mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	base := State{Favorites: make([]Favorite, 1, 4)}
	base.Favorites[0] = Favorite{ID: "1"}

	added := Reduce(base, Action{Type: AddToFavorites, Favorite: Favorite{ID: "2"}})
	removed := Reduce(added, Action{Type: RemoveFavorite, ID: "1"})

	if len(base.Favorites) != 1 || base.Favorites[0].ID != "1" {
		t.Errorf("base state mutated: %v", base.Favorites)
	}
	if len(added.Favorites) != 2 || added.Favorites[0].ID != "1" {
		t.Errorf("added state mutated: %v", added.Favorites)
	}
	if diff := cmp.Diff([]Favorite{{ID: "2"}}, removed.Favorites); diff != "" {
		t.Errorf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_LoadFavorites(t *testing.T) {
	s := State{Favorites: []Favorite{{ID: "old"}}}
	loaded := []Favorite{{ID: "1"}, {ID: "2"}}

	s = Reduce(s, Action{Type: LoadFavorites, Favorites: loaded})

	if diff := cmp.Diff(loaded, s.Favorites); diff != "" {
		t.Errorf("Favorites mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_RemoveMissingFavorite(t *testing.T) {
	s := State{Favorites: []Favorite{{ID: "1"}}}
	s = Reduce(s, Action{Type: RemoveFavorite, ID: "nope"})

	if len(s.Favorites) != 1 {
		t.Errorf("Favorites = %v, want unchanged", s.Favorites)
	}
}

func TestReduce_UnknownAction(t *testing.T) {
	s := State{AllMovies: []Movie{movie("1", "Alien")}, Favorites: []Favorite{{ID: "1"}}}
	got := Reduce(s, Action{Type: "SET_SOMETHING_ELSE", Movies: []Movie{movie("2", "Heat")}})

	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestFilterMovies(t *testing.T) {
	movies := []Movie{movie("1", "Alien"), movie("2", "Aliens"), movie("3", "Heat")}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2", "3"}},
		{"alien", []string{"1", "2"}},
		{"  ALIENS ", []string{"2"}},
		{"eat", []string{"3"}},
		{"matrix", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, m := range FilterMovies(movies, tt.query) {
				got = append(got, m.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterMovies(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}
