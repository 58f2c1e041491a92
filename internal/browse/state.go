package browse

import (
	"slices"

	"github.com/shaiso/glimpse/internal/apiclient"
)

// Movie — фильм, как его отдаёт API.
type Movie = apiclient.Movie

// Favorite — запись избранного.
type Favorite struct {
	ID         string `json:"id"`
	PosterPath string `json:"posterPath"`
	Title      string `json:"title"`
}

// FavoriteFromMovie строит запись избранного из фильма.
func FavoriteFromMovie(m Movie) Favorite {
	return Favorite{ID: m.ID, PosterPath: m.PosterPath, Title: m.Title}
}

// State — состояние браузера каталога.
type State struct {
	AllMovies []Movie
	Discover  []Movie
	Trending  []Movie
	TopRated  []Movie
	Upcoming  []Movie
	Favorites []Favorite
}

// ActionType — тип действия.
type ActionType string

const (
	SetAllMovies      ActionType = "SET_ALL_MOVIES"
	SetDiscoverMovies ActionType = "SET_DISCOVER_MOVIES"
	SetTrendingMovies ActionType = "SET_TRENDING_MOVIES"
	SetTopRatedMovies ActionType = "SET_TOP_RATED_MOVIES"
	SetUpcomingMovies ActionType = "SET_UPCOMING_MOVIES"
	AddToFavorites    ActionType = "ADD_TO_FAVORITES"
	LoadFavorites     ActionType = "LOAD_FAVORITES"
	RemoveFavorite    ActionType = "REMOVE_FAVORITE"
)

// Action — действие над State.
// Какие поля значимы, зависит от Type:
//   - SET_*_MOVIES: Movies
//   - ADD_TO_FAVORITES: Favorite
//   - LOAD_FAVORITES: Favorites
//   - REMOVE_FAVORITE: ID
type Action struct {
	Type      ActionType
	Movies    []Movie
	Favorite  Favorite
	Favorites []Favorite
	ID        string
}

// Reduce возвращает новое состояние. Не выполняет ввод-вывод
// и не изменяет срезы исходного state.
// Неизвестный тип действия возвращает state без изменений.
func Reduce(state State, action Action) State {
	switch action.Type {
	case SetAllMovies:
		state.AllMovies = action.Movies
	case SetDiscoverMovies:
		state.Discover = action.Movies
	case SetTrendingMovies:
		state.Trending = action.Movies
	case SetTopRatedMovies:
		state.TopRated = action.Movies
	case SetUpcomingMovies:
		state.Upcoming = action.Movies
	case AddToFavorites:
		if HasFavorite(state.Favorites, action.Favorite.ID) {
			return state
		}
		favorites := make([]Favorite, 0, len(state.Favorites)+1)
		favorites = append(favorites, state.Favorites...)
		state.Favorites = append(favorites, action.Favorite)
	case LoadFavorites:
		state.Favorites = slices.Clone(action.Favorites)
	case RemoveFavorite:
		state.Favorites = slices.DeleteFunc(slices.Clone(state.Favorites), func(f Favorite) bool {
			return f.ID == action.ID
		})
	}
	return state
}

// HasFavorite проверяет, есть ли id в избранном.
func HasFavorite(favorites []Favorite, id string) bool {
	return slices.ContainsFunc(favorites, func(f Favorite) bool { return f.ID == id })
}
