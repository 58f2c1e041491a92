package browse

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shaiso/glimpse/internal/apiclient"
)

// Source — данные каталога, нужные браузеру. Реализуется *apiclient.Client.
type Source interface {
	ListMovies(ctx context.Context) ([]apiclient.Movie, error)
	ListCategories(ctx context.Context, typ string) ([]apiclient.Category, error)
	ListCategoryMovies(ctx context.Context, categoryID string) ([]apiclient.MovieCategory, error)
}

// Tab — вкладка браузера.
type Tab int

const (
	TabAll Tab = iota
	TabDiscover
	TabTrending
	TabTopRated
	TabUpcoming
)

// Tabs — вкладки в порядке отображения.
var Tabs = []Tab{TabAll, TabDiscover, TabTrending, TabTopRated, TabUpcoming}

func (t Tab) String() string {
	switch t {
	case TabAll:
		return "All"
	case TabDiscover:
		return "Discover"
	case TabTrending:
		return "Trending"
	case TabTopRated:
		return "Top Rated"
	case TabUpcoming:
		return "Upcoming"
	default:
		return "Unknown"
	}
}

// action — тип действия, которым загружается вкладка.
func (t Tab) action() ActionType {
	switch t {
	case TabDiscover:
		return SetDiscoverMovies
	case TabTrending:
		return SetTrendingMovies
	case TabTopRated:
		return SetTopRatedMovies
	case TabUpcoming:
		return SetUpcomingMovies
	default:
		return SetAllMovies
	}
}

// Movies возвращает список вкладки из state.
func (t Tab) Movies(s State) []Movie {
	switch t {
	case TabDiscover:
		return s.Discover
	case TabTrending:
		return s.Trending
	case TabTopRated:
		return s.TopRated
	case TabUpcoming:
		return s.Upcoming
	default:
		return s.AllMovies
	}
}

// CategoryIDs — ID категорий для вкладок. Пустой ID ищется по имени вкладки.
type CategoryIDs struct {
	Discover string
	Trending string
	TopRated string
	Upcoming string
}

func (c CategoryIDs) forTab(t Tab) string {
	switch t {
	case TabDiscover:
		return c.Discover
	case TabTrending:
		return c.Trending
	case TabTopRated:
		return c.TopRated
	case TabUpcoming:
		return c.Upcoming
	default:
		return ""
	}
}

// Loader загружает пять списков каталога параллельно.
type Loader struct {
	source Source
	ids    CategoryIDs
}

// NewLoader создаёт Loader.
func NewLoader(source Source, ids CategoryIDs) *Loader {
	return &Loader{source: source, ids: ids}
}

// Load возвращает действия SET_*_MOVIES для всех вкладок в порядке Tabs.
// При любой ошибке возвращается только ошибка: частичный результат
// не применяется.
// Категория, которую не удалось найти по имени, даёт пустой список.
func (l *Loader) Load(ctx context.Context) ([]Action, error) {
	ids, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}

	results := make([][]Movie, len(Tabs))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := l.source.ListMovies(ctx)
		if err != nil {
			return fmt.Errorf("fetch all movies: %w", err)
		}
		results[TabAll] = movies
		return nil
	})

	for _, tab := range Tabs[1:] {
		id := ids.forTab(tab)
		if id == "" {
			continue
		}
		g.Go(func() error {
			links, err := l.source.ListCategoryMovies(ctx, id)
			if err != nil {
				return fmt.Errorf("fetch %s movies: %w", strings.ToLower(tab.String()), err)
			}
			movies := make([]Movie, len(links))
			for i, link := range links {
				movies[i] = link.Movie
			}
			results[tab] = movies
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	actions := make([]Action, len(Tabs))
	for i, tab := range Tabs {
		movies := results[tab]
		if movies == nil {
			movies = []Movie{}
		}
		actions[i] = Action{Type: tab.action(), Movies: movies}
	}
	return actions, nil
}

// resolve дополняет пустые ID категорий поиском по имени вкладки.
func (l *Loader) resolve(ctx context.Context) (CategoryIDs, error) {
	ids := l.ids
	if ids.Discover != "" && ids.Trending != "" && ids.TopRated != "" && ids.Upcoming != "" {
		return ids, nil
	}

	categories, err := l.source.ListCategories(ctx, "")
	if err != nil {
		return ids, fmt.Errorf("fetch categories: %w", err)
	}

	byName := func(t Tab) string {
		for _, c := range categories {
			if strings.EqualFold(strings.TrimSpace(c.Name), t.String()) {
				return c.ID
			}
		}
		return ""
	}

	if ids.Discover == "" {
		ids.Discover = byName(TabDiscover)
	}
	if ids.Trending == "" {
		ids.Trending = byName(TabTrending)
	}
	if ids.TopRated == "" {
		ids.TopRated = byName(TabTopRated)
	}
	if ids.Upcoming == "" {
		ids.Upcoming = byName(TabUpcoming)
	}
	return ids, nil
}
