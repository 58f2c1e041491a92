package browse

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newLoadedModel(t *testing.T) (*Model, *FavoritesStore) {
	t.Helper()

	store, err := NewFavoritesStore(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	m := NewModel(context.Background(), NewLoader(&fakeSource{}, CategoryIDs{}), store)
	m.Update(catalogLoadedMsg{actions: []Action{
		{Type: SetAllMovies, Movies: []Movie{movie("1", "Alien"), movie("2", "Aliens"), movie("3", "Heat")}},
		{Type: SetTrendingMovies, Movies: []Movie{movie("3", "Heat")}},
	}})
	return m, store
}

// run выполняет команду синхронно и передаёт результат в модель.
func run(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func TestModel_CatalogLoaded(t *testing.T) {
	m, _ := newLoadedModel(t)

	assert.Len(t, m.State().AllMovies, 3)
	assert.Equal(t, "3 movies loaded", m.status)
	assert.False(t, m.loading)
}

func TestModel_CatalogErrorKeepsState(t *testing.T) {
	m, _ := newLoadedModel(t)

	m.Update(catalogLoadedMsg{err: errors.New("boom")})

	assert.Error(t, m.err)
	assert.Len(t, m.State().AllMovies, 3)
	assert.Contains(t, m.View(), "Error: boom")
}

func TestModel_TabsWrap(t *testing.T) {
	m, _ := newLoadedModel(t)

	m.Update(keyMsg("shift+tab"))
	assert.Equal(t, TabUpcoming, m.tab)

	m.Update(keyMsg("tab"))
	m.Update(keyMsg("tab"))
	m.Update(keyMsg("tab"))
	assert.Equal(t, TabTrending, m.tab)

	got, ok := m.selectedMovie()
	require.True(t, ok)
	assert.Equal(t, "Heat", got.Title)
}

func TestModel_Search(t *testing.T) {
	m, _ := newLoadedModel(t)

	m.Update(keyMsg("/"))
	require.True(t, m.searching)

	for _, r := range "alien" {
		m.Update(keyMsg(string(r)))
	}
	m.Update(keyMsg("enter"))

	assert.False(t, m.searching)
	assert.Len(t, m.visibleMovies(), 2)

	m.Update(keyMsg("esc"))
	assert.Len(t, m.visibleMovies(), 3)
}

func TestModel_QuitIgnoredWhileSearching(t *testing.T) {
	m, _ := newLoadedModel(t)

	m.Update(keyMsg("/"))
	m.Update(keyMsg("q"))

	assert.True(t, m.searching)
	assert.Equal(t, "q", m.search.Value())
}

func TestModel_FavoritesPersisted(t *testing.T) {
	m, store := newLoadedModel(t)

	m.Update(keyMsg("down"))
	_, cmd := m.Update(keyMsg("f"))
	run(m, cmd)

	require.Len(t, m.State().Favorites, 1)
	assert.Equal(t, "2", m.State().Favorites[0].ID)

	// Повторное добавление ничего не меняет.
	_, cmd = m.Update(keyMsg("f"))
	assert.Nil(t, cmd)

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Favorite{{ID: "2", Title: "Aliens", PosterPath: "/2.jpg"}}, p.Favorites)

	m.Update(keyMsg("v"))
	assert.True(t, m.showFavorites)
	assert.Contains(t, m.View(), "Aliens")

	_, cmd = m.Update(keyMsg("x"))
	run(m, cmd)
	assert.Empty(t, m.State().Favorites)

	p, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, p.Favorites)
}

func TestModel_FavoritesSavedOutOfOrder(t *testing.T) {
	m, store := newLoadedModel(t)

	_, addAlien := m.Update(keyMsg("f"))
	m.Update(keyMsg("down"))
	_, addAliens := m.Update(keyMsg("f"))
	require.Len(t, m.State().Favorites, 2)

	// команды bubbletea выполняются без гарантии порядка
	run(m, addAliens)
	run(m, addAlien)

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, m.State().Favorites, p.Favorites)
	assert.NoError(t, m.err)
}

func TestModel_ProfileLoaded(t *testing.T) {
	m, store := newLoadedModel(t)
	require.NoError(t, store.Save(Profile{
		DisplayName: "Sam",
		Favorites:   []Favorite{{ID: "1", Title: "Alien"}},
	}))

	run(m, m.loadProfile())

	assert.Equal(t, "Sam", m.displayName)
	assert.Len(t, m.State().Favorites, 1)
	assert.Contains(t, m.View(), "Sam")
}

func TestModel_Reload(t *testing.T) {
	src := &fakeSource{movies: []Movie{movie("9", "Ran")}}
	m := NewModel(context.Background(), NewLoader(src, CategoryIDs{}), nil)

	_, cmd := m.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	run(m, cmd)
	assert.False(t, m.loading)
	assert.Equal(t, []Movie{movie("9", "Ran")}, m.State().AllMovies)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newLoadedModel(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
