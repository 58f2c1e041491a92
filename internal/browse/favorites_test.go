package browse

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewFavoritesStore(filepath.Join(t.TempDir(), "nested", "favorites.json"))
	require.NoError(t, err)

	p, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, p.DisplayName)
	assert.NotNil(t, p.Favorites)
	assert.Empty(t, p.Favorites)
}

func TestFavoritesStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glimpse", "favorites.json")
	store, err := NewFavoritesStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetDisplayName("Sam"))
	favs := []Favorite{{ID: "1", Title: "Alien", PosterPath: "/1.jpg"}}
	require.NoError(t, store.SaveFavorites(favs))

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "Sam", p.DisplayName)
	assert.Equal(t, favs, p.Favorites)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"posterPath": "/1.jpg"`)
	assert.Contains(t, string(data), `"displayName": "Sam"`)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFavoritesStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFavoritesStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	assert.Error(t, err)
}

func TestFavoritesStore_StaleSnapshotIsDropped(t *testing.T) {
	store, err := NewFavoritesStore(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	alien := Favorite{ID: "1", Title: "Alien"}
	heat := Favorite{ID: "3", Title: "Heat"}
	older := store.Snapshot([]Favorite{alien})
	newer := store.Snapshot([]Favorite{alien, heat})

	require.NoError(t, store.SaveSnapshot(newer))
	require.NoError(t, store.SaveSnapshot(older))

	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, []Favorite{alien, heat}, p.Favorites)
}

func TestFavoritesStore_ConcurrentSavesKeepLatest(t *testing.T) {
	store, err := NewFavoritesStore(filepath.Join(t.TempDir(), "favorites.json"))
	require.NoError(t, err)

	var snaps []FavoritesSnapshot
	var favs []Favorite
	for i := range 20 {
		favs = append(favs, Favorite{ID: strconv.Itoa(i)})
		snaps = append(snaps, store.Snapshot(favs))
	}

	var wg sync.WaitGroup
	for _, snap := range snaps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, store.SaveSnapshot(snap))
		}()
	}
	wg.Wait()

	p, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, p.Favorites, 20)
}
