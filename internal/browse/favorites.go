package browse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
)

// Profile — локальные данные пользователя: имя и избранное.
type Profile struct {
	DisplayName string     `json:"displayName,omitempty"`
	Favorites   []Favorite `json:"favorites"`
}

// FavoritesStore хранит Profile в JSON-файле.
//
// Записи сериализуются. Снимки избранного нумеруются в порядке изменений,
// и снимок старше уже записанного отбрасывается.
type FavoritesStore struct {
	path string

	gen atomic.Uint64

	mu    sync.Mutex
	saved uint64
}

// FavoritesSnapshot — избранное на момент изменения.
type FavoritesSnapshot struct {
	gen       uint64
	favorites []Favorite
}

// DefaultFavoritesPath возвращает путь в каталоге конфигурации пользователя.
func DefaultFavoritesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "glimpse", "favorites.json"), nil
}

// NewFavoritesStore создаёт хранилище. Пустой path — DefaultFavoritesPath.
func NewFavoritesStore(path string) (*FavoritesStore, error) {
	if path == "" {
		p, err := DefaultFavoritesPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FavoritesStore{path: path}, nil
}

// Path возвращает путь к файлу.
func (s *FavoritesStore) Path() string {
	return s.path
}

// Load читает профиль. Отсутствующий файл — пустой профиль.
func (s *FavoritesStore) Load() (Profile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Profile{Favorites: []Favorite{}}, nil
	}
	if err != nil {
		return Profile{}, fmt.Errorf("read favorites: %w", err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse favorites %s: %w", s.path, err)
	}
	if p.Favorites == nil {
		p.Favorites = []Favorite{}
	}
	return p, nil
}

// Save записывает профиль через временный файл и rename.
func (s *FavoritesStore) Save(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(p)
}

func (s *FavoritesStore) save(p Profile) error {
	if p.Favorites == nil {
		p.Favorites = []Favorite{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create favorites dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close favorites: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace favorites: %w", err)
	}
	return nil
}

// Snapshot фиксирует избранное и его место в очереди записей.
// Вызывается синхронно, в момент изменения.
func (s *FavoritesStore) Snapshot(favorites []Favorite) FavoritesSnapshot {
	return FavoritesSnapshot{gen: s.gen.Add(1), favorites: slices.Clone(favorites)}
}

// SaveSnapshot заменяет избранное, сохраняя имя пользователя.
// Если уже записан более новый снимок, ничего не делает.
func (s *FavoritesStore) SaveSnapshot(snap FavoritesSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap.gen <= s.saved {
		return nil
	}
	p, err := s.Load()
	if err != nil {
		return err
	}
	p.Favorites = snap.favorites
	if err := s.save(p); err != nil {
		return err
	}
	s.saved = snap.gen
	return nil
}

// SaveFavorites заменяет избранное, сохраняя имя пользователя.
func (s *FavoritesStore) SaveFavorites(favorites []Favorite) error {
	return s.SaveSnapshot(s.Snapshot(favorites))
}

// SetDisplayName сохраняет имя пользователя.
func (s *FavoritesStore) SetDisplayName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.Load()
	if err != nil {
		return err
	}
	p.DisplayName = name
	return s.save(p)
}
