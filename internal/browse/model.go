package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type catalogLoadedMsg struct {
	actions []Action
	err     error
}

type profileLoadedMsg struct {
	profile Profile
	err     error
}

type favoritesSavedMsg struct {
	err error
}

// Model — bubbletea-модель браузера каталога.
type Model struct {
	ctx    context.Context
	loader *Loader
	store  *FavoritesStore

	state       State
	displayName string

	tab           Tab
	cursor        int
	showFavorites bool
	searching     bool
	search        textinput.Model

	loading bool
	err     error
	status  string

	width  int
	height int
	help   help.Model
	keys   keyMap
}

// NewModel создаёт модель. store может быть nil: избранное тогда не сохраняется.
func NewModel(ctx context.Context, loader *Loader, store *FavoritesStore) *Model {
	search := textinput.New()
	search.Placeholder = "search titles"
	search.Prompt = "/ "
	search.CharLimit = 100

	return &Model{
		ctx:    ctx,
		loader: loader,
		store:  store,
		search: search,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// State возвращает текущее состояние.
func (m *Model) State() State {
	return m.state
}

// Init загружает профиль и каталог.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadProfile(), m.loadCatalog())
}

func (m *Model) dispatch(actions ...Action) {
	for _, a := range actions {
		m.state = Reduce(m.state, a)
	}
	m.clampCursor()
}

// Update обрабатывает сообщения bubbletea.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.dispatch(msg.actions...)
		m.status = fmt.Sprintf("%d movies loaded", len(m.state.AllMovies))
		return m, nil

	case profileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.displayName = msg.profile.DisplayName
		m.dispatch(Action{Type: LoadFavorites, Favorites: msg.profile.Favorites})
		return m, nil

	case favoritesSavedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.down):
		if m.cursor < m.visibleLen()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.nextTab):
		m.switchTab(1)

	case key.Matches(msg, m.keys.prevTab):
		m.switchTab(-1)

	case key.Matches(msg, m.keys.search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.cancel):
		m.search.SetValue("")
		m.cursor = 0

	case key.Matches(msg, m.keys.favorites):
		m.showFavorites = !m.showFavorites
		m.cursor = 0

	case key.Matches(msg, m.keys.reload):
		m.loading = true
		m.status = ""
		return m, m.loadCatalog()

	case key.Matches(msg, m.keys.addFav):
		if m.showFavorites {
			return m, nil
		}
		movie, ok := m.selectedMovie()
		if !ok || HasFavorite(m.state.Favorites, movie.ID) {
			return m, nil
		}
		m.dispatch(Action{Type: AddToFavorites, Favorite: FavoriteFromMovie(movie)})
		m.status = fmt.Sprintf("added %q to favorites", movie.Title)
		return m, m.saveFavorites()

	case key.Matches(msg, m.keys.removeFav):
		id, title, ok := m.selectedID()
		if !ok || !HasFavorite(m.state.Favorites, id) {
			return m, nil
		}
		m.dispatch(Action{Type: RemoveFavorite, ID: id})
		m.status = fmt.Sprintf("removed %q from favorites", title)
		return m, m.saveFavorites()
	}

	return m, nil
}

func (m *Model) switchTab(delta int) {
	n := len(Tabs)
	m.tab = Tab((int(m.tab) + delta + n) % n)
	m.showFavorites = false
	m.cursor = 0
}

func (m *Model) visibleMovies() []Movie {
	return FilterMovies(m.tab.Movies(m.state), m.search.Value())
}

func (m *Model) visibleFavorites() []Favorite {
	return FilterFavorites(m.state.Favorites, m.search.Value())
}

func (m *Model) visibleLen() int {
	if m.showFavorites {
		return len(m.visibleFavorites())
	}
	return len(m.visibleMovies())
}

func (m *Model) clampCursor() {
	if n := m.visibleLen(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *Model) selectedMovie() (Movie, bool) {
	movies := m.visibleMovies()
	if m.cursor < 0 || m.cursor >= len(movies) {
		return Movie{}, false
	}
	return movies[m.cursor], true
}

// selectedID возвращает ID и название под курсором в текущем режиме.
func (m *Model) selectedID() (string, string, bool) {
	if m.showFavorites {
		favorites := m.visibleFavorites()
		if m.cursor < 0 || m.cursor >= len(favorites) {
			return "", "", false
		}
		return favorites[m.cursor].ID, favorites[m.cursor].Title, true
	}

	movie, ok := m.selectedMovie()
	return movie.ID, movie.Title, ok
}

// --- Commands ---

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		actions, err := m.loader.Load(m.ctx)
		return catalogLoadedMsg{actions: actions, err: err}
	}
}

func (m *Model) loadProfile() tea.Cmd {
	if m.store == nil {
		return nil
	}
	return func() tea.Msg {
		p, err := m.store.Load()
		return profileLoadedMsg{profile: p, err: err}
	}
}

func (m *Model) saveFavorites() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	snap := store.Snapshot(m.state.Favorites)
	return func() tea.Msg {
		return favoritesSavedMsg{err: store.SaveSnapshot(snap)}
	}
}

// --- View ---

// View рисует вкладки, поиск, список и подсказки.
func (m *Model) View() string {
	var b strings.Builder

	title := "Glimpse"
	if m.displayName != "" {
		title = fmt.Sprintf("Glimpse · %s", m.displayName)
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(styles.err.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	case m.loading:
		b.WriteString(styles.status.Render("Loading…"))
		b.WriteString("\n\n")
	}

	if m.showFavorites {
		b.WriteString(m.renderFavorites())
	} else {
		b.WriteString(m.renderMovies())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))

	return b.String()
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, len(Tabs)+1)
	for _, t := range Tabs {
		if t == m.tab && !m.showFavorites {
			tabs = append(tabs, styles.activeTab.Render(t.String()))
		} else {
			tabs = append(tabs, styles.tab.Render(t.String()))
		}
	}

	favLabel := fmt.Sprintf("♥ %d", len(m.state.Favorites))
	if m.showFavorites {
		tabs = append(tabs, styles.activeTab.Render(favLabel))
	} else {
		tabs = append(tabs, styles.tab.Render(favLabel))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// pageSize — сколько карточек помещается на экране.
func (m *Model) pageSize() int {
	if m.height <= 0 {
		return 10
	}
	return max((m.height-10)/3, 1)
}

// window возвращает границы видимой части списка длины n.
func (m *Model) window(n int) (int, int) {
	size := m.pageSize()
	start := 0
	if m.cursor >= size {
		start = m.cursor - size + 1
	}
	return start, min(start+size, n)
}

func (m *Model) renderMovies() string {
	movies := m.visibleMovies()
	if len(movies) == 0 {
		if m.loading {
			return ""
		}
		return styles.meta.Render("No movies") + "\n"
	}

	var b strings.Builder
	start, end := m.window(len(movies))
	for i := start; i < end; i++ {
		b.WriteString(m.renderCard(movies[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderCard(movie Movie, selected bool) string {
	heading := movie.Title
	if HasFavorite(m.state.Favorites, movie.ID) {
		heading = styles.fav.Render("♥ ") + heading
	}
	heading += "  " + styles.rating.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage))
	if movie.OriginalLanguage != "" {
		heading += "  " + styles.meta.Render(strings.ToUpper(movie.OriginalLanguage))
	}

	var meta []string
	if len(movie.Genres) > 0 {
		meta = append(meta, strings.Join(movie.Genres, ", "))
	}
	if len(movie.Categories) > 0 {
		meta = append(meta, strings.Join(movie.Categories, ", "))
	}
	if movie.PosterPath != "" {
		meta = append(meta, movie.PosterPath)
	}

	card := heading
	if len(meta) > 0 {
		card += "\n" + styles.meta.Render(strings.Join(meta, " · "))
	}

	if selected {
		return styles.selected.Render(card)
	}
	return styles.card.Render(card)
}

func (m *Model) renderFavorites() string {
	favorites := m.visibleFavorites()
	if len(favorites) == 0 {
		return styles.meta.Render("No favorites yet. Press f on a movie to add it.") + "\n"
	}

	var b strings.Builder
	start, end := m.window(len(favorites))
	for i := start; i < end; i++ {
		f := favorites[i]
		line := styles.fav.Render("♥ ") + f.Title
		if f.PosterPath != "" {
			line += "\n" + styles.meta.Render(f.PosterPath)
		}
		if i == m.cursor {
			b.WriteString(styles.selected.Render(line))
		} else {
			b.WriteString(styles.card.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
