package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	nextTab   key.Binding
	prevTab   key.Binding
	search    key.Binding
	addFav    key.Binding
	removeFav key.Binding
	favorites key.Binding
	reload    key.Binding
	quit      key.Binding
	confirm   key.Binding
	cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		nextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		prevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		addFav:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		removeFav: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unfavorite")),
		favorites: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "favorites")),
		reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.nextTab, k.search, k.addFav, k.favorites, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.nextTab, k.prevTab},
		{k.search, k.addFav, k.removeFav, k.favorites},
		{k.reload, k.quit},
	}
}
