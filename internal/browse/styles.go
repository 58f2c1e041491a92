package browse

import "github.com/charmbracelet/lipgloss"

var styles = newPalette("#7D56F4", "#04B575", "#FF5F87", "#FFA500", "#626262")

type palette struct {
	title     lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	selected  lipgloss.Style
	rating    lipgloss.Style
	meta      lipgloss.Style
	fav       lipgloss.Style
	err       lipgloss.Style
	status    lipgloss.Style
}

func newPalette(accent, ok, fav, warn, muted string) palette {
	return palette{
		title:     newBold(accent).MarginBottom(1),
		tab:       newStyle(muted).Padding(0, 1),
		activeTab: newBold("#FFFFFF").Background(lipgloss.Color(accent)).Padding(0, 1),
		card:      lipgloss.NewStyle().PaddingLeft(2),
		selected: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(accent)).
			PaddingLeft(1),
		rating: newBold(ok),
		meta:   newStyle(muted).Italic(true),
		fav:    newBold(fav),
		err:    newBold(warn),
		status: newStyle(muted),
	}
}

func newStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func newBold(fg string) lipgloss.Style {
	return newStyle(fg).Bold(true)
}
