package tui

import (
	"shifremenlanding/internal/landing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	bg, fg, muted, accent lipgloss.Color
}

var palettes = map[landing.Theme]palette{
	landing.ThemeLight: {bg: "#f2f2f2", fg: "#1f2937", muted: "#6b7280", accent: "#0f9d8a"},
	landing.ThemeDark:  {bg: "#1d232a", fg: "#a6adbb", muted: "#7b8290", accent: "#37cdbe"},
}

type styles struct {
	app      lipgloss.Style
	title    lipgloss.Style
	subtitle lipgloss.Style
	badge    lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
	errorBox lipgloss.Style
	footer   lipgloss.Style
}

func newStyles(theme landing.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[landing.ThemeLight]
	}

	base := lipgloss.NewStyle().Foreground(p.fg).Background(p.bg)
	return styles{
		app:      base.Padding(1, 2),
		title:    base.Bold(true),
		subtitle: base.Foreground(p.muted),
		badge: base.
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			BorderBackground(p.bg),
		muted: base.Faint(true),
		status: base.
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			BorderBackground(p.bg),
		errorBox: base.
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderBackground(p.bg).
			Bold(true),
		footer: base.MarginTop(1).MarginBackground(p.bg),
	}
}

func newDelegate(theme landing.Theme) list.DefaultDelegate {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[landing.ThemeLight]
	}

	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = d.Styles.NormalTitle.Foreground(p.fg)
	d.Styles.NormalDesc = d.Styles.NormalDesc.Foreground(p.muted)
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(p.accent).BorderForeground(p.accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(p.accent).BorderForeground(p.accent)
	return d
}
