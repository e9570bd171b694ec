package tui

import (
	"time"

	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/releases"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the terminal UI.
type Options struct {
	Source releases.Source
	Owner  string
	Repo   string
	Theme  landing.Theme
	// OutDir receives downloaded assets; ./downloads when empty.
	OutDir string
	// Timeout bounds the release fetch.
	Timeout time.Duration
}

func Run(opts Options) error {
	m := newModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
