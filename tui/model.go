package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"shifremenlanding/internal/assets"
	"shifremenlanding/internal/landing"
	"shifremenlanding/internal/releases"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
)

const helpText = "enter: download   t: theme   ctrl+r: refresh   esc: clear   q: quit"

type entryItem struct {
	entry assets.Entry
}

func (e entryItem) Title() string { return e.entry.Category.Label() }
func (e entryItem) Description() string {
	return fmt.Sprintf("%d MB  •  %s", e.entry.SizeMB, e.entry.Name)
}
func (e entryItem) FilterValue() string { return e.entry.Name }

type model struct {
	page *landing.Page
	src  releases.Source

	owner   string
	repo    string
	outDir  string
	timeout time.Duration

	assets list.Model
	spin   spinner.Model
	styles styles

	fetchSeq       int
	fetchCancel    context.CancelFunc
	downloadSeq    int
	downloading    bool
	downloadCancel context.CancelFunc

	status string
	err    error

	width  int
	height int
}

func newModel(opts Options) model {
	theme := opts.Theme
	if theme == "" {
		theme = landing.ThemeLight
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(".", "downloads")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	l := list.New(nil, newDelegate(theme), 40, 12)
	l.Title = "Downloads"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return model{
		page:    landing.New(theme),
		src:     opts.Source,
		owner:   opts.Owner,
		repo:    opts.Repo,
		outDir:  outDir,
		timeout: timeout,
		assets:  l,
		spin:    sp,
		styles:  newStyles(theme),
	}
}

func (m *model) setEntries(entries []assets.Entry) {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{entry: e})
	}
	m.assets.SetItems(items)
	if len(items) > 0 {
		m.assets.Select(0)
	}
}

func (m *model) selectedEntry() (assets.Entry, bool) {
	it, ok := m.assets.SelectedItem().(entryItem)
	if !ok {
		return assets.Entry{}, false
	}
	return it.entry, true
}

func (m *model) toggleTheme() {
	m.page.ToggleTheme()
	m.styles = newStyles(m.page.Theme)
	m.assets.SetDelegate(newDelegate(m.page.Theme))
}

func (m *model) validateDownload() (assets.Entry, error) {
	if m.page.Loading {
		return assets.Entry{}, errors.New("release is still loading")
	}
	e, ok := m.selectedEntry()
	if !ok {
		return assets.Entry{}, errors.New("no asset selected")
	}
	return e, nil
}

func (m *model) SetStatus(s string) {
	m.status = s
}

func (m *model) SetError(err error) {
	m.err = err
	if err != nil {
		m.status = ""
	}
}

func (m *model) ClearBanner() {
	m.err = nil
	m.status = ""
}

func (m *model) cancelFetch() {
	if m.fetchCancel != nil {
		m.fetchCancel()
		m.fetchCancel = nil
	}
}

func (m *model) cancelDownload() {
	if m.downloadCancel != nil {
		m.downloadCancel()
		m.downloadCancel = nil
	}
}
