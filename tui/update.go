package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"shifremenlanding/internal/assets"
	"shifremenlanding/internal/ghrel"
	"shifremenlanding/internal/logger"
	"shifremenlanding/internal/releases"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

type releaseLoadedMsg struct {
	seq int
	rel *ghrel.Release
	err error
}

type downloadDoneMsg struct {
	seq   int
	out   string
	bytes int64
}

type downloadErrMsg struct {
	seq int
	err error
}

type downloadCanceledMsg struct {
	seq int
}

func fetchCmd(ctx context.Context, src releases.Source, owner, repo string, seq int) tea.Cmd {
	return func() tea.Msg {
		rel, err := src.Latest(ctx, owner, repo)
		return releaseLoadedMsg{seq: seq, rel: rel, err: err}
	}
}

func downloadCmd(ctx context.Context, src releases.Source, e assets.Entry, out string, seq int) tea.Cmd {
	return func() tea.Msg {
		n, err := releases.DownloadWithRetry(ctx, src, e.Asset, out)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return downloadCanceledMsg{seq: seq}
			}
			return downloadErrMsg{seq: seq, err: fmt.Errorf("download %s: %w", e.Name, err)}
		}
		return downloadDoneMsg{seq: seq, out: out, bytes: n}
	}
}

// Init runs on the program's copy of the model, so the startup fetch reuses
// the current sequence number instead of bumping it.
func (m model) Init() tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	inner := fetchCmd(ctx, m.src, m.owner, m.repo, m.fetchSeq)
	return tea.Batch(
		m.spin.Tick,
		func() tea.Msg {
			defer cancel()
			return inner()
		},
	)
}

// startFetch issues the release lookup. Results of superseded fetches are
// dropped by sequence number.
func (m *model) startFetch() tea.Cmd {
	m.cancelFetch()

	m.fetchSeq++
	m.page.Loading = true

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.fetchCancel = cancel

	inner := fetchCmd(ctx, m.src, m.owner, m.repo, m.fetchSeq)
	return func() tea.Msg {
		defer cancel()
		return inner()
	}
}

// startDownload replaces any running download. Messages from the replaced
// one carry an old sequence number and are dropped.
func (m *model) startDownload() tea.Cmd {
	m.cancelDownload()

	e, err := m.validateDownload()
	if err != nil {
		m.SetError(err)
		return nil
	}

	out := filepath.Join(m.outDir, e.Name)
	m.downloadSeq++
	m.ClearBanner()
	m.downloading = true
	m.SetStatus("Downloading " + e.Name + "…")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	m.downloadCancel = cancel

	inner := downloadCmd(ctx, m.src, e, out, m.downloadSeq)
	return func() tea.Msg {
		defer cancel()
		return inner()
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.assets.SetSize(max(msg.Width-8, 40), max(msg.Height-14, 6))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancelFetch()
			m.cancelDownload()
			return m, tea.Quit
		case "esc":
			m.ClearBanner()
			return m, nil
		case "t":
			m.toggleTheme()
			return m, nil
		case "ctrl+r":
			m.ClearBanner()
			return m, tea.Batch(m.spin.Tick, m.startFetch())
		case "enter":
			return m, m.startDownload()
		}

		var cmd tea.Cmd
		m.assets, cmd = m.assets.Update(msg)
		return m, cmd

	case releaseLoadedMsg:
		if msg.seq != m.fetchSeq {
			return m, nil
		}
		m.fetchCancel = nil
		m.page.Apply(msg.rel, msg.err, logger.Log)
		m.setEntries(m.page.Entries())
		return m, nil

	case downloadDoneMsg:
		if msg.seq != m.downloadSeq {
			return m, nil
		}
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus(fmt.Sprintf("Downloaded %s (%s)", msg.out, humanize.IBytes(uint64(max(msg.bytes, 0)))))
		logger.Log.Info("downloaded asset", "path", msg.out, "bytes", msg.bytes)
		return m, nil

	case downloadErrMsg:
		if msg.seq != m.downloadSeq {
			return m, nil
		}
		m.downloading = false
		m.downloadCancel = nil
		m.SetError(msg.err)
		logger.Log.Error("download failed", "err", msg.err)
		return m, nil

	case downloadCanceledMsg:
		if msg.seq != m.downloadSeq {
			return m, nil
		}
		m.downloading = false
		m.downloadCancel = nil
		m.SetStatus("Download canceled.")
		return m, nil

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}
