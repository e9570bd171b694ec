// Package landing holds the renderer-independent state of the download page:
// the loading flag, the fetched release and the current theme.
package landing

import (
	"context"

	"shifremenlanding/internal/assets"
	"shifremenlanding/internal/ghrel"
	"shifremenlanding/internal/releases"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// Page is owned by a single renderer; it is not safe for concurrent use.
type Page struct {
	Loading bool
	Release *ghrel.Release
	Theme   Theme
}

// New returns a page that is loading and has no release yet.
func New(theme Theme) *Page {
	return &Page{Loading: true, Theme: theme}
}

// Load fetches the latest release of owner/repo once. Failures are logged
// and leave the page with no release; Loading is cleared either way.
func (p *Page) Load(ctx context.Context, src releases.Source, owner, repo string, lg *log.Logger) {
	rel, err := src.Latest(ctx, owner, repo)
	p.Apply(rel, err, lg)
}

// Apply records the outcome of a fetch made elsewhere (e.g. in a TUI command).
func (p *Page) Apply(rel *ghrel.Release, err error, lg *log.Logger) {
	p.Loading = false
	if err != nil {
		p.Release = nil
		if lg != nil {
			lg.Error("could not fetch latest release", "err", err)
		}
		return
	}
	p.Release = rel
	if lg != nil && rel != nil {
		lg.Debug("fetched latest release",
			"tag", rel.TagName,
			"assets", len(rel.Assets),
			"total", humanize.IBytes(totalSize(rel)),
		)
	}
}

// Tag is the release tag, or "" when nothing was fetched.
func (p *Page) Tag() string {
	if p.Release == nil {
		return ""
	}
	return p.Release.TagName
}

// Entries returns the classified assets in display order.
func (p *Page) Entries() []assets.Entry {
	return assets.Entries(p.Release)
}

// ToggleTheme flips between light and dark.
func (p *Page) ToggleTheme() {
	p.Theme = p.Theme.Toggle()
}

func totalSize(rel *ghrel.Release) uint64 {
	var n uint64
	for _, a := range rel.Assets {
		if a.Size > 0 {
			n += uint64(a.Size)
		}
	}
	return n
}
