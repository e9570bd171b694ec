package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m model) View() string {
	w := m.width - 4
	if w <= 0 {
		w = 72
	}
	s := m.styles

	if m.page.Loading {
		return s.app.Width(w).Render(
			fmt.Sprintf("%s Fetching latest release of %s/%s…", m.spin.View(), m.owner, m.repo),
		)
	}

	themeIcon := "☀ light"
	if m.page.Theme.Dark() {
		themeIcon = "☾ dark"
	}

	tag := m.page.Tag()
	if tag == "" {
		tag = "-"
	}

	header := lipgloss.JoinVertical(
		lipgloss.Left,
		s.title.Render("Shifremen"),
		s.subtitle.Render("Secure Password Manager"),
	)

	bar := lipgloss.JoinHorizontal(
		lipgloss.Center,
		s.badge.Render(tag),
		s.muted.Render(fmt.Sprintf("   %s   github.com/%s/%s", themeIcon, m.owner, m.repo)),
	)

	var body strings.Builder
	if len(m.assets.Items()) == 0 {
		body.WriteString(s.muted.Render("No downloads available."))
	} else {
		body.WriteString(m.assets.View())
	}

	if m.downloading {
		fmt.Fprintf(&body, "\n%s Downloading…", m.spin.View())
	}
	if strings.TrimSpace(m.status) != "" {
		fmt.Fprintf(&body, "\n%s", s.status.Render(m.status))
	}
	if m.err != nil {
		fmt.Fprintf(&body, "\n%s", s.errorBox.Render("Error: "+m.err.Error()))
	}

	return s.app.Width(w).Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			bar,
			body.String(),
			s.footer.Render(s.muted.Render(helpText)),
		),
	)
}
