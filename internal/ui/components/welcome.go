// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/ui/styles"
	"github.com/jeranaias/kbchat/internal/util"
)

// =============================================================================
// EMPTY STATE
// =============================================================================

// Welcome is the panel shown while the transcript is empty.
type Welcome struct {
	host   string
	width  int
	height int
	theme  *styles.Theme
}

// NewWelcome creates the empty-state panel for the given webhook host.
func NewWelcome(theme *styles.Theme, host string) Welcome {
	return Welcome{host: host, theme: theme}
}

// SetHost updates the displayed webhook host.
func (w *Welcome) SetHost(host string) {
	w.host = host
}

// SetSize updates the dimensions.
func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
}

// View renders the panel centered in the available space.
func (w Welcome) View() string {
	host := w.host
	if host == "" {
		host = "(no webhook configured)"
	}
	if w.width > 0 {
		host = util.TruncateWidth(host, max(w.width-16, 10))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		w.theme.WelcomeTitle.Render("Knowledge Base Chat"),
		"",
		w.theme.WelcomeText.Render("Ask a question to get started."),
		w.theme.Timestamp.Render("Connected to "+host),
		"",
		w.theme.CodeHint.Render("enter send  |  alt+1..9 copy code  |  ctrl+c quit"),
	)

	box := w.theme.WelcomeBox.Render(content)
	if w.width <= 0 || w.height <= 0 {
		return box
	}
	return lipgloss.Place(w.width, w.height, lipgloss.Center, lipgloss.Center, box)
}
