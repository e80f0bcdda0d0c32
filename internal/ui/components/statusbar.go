// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

const waitingHint = "waiting for reply"

// StatusBar is the bottom bar with key hints.
type StatusBar struct {
	width    int
	awaiting bool
	keys     help.KeyMap
	help     help.Model
	theme    *styles.Theme
}

// NewStatusBar creates a status bar that shows the hints of keys.
func NewStatusBar(theme *styles.Theme, keys help.KeyMap) *StatusBar {
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = theme.StatusKey
	h.Styles.ShortDesc = theme.StatusValue
	h.Styles.ShortSeparator = theme.StatusValue
	h.Styles.FullKey = theme.StatusKey
	h.Styles.FullDesc = theme.StatusValue
	h.Styles.FullSeparator = theme.StatusValue
	h.Styles.Ellipsis = theme.StatusValue

	return &StatusBar{theme: theme, keys: keys, help: h}
}

// SetWidth sets the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetAwaiting toggles the waiting hint.
func (s *StatusBar) SetAwaiting(awaiting bool) {
	s.awaiting = awaiting
}

// ToggleFullHelp switches between the one-line hints and the grouped list.
func (s *StatusBar) ToggleFullHelp() {
	s.help.ShowAll = !s.help.ShowAll
}

// View renders the status bar. Short hints are cut with an ellipsis when
// they do not fit.
func (s *StatusBar) View() string {
	prefix := ""
	if s.awaiting {
		prefix = s.theme.StatusValue.Render(waitingHint) + s.theme.StatusValue.Render("  ")
	}

	// StatusBar style pads one column on each side.
	s.help.Width = max(s.width-2-lipgloss.Width(prefix), 0)
	if s.width <= 0 {
		s.help.Width = 0
	}

	line := prefix + s.help.View(s.keys)
	return s.theme.StatusBar.Width(max(s.width, 0)).Render(line)
}
