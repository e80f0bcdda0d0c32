// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/ui/styles"
	"github.com/jeranaias/kbchat/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top bar: app title, webhook host and message count.
type Header struct {
	host     string
	messages int
	width    int
	theme    *styles.Theme
}

// NewHeader creates a new header.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{theme: theme}
}

// SetWidth sets the header width.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetHost sets the webhook host.
func (h *Header) SetHost(host string) {
	h.host = host
}

// SetMessageCount sets the transcript length.
func (h *Header) SetMessageCount(n int) {
	h.messages = n
}

// View renders the header as a single line.
func (h *Header) View() string {
	title := h.theme.HeaderTitle.Render("kbchat")
	count := h.theme.HeaderSubtitle.Render(pluralize(h.messages, "message"))

	room := h.width - lipgloss.Width(title) - lipgloss.Width(count) - 6
	host := ""
	if h.host != "" && room > 4 {
		host = h.theme.HeaderSubtitle.Render(util.TruncateWidth(h.host, room))
	}

	left := title
	if host != "" {
		left += "  " + host
	}

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(count) - 2
	if gap < 1 {
		gap = 1
	}
	line := left + lipgloss.NewStyle().Width(gap).Render("") + count
	return h.theme.Header.Width(max(h.width, 0)).Render(line)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
