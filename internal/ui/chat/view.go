// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/kbchat/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the chat screen.
// Layout: header + messages (or welcome panel) + typing line + input + status bar.
// handleResize reserves the same heights when sizing the viewport.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var body string
	if m.ctrl.Transcript().IsEmpty() {
		body = m.welcome.View()
	} else {
		body = m.viewport.View()
	}

	if m.toasts.HasToasts() {
		body = overlayBottomRight(body, components.RenderToastStack(m.toasts.GetToasts(), m.width), m.width)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.renderTyping(),
		m.renderInput(),
		m.statusBar.View(),
	)
}

// renderTyping renders the awaiting indicator, or an empty line so the
// layout does not shift when a reply arrives.
func (m Model) renderTyping() string {
	if !m.ctrl.Awaiting() {
		return ""
	}
	return " " + m.spinner.View() + " " + m.theme.Typing.Render(typingText)
}

func (m Model) renderInput() string {
	style := m.theme.InputContainer
	if m.ctrl.Awaiting() {
		style = m.theme.InputContainerWaiting
	}
	return style.Width(max(m.width-2, 1)).Render(m.input.View())
}

// =============================================================================
// OVERLAY
// =============================================================================

// overlayBottomRight draws overlay over the last rows of base, right-aligned.
// Rows of base that the overlay covers are cut to make room.
func overlayBottomRight(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")

	start := len(baseLines) - len(overLines)
	if start < 0 {
		overLines = overLines[-start:]
		start = 0
	}

	for i, line := range overLines {
		line = strings.TrimLeft(line, " ")
		w := ansi.StringWidth(line)
		if w == 0 {
			continue
		}

		row := baseLines[start+i]
		room := max(width-w, 0)
		row = ansi.Truncate(row, room, "")
		if pad := room - ansi.StringWidth(row); pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		baseLines[start+i] = row + line
	}

	return strings.Join(baseLines, "\n")
}
