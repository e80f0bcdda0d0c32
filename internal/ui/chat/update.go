// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/segment"
	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/ui/components"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// =============================================================================
// LAYOUT
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)

	// Input container: rounded border (2) plus horizontal padding (2).
	m.input.SetWidth(max(m.width-4, 10))

	// Layout: header + viewport + typing line + input box + status bar.
	reserved := lipgloss.Height(m.header.View()) +
		1 +
		inputRows + 2 +
		lipgloss.Height(m.statusBar.View())

	m.viewport.Width = max(m.width, 1)
	m.viewport.Height = max(m.height-reserved, 1)
	m.welcome.SetSize(m.viewport.Width, m.viewport.Height)

	m.refreshViewport(m.viewport.AtBottom())
	return m, nil
}

// refreshViewport re-renders the transcript into the viewport and, when
// toBottom is set, scrolls to the newest message.
func (m *Model) refreshViewport(toBottom bool) {
	transcript := m.ctrl.Transcript()
	m.header.SetMessageCount(transcript.Len())
	m.statusBar.SetAwaiting(m.ctrl.Awaiting())

	m.list.SetWidth(m.viewport.Width)
	m.list.SetMessages(transcript.Messages())
	m.viewport.SetContent(m.list.View())
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Copy):
		n, _ := copyNumber(msg.String())
		return m.copyCodeBlock(n)

	case key.Matches(msg, m.keyMap.Help):
		m.statusBar.ToggleFullHelp()
		if m.width == 0 || m.height == 0 {
			return m, nil
		}
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

// =============================================================================
// TURNS
// =============================================================================

// handleSubmit starts a turn from the controller's draft, which mirrors the
// compose box. Blank input and Enter while a reply is pending are both
// ignored and leave the input untouched.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	turn, ok := m.ctrl.Begin(m.ctrl.Draft())
	if !ok {
		return m, nil
	}

	m.input.Reset()
	m.refreshViewport(true)

	return m, tea.Batch(m.sendCmd(turn), m.spinner.Tick)
}

// sendCmd runs the webhook exchange off the event loop.
func (m Model) sendCmd(turn session.Turn) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		reply, err := ctrl.Exchange(ctx, turn)
		return ReplyMsg{Turn: turn, Reply: reply, Err: err}
	}
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	m.ctrl.Complete(msg.Turn, msg.Reply, msg.Err)
	m.refreshViewport(true)
	return m, nil
}

// =============================================================================
// COPY
// =============================================================================

// copyCodeBlock copies the nth (1-based) code block of the latest reply.
func (m Model) copyCodeBlock(n int) (tea.Model, tea.Cmd) {
	last, ok := m.ctrl.Transcript().LastAssistant()
	if !ok {
		m.toasts.AddWarning("No reply to copy from yet")
		return m, nil
	}

	blocks := segment.CodeBlocks(segment.Parse(last.Text))
	if n < 1 || n > len(blocks) {
		m.toasts.AddWarning(fmt.Sprintf("No code block %d in the last reply", n))
		return m, nil
	}

	if err := components.CopyCode(blocks[n-1].Content); err != nil {
		m.logger.Warn().Err(err).Int("block", n).Msg("clipboard write failed")
		m.toasts.AddError("Could not copy to the clipboard")
		return m, nil
	}

	m.copies.Mark(last.ID, n, m.now())
	m.toasts.AddSuccess(fmt.Sprintf("Copied code block %d", n))
	m.refreshViewport(false)
	return m, components.CopyExpireCmd()
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleConfigReloaded applies a reloaded config. A pending request keeps
// the URL it was sent to.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Msg("config reload rejected")
		m.toasts.AddWarning("Config not reloaded: " + msg.Err.Error())
		return m, nil
	}
	cfg := msg.Config
	if cfg == nil {
		return m, nil
	}

	if m.endpoint != nil {
		m.endpoint.SetURL(cfg.WebhookURL)
		host := m.endpoint.Host()
		m.header.SetHost(host)
		m.welcome.SetHost(host)
	}

	palette, err := styles.NewPalette(cfg.UI.SyntaxStyle)
	if err != nil {
		m.logger.Warn().Err(err).Str("style", cfg.UI.SyntaxStyle).Msg("keeping current syntax style")
	} else {
		m.theme.SetPalette(palette)
	}

	m.logger.Info().Msg("config reloaded")
	m.toasts.AddStatus("Configuration reloaded")
	m.refreshViewport(false)
	return m, nil
}
