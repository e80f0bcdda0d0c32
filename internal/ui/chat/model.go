// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/ui/components"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// inputRows is the visible height of the compose box.
	inputRows = 3

	// inputCharLimit caps a single message.
	inputCharLimit = 8000

	// typingText follows the spinner while a reply is pending.
	typingText = "Assistant is typing"
)

// =============================================================================
// ENDPOINT
// =============================================================================

// Endpoint is the part of the webhook client the view needs: the host to
// display and the URL to swap when the config is reloaded.
type Endpoint interface {
	Host() string
	SetURL(url string)
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Context bounds every webhook exchange. Defaults to context.Background.
	Context context.Context

	// Controller owns the transcript and the awaiting flag. Required.
	Controller *session.Controller

	// Toasts receives copy confirmations and reload notices. Pass the same
	// manager the Controller notifies so failures show up as toasts.
	Toasts *components.ToastManager

	// Endpoint is optional; without it the host is unknown and reloads
	// cannot swap the URL.
	Endpoint Endpoint

	Theme  *styles.Theme
	Prose  *components.ProseRenderer
	Logger zerolog.Logger

	// Clock marks and checks copied code blocks. Defaults to time.Now.
	Clock func() time.Time
}

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	ctx      context.Context
	ctrl     *session.Controller
	endpoint Endpoint
	logger   zerolog.Logger

	theme  *styles.Theme
	prose  *components.ProseRenderer
	copies *components.CopyState
	toasts *components.ToastManager
	keyMap KeyMap

	// Bubbles
	input    textarea.Model
	viewport viewport.Model
	spinner  spinner.Model

	// Chrome
	header    *components.Header
	statusBar *components.StatusBar
	welcome   components.Welcome
	list      *components.MessageList

	width  int
	height int

	now func() time.Time
}

// New creates a chat model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme(config.DefaultSyntaxStyle)
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = components.NewToastManager()
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	keyMap := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = "Ask the knowledge base..."
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = inputCharLimit
	ta.SetHeight(inputRows)
	ta.KeyMap.InsertNewline = keyMap.Newline
	ta.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New(
		spinner.WithSpinner(styles.DotsSpinner.Bubble()),
		spinner.WithStyle(theme.Typing),
	)

	host := ""
	if opts.Endpoint != nil {
		host = opts.Endpoint.Host()
	}

	copies := components.NewCopyState()
	header := components.NewHeader(theme)
	header.SetHost(host)

	return Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		endpoint:  opts.Endpoint,
		logger:    opts.Logger,
		theme:     theme,
		prose:     opts.Prose,
		copies:    copies,
		toasts:    toasts,
		keyMap:    keyMap,
		input:     ta,
		viewport:  vp,
		spinner:   sp,
		header:    header,
		statusBar: components.NewStatusBar(theme, keyMap),
		welcome:   components.NewWelcome(theme, host),
		list:      components.NewMessageList(theme, opts.Prose, copies).WithClock(now),
		now:       now,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and the toast clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, components.ToastTickCmd())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleReply(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case components.CopyExpiredMsg:
		if m.copies.Expire(msg.Time) {
			m.refreshViewport(false)
		}
		return m, nil

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		return m, components.ToastTickCmd()

	case spinner.TickMsg:
		// Let the spinner stop once the reply is in.
		if !m.ctrl.Awaiting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
