// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/kbchat/internal/model"
	"github.com/jeranaias/kbchat/internal/segment"
	"github.com/jeranaias/kbchat/internal/ui/styles"
	"github.com/jeranaias/kbchat/internal/util"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript message. Assistant text is split into
// prose and code segments; prose goes through glamour and code through the
// shell highlighter.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool

	theme  *styles.Theme
	prose  *ProseRenderer
	copies *CopyState
	now    time.Time
}

// NewMessageBubble creates a new MessageBubble.
func NewMessageBubble(msg model.Message, theme *styles.Theme, prose *ProseRenderer, copies *CopyState) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		theme:         theme,
		prose:         prose,
		copies:        copies,
		now:           time.Now(),
	}
}

// SetNow sets the time the copied markers are checked against.
func (b *MessageBubble) SetNow(now time.Time) {
	b.now = now
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// View renders the message bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser() {
		return b.renderUserBubble()
	}
	return b.renderAssistantBubble()
}

// ==========================================================================
// USER BUBBLE
// ==========================================================================

func (b *MessageBubble) renderUserBubble() string {
	maxContentWidth := b.contentWidth()
	wrapped := util.Wrap(b.Message.Text, maxContentWidth)

	bubble := b.theme.UserBubble.
		Width(min(maxLineWidth(wrapped), maxContentWidth) + 2).
		Render(wrapped)

	header := b.header(b.theme.UserLabel)
	return lipgloss.JoinVertical(lipgloss.Right, header, bubble)
}

// ==========================================================================
// ASSISTANT BUBBLE
// ==========================================================================

func (b *MessageBubble) renderAssistantBubble() string {
	innerWidth := b.contentWidth()

	var parts []string
	codeIndex := 0
	for _, seg := range segment.Parse(b.Message.Text) {
		if !seg.IsCode() {
			parts = append(parts, b.renderProse(seg.Content, innerWidth))
			continue
		}

		codeIndex++
		cb := NewCodeBlock(codeIndex, seg)
		cb.SetMaxWidth(innerWidth)
		cb.Copied = b.copies != nil && b.copies.IsCopied(b.Message.ID, codeIndex, b.now)
		parts = append(parts, cb.Render(b.theme))
	}

	body := strings.Join(parts, "\n")
	if strings.TrimSpace(body) == "" {
		body = b.theme.Timestamp.Render("(empty reply)")
	}

	bubble := b.theme.AssistantBubble.Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, b.header(b.theme.AssistantLabel), bubble)
}

func (b *MessageBubble) renderProse(text string, width int) string {
	if b.prose == nil {
		return util.Wrap(text, width)
	}
	return b.prose.Render(text, width)
}

// ==========================================================================
// HELPERS
// ==========================================================================

func (b *MessageBubble) header(label lipgloss.Style) string {
	parts := []string{label.Render(b.Message.Sender.DisplayName())}
	if b.ShowTimestamp && !b.Message.CreatedAt.IsZero() {
		parts = append(parts, b.theme.Timestamp.Render(formatTime(b.Message.CreatedAt)))
	}
	return strings.Join(parts, " ")
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 8
	if w < 20 {
		w = 20
	}
	return w
}

// maxLineWidth returns the display width of the widest line.
func maxLineWidth(text string) int {
	widest := 0
	for _, line := range strings.Split(text, "\n") {
		if w := util.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// formatTime renders a message time as HH:MM.
func formatTime(t time.Time) string {
	return t.Format("15:04")
}

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders the whole transcript for the viewport.
type MessageList struct {
	Messages []model.Message
	Width    int

	theme  *styles.Theme
	prose  *ProseRenderer
	copies *CopyState
	clock  func() time.Time
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme, prose *ProseRenderer, copies *CopyState) *MessageList {
	return &MessageList{
		Width:  80,
		theme:  theme,
		prose:  prose,
		copies: copies,
		clock:  time.Now,
	}
}

// WithClock sets the clock used for copied markers. It should be the same
// clock that marks copies.
func (ml *MessageList) WithClock(clock func() time.Time) *MessageList {
	if clock != nil {
		ml.clock = clock
	}
	return ml
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width.
func (ml *MessageList) SetWidth(width int) {
	ml.Width = width
}

// View renders all messages separated by a blank line.
func (ml *MessageList) View() string {
	now := ml.clock()
	width := ml.Width
	if ml.theme.Width > 0 {
		width = min(width, ml.theme.BubbleWidth())
	}

	bubbles := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		bubble := NewMessageBubble(msg, ml.theme, ml.prose, ml.copies)
		bubble.SetWidth(width)
		bubble.SetNow(now)
		view := bubble.View()
		if msg.IsUser() {
			view = lipgloss.PlaceHorizontal(ml.Width, lipgloss.Right, view)
		}
		bubbles = append(bubbles, view)
	}
	return strings.Join(bubbles, "\n\n")
}
