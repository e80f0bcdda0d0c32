// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jeranaias/kbchat/internal/model"
)

// GenericFailureMessage is the single notification shown for any failed turn.
const GenericFailureMessage = "Failed to get a response from the assistant. Please try again."

// =============================================================================
// COLLABORATORS
// =============================================================================

// Sender delivers one user message and returns the assistant reply.
type Sender interface {
	Send(ctx context.Context, text string) (string, error)
}

// Notifier surfaces a transient message to the user.
type Notifier interface {
	Notify(text string)
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(text string)

// Notify calls f(text).
func (f NotifierFunc) Notify(text string) {
	f(text)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Turn is an in-flight exchange started by Begin.
type Turn struct {
	// Text is the trimmed text sent to the webhook.
	Text string

	// UserMessage is the message appended when the turn began.
	UserMessage model.Message
}

// Controller owns the transcript, the compose draft and the awaiting flag.
// At most one turn is in flight; submissions made while one is pending are
// ignored rather than queued.
type Controller struct {
	mu         sync.Mutex
	transcript *model.Transcript
	draft      string
	awaiting   bool

	sender   Sender
	notifier Notifier
	logger   zerolog.Logger
}

// NewController creates a controller with an empty transcript.
func NewController(sender Sender, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	return &Controller{
		transcript: model.NewTranscript(),
		sender:     sender,
		notifier:   notifier,
		logger:     zerolog.Nop(),
	}
}

// WithLogger sets the logger for turn failures.
func (c *Controller) WithLogger(logger zerolog.Logger) *Controller {
	c.logger = logger.With().Str("component", "session").Logger()
	return c
}

// Transcript returns the message sequence.
func (c *Controller) Transcript() *model.Transcript {
	return c.transcript
}

// Awaiting reports whether a turn is in flight.
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// SetDraft records the current compose buffer.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Draft returns the current compose buffer.
func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Begin performs the synchronous half of a submission: the user message is
// appended, the draft cleared and the awaiting flag set. It returns false
// when the text is blank or a turn is already in flight; nothing changes in
// that case.
func (c *Controller) Begin(text string) (Turn, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Turn{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.awaiting {
		return Turn{}, false
	}

	msg := model.NewUserMessage(trimmed)
	c.transcript.Append(msg)
	c.draft = ""
	c.awaiting = true
	c.logger.Debug().Str("message_id", msg.ID).Int("length", len(trimmed)).Msg("turn accepted")

	return Turn{Text: trimmed, UserMessage: msg}, true
}

// Complete finishes a turn started by Begin. On success the reply is
// appended as an assistant message; on failure the user is notified once.
// The awaiting flag is cleared either way.
func (c *Controller) Complete(turn Turn, reply string, err error) {
	defer func() {
		c.mu.Lock()
		c.awaiting = false
		c.mu.Unlock()
	}()

	if err != nil {
		c.logger.Warn().Err(err).Str("message_id", turn.UserMessage.ID).Msg("turn failed")
		c.notifier.Notify(GenericFailureMessage)
		return
	}

	c.transcript.Append(model.NewAssistantMessage(reply))
}

// Exchange sends the text of a turn. It does not touch controller state and
// may run off the event loop.
func (c *Controller) Exchange(ctx context.Context, turn Turn) (string, error) {
	return c.sender.Send(ctx, turn.Text)
}

// Submit runs a whole turn and blocks until it resolves. It reports whether
// a turn was started.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	turn, ok := c.Begin(text)
	if !ok {
		return false
	}

	reply, err := c.Exchange(ctx, turn)
	c.Complete(turn, reply, err)
	return true
}
