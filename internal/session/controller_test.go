// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/kbchat/internal/model"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
	reply string
	err   error
	block chan struct{}
}

func (f *fakeSender) Send(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type recordingNotifier struct {
	notes []string
}

func (r *recordingNotifier) Notify(text string) {
	r.notes = append(r.notes, text)
}

func TestSubmit_BlankInputIsIgnored(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		sender := &fakeSender{reply: "x"}
		ctrl := NewController(sender, nil)
		ctrl.SetDraft(input)

		assert.False(t, ctrl.Submit(context.Background(), input))
		assert.Equal(t, 0, ctrl.Transcript().Len())
		assert.Equal(t, 0, sender.callCount())
		assert.Equal(t, input, ctrl.Draft(), "draft untouched on no-op")
	}
}

func TestSubmit_SuccessAppendsBothMessages(t *testing.T) {
	sender := &fakeSender{reply: "Use `kb rotate`."}
	notes := &recordingNotifier{}
	ctrl := NewController(sender, notes)
	ctrl.SetDraft("  how do I rotate?  ")

	require.True(t, ctrl.Submit(context.Background(), "  how do I rotate?  "))

	msgs := ctrl.Transcript().Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)
	assert.Equal(t, "how do I rotate?", msgs[0].Text)
	assert.Equal(t, model.SenderAssistant, msgs[1].Sender)
	assert.Equal(t, "Use `kb rotate`.", msgs[1].Text)

	assert.Equal(t, []string{"how do I rotate?"}, sender.calls)
	assert.Empty(t, notes.notes)
	assert.Empty(t, ctrl.Draft())
	assert.False(t, ctrl.Awaiting())
}

func TestSubmit_FailureAppendsOnlyUserMessage(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	notes := &recordingNotifier{}
	ctrl := NewController(sender, notes)

	require.True(t, ctrl.Submit(context.Background(), "hello"))

	msgs := ctrl.Transcript().Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].IsUser())
	assert.Equal(t, []string{GenericFailureMessage}, notes.notes)
	assert.False(t, ctrl.Awaiting())

	// The session stays usable after a failure.
	sender.err = nil
	sender.reply = "hi"
	require.True(t, ctrl.Submit(context.Background(), "again"))
	assert.Equal(t, 3, ctrl.Transcript().Len())
}

func TestBegin_SetsStateBeforeExchange(t *testing.T) {
	ctrl := NewController(&fakeSender{}, nil)
	ctrl.SetDraft("question")

	turn, ok := ctrl.Begin("question")
	require.True(t, ok)

	assert.Equal(t, "question", turn.Text)
	assert.True(t, ctrl.Awaiting())
	assert.Empty(t, ctrl.Draft())
	assert.Equal(t, 1, ctrl.Transcript().Len())
	last, _ := ctrl.Transcript().Last()
	assert.Equal(t, turn.UserMessage.ID, last.ID)
}

func TestBegin_IgnoredWhileAwaiting(t *testing.T) {
	ctrl := NewController(&fakeSender{}, nil)

	turn, ok := ctrl.Begin("first")
	require.True(t, ok)

	_, ok = ctrl.Begin("second")
	assert.False(t, ok)
	assert.Equal(t, 1, ctrl.Transcript().Len())

	ctrl.Complete(turn, "reply", nil)
	assert.False(t, ctrl.Awaiting())

	_, ok = ctrl.Begin("third")
	assert.True(t, ok)
}

func TestSubmit_ConcurrentSubmitIsNoOp(t *testing.T) {
	sender := &fakeSender{reply: "done", block: make(chan struct{})}
	ctrl := NewController(sender, nil)

	done := make(chan bool)
	go func() {
		done <- ctrl.Submit(context.Background(), "slow")
	}()

	// Wait until the first request is in flight.
	for sender.callCount() == 0 {
		runtime.Gosched()
	}

	assert.False(t, ctrl.Submit(context.Background(), "fast"))
	assert.Equal(t, 1, sender.callCount())

	close(sender.block)
	assert.True(t, <-done)
	assert.Equal(t, 2, ctrl.Transcript().Len())
}

func TestNotifierFunc(t *testing.T) {
	var got string
	NotifierFunc(func(s string) { got = s }).Notify("x")
	assert.Equal(t, "x", got)
}
