// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the chat session state and the submit flow.
//
// # Key Types
//
//   - Controller: transcript, compose draft and awaiting-response flag
//   - Sender: delivers a message to the assistant (webhook.Client)
//   - Notifier: shows the generic failure notification
//
// # Usage
//
// Blocking callers use Submit:
//
//	ctrl := session.NewController(client, notifier)
//	ctrl.Submit(ctx, "How do I rotate the API key?")
//
// Event-loop callers split the turn so the network call runs elsewhere:
//
//	turn, ok := ctrl.Begin(text)
//	if ok {
//		go func() {
//			reply, err := ctrl.Exchange(ctx, turn)
//			ctrl.Complete(turn, reply, err)
//		}()
//	}
package session
