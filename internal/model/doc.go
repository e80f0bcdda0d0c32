// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages and the transcript.
//
// # Key Types
//
//   - Message: one immutable chat message with ID, text, sender and creation time
//   - Sender: message author (user or assistant)
//   - Transcript: the append-only ordered message list owned by a session
//
// # Usage
//
//	tr := model.NewTranscript()
//	tr.Append(model.NewUserMessage("How do I list files?"))
//	for _, msg := range tr.Messages() {
//	    fmt.Println(msg.Sender.DisplayName(), msg.Text)
//	}
package model
