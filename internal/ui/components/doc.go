// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI pieces of the kbchat TUI, built on Bubble
Tea and Lip Gloss.

# Display Components

Header (header.go) - Title, webhook host and message count.
StatusBar (statusbar.go) - Key hints from a help.KeyMap and the waiting
indicator.
MessageBubble, MessageList (message.go) - Transcript rendering; assistant
replies are split into prose and code segments.
CodeBlock (codeblock.go) - Shell-highlighted code with copy state.
Welcome (welcome.go) - Empty-state panel.

# Feedback

ToastManager (toast.go) - Auto-dismissing notifications. Implements
session.Notifier.
CopyState (clipboard.go) - Two-second "copied" window per code block.

# Rendering

ProseRenderer (prose.go) - Glamour markdown renderer cached by width.
*/
package components
