// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across kbchat.
//
// String Utilities (display width via go-runewidth):
//   - TruncateWidth: safe truncation with ellipsis
//   - StringWidth: column math
//   - Wrap: word wrapping for toasts and message bubbles
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
