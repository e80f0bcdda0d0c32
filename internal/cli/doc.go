// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the kbchat command tree on cobra.
//
// Commands:
//   - kbchat: full-screen chat (requires a terminal)
//   - kbchat ask <question...>: one turn, reply on stdout
//   - kbchat repl: line-mode chat with in-session history
//   - kbchat config show|path|init|get|validate
//   - kbchat version
//
// Persistent flags --config, --webhook-url and --log-level override the
// config file and the KBCHAT_* environment variables.
//
// Replies are colored only when stdout is a terminal. Piped output is the
// reply text unchanged. A failed turn exits with ExitNetworkError and a
// missing or invalid config with ExitConfigError.
package cli
