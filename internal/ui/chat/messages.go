// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/session"
)

// =============================================================================
// TURN MESSAGES
// =============================================================================

// ReplyMsg carries the result of one webhook exchange back to the event loop.
type ReplyMsg struct {
	Turn  session.Turn
	Reply string
	Err   error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg is sent when the config file changed on disk.
// Err is set when the new file failed to load or validate; Config is then nil.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}
