// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for kbchat.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (--webhook-url, --log-level)
//   - Environment variables (KBCHAT_*)
//   - ~/.kbchat/config.toml (or --config)
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// Watch for edits while the TUI runs:
//
//	config.Watch(ctx, path, func(cfg *config.Config, err error) { ... })
package config
