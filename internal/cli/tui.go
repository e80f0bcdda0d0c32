// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/ui/chat"
	"github.com/jeranaias/kbchat/internal/ui/components"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// runTUI starts the full-screen chat and keeps the config file watched
// while it runs.
func runTUI(ctx context.Context, opts *GlobalOptions) error {
	if err := RequiresTTY("start the chat screen"); err != nil {
		return err
	}

	a, err := opts.open(true)
	if err != nil {
		return err
	}
	defer a.Close()

	toasts := components.NewToastManager()
	ctrl := session.NewController(a.client, toasts).WithLogger(a.logger)

	model := chat.New(chat.Options{
		Context:    ctx,
		Controller: ctrl,
		Toasts:     toasts,
		Endpoint:   a.client,
		Theme:      styles.NewTheme(a.cfg.UI.SyntaxStyle),
		Prose:      components.NewProseRenderer(""),
		Logger:     a.logger,
	})

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	err = config.Watch(watchCtx, a.path, func(cfg *config.Config, err error) {
		program.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
	}, config.WithOverrides(opts.applyFlags))
	if err != nil {
		a.logger.Warn().Err(err).Str("path", a.path).Msg("config hot reload disabled")
	}

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
