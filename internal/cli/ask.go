// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/kbchat/internal/session"
)

// =============================================================================
// ASK COMMAND
// =============================================================================

func newAskCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask one question and print the reply",
		Example: `  kbchat ask how do I rotate the API keys
  kbchat ask "what does error E1042 mean?" | less`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Reason: "ask needs a question, e.g. kbchat ask how do I reset my password"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open(false)
			if err != nil {
				return err
			}
			defer a.Close()

			renderer := NewReplyRenderer(a.cfg.UI.SyntaxStyle, ColorsEnabled(), GetTerminalWidth())
			return runAsk(cmd.Context(), a.client, a.logger, strings.Join(args, " "), cmd.OutOrStdout(), renderer)
		},
	}
}

// runAsk runs a single turn and prints the reply. A failed turn returns an
// error wrapping the webhook cause.
func runAsk(ctx context.Context, sender session.Sender, logger zerolog.Logger, question string, out io.Writer, r *ReplyRenderer) error {
	// The generic notice is printed from the returned error instead.
	ctrl := session.NewController(sender, nil).WithLogger(logger)

	turn, ok := ctrl.Begin(question)
	if !ok {
		return &UsageError{Reason: "question is empty"}
	}

	reply, err := ctrl.Exchange(ctx, turn)
	ctrl.Complete(turn, reply, err)
	if err != nil {
		return &turnError{cause: err}
	}

	fmt.Fprintln(out, r.Render(reply))
	return nil
}
