// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

// =============================================================================
// REPL COMMAND
// =============================================================================

const (
	replPrompt     = "you> "
	separatorWidth = 60
)

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Chat line by line in the current terminal",
		Long: `repl reads one question per line and prints each reply below it.

Arrow keys walk the history of this session. History is not saved.
Type exit or quit, or press Ctrl-D, to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := RequiresTTY("chat"); err != nil {
				return err
			}
			a, err := opts.open(false)
			if err != nil {
				return err
			}
			defer a.Close()

			line := liner.NewLiner()
			defer line.Close()
			line.SetCtrlCAborts(true)

			renderer := NewReplyRenderer(a.cfg.UI.SyntaxStyle, ColorsEnabled(), GetTerminalWidth())
			fmt.Fprintln(cmd.OutOrStdout(), TitleStyle.Render("kbchat")+DimStyle.Render("  connected to "+a.client.Host()))
			fmt.Fprintln(cmd.OutOrStdout(), DimStyle.Render("Type exit or press Ctrl-D to leave."))

			return runRepl(cmd.Context(), line, a.client, a.logger, cmd.OutOrStdout(), cmd.ErrOrStderr(), renderer)
		},
	}
}

// runRepl reads questions from in until exit, EOF or an aborted prompt.
// A failed turn prints the generic notice and the loop continues.
func runRepl(ctx context.Context, in Prompter, sender session.Sender, logger zerolog.Logger, out, errOut io.Writer, r *ReplyRenderer) error {
	notify := session.NotifierFunc(func(text string) {
		fmt.Fprintln(errOut, styles.RenderError(text))
	})
	ctrl := session.NewController(sender, notify).WithLogger(logger)

	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := in.Prompt(replPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		text := strings.TrimSpace(input)
		switch text {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		in.AppendHistory(text)

		if !ctrl.Submit(ctx, text) {
			continue
		}
		if last, ok := ctrl.Transcript().Last(); ok && last.IsAssistant() {
			fmt.Fprintln(out, SpeakerStyle.Render("assistant>"))
			fmt.Fprintln(out, r.Render(last.Text))
			fmt.Fprintln(out, RenderSeparator(min(r.width, separatorWidth)))
		}
	}
}
