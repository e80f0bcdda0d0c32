// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for kbchat.
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init                Write a default configuration file
//   get <key>           Print one value, e.g. log.level
//   validate            Check the effective configuration
//
// The effective configuration is the file, then KBCHAT_* environment
// variables, then --webhook-url and --log-level.

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/ui/styles"
)

func newConfigCommand(opts *GlobalOptions) *cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := opts.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), styles.RenderWarning("not usable yet: "+err.Error()))
			}
			return nil
		},
	}

	root := &cobra.Command{
		Use:   "config",
		Short: "View and create the configuration",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}

	root.AddCommand(
		show,
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.configPath()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write a default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.configPath()
				if err != nil {
					return err
				}
				if err := config.Init(path); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("Wrote default configuration to "+path))
				fmt.Fprintln(cmd.OutOrStdout(), styles.RenderInfo("Set webhook_url before starting a chat."))
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Print one configuration value",
			Example: "  kbchat config get webhook_url\n  kbchat config get log.level",
			Args: func(cmd *cobra.Command, args []string) error {
				if len(args) != 1 {
					return &UsageError{Reason: "config get needs exactly one key: " + strings.Join(config.Keys(), ", ")}
				}
				return nil
			},
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := opts.loadConfig()
				if err != nil {
					return err
				}
				value, err := cfg.Get(args[0])
				if err != nil {
					return &UsageError{Reason: fmt.Sprintf("%v (keys: %s)", err, strings.Join(config.Keys(), ", "))}
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Check the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, path, err := opts.loadConfig()
				if err != nil {
					return err
				}
				if err := cfg.Validate(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), RenderLabel("config", path))
				fmt.Fprintln(cmd.OutOrStdout(), RenderLabel("webhook", cfg.WebhookURL))
				fmt.Fprintln(cmd.OutOrStdout(), styles.RenderSuccess("configuration is valid"))
				return nil
			},
		},
	)
	return root
}
