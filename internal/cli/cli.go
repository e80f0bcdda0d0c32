// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/logging"
	"github.com/jeranaias/kbchat/internal/webhook"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	WebhookURL string
	LogLevel   string
}

// configPath resolves --config, falling back to the default location.
func (o *GlobalOptions) configPath() (string, error) {
	if o.ConfigPath != "" {
		return o.ConfigPath, nil
	}
	return config.DefaultPath()
}

// applyFlags layers command-line flags over a loaded config.
func (o *GlobalOptions) applyFlags(cfg *config.Config) {
	if o.WebhookURL != "" {
		cfg.WebhookURL = o.WebhookURL
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	cfg.SetDefaults()
}

// loadConfig loads the file, the environment and the flags, in that order
// of increasing precedence. It does not validate.
func (o *GlobalOptions) loadConfig() (*config.Config, string, error) {
	path, err := o.configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, err
	}
	o.applyFlags(cfg)
	return cfg, path, nil
}

// =============================================================================
// RUNTIME
// =============================================================================

// app is what a chatting command needs once the config is known.
type app struct {
	cfg    *config.Config
	path   string
	logger zerolog.Logger
	closer io.Closer
	client *webhook.Client
}

// open loads and validates the config and builds the logger and client.
// The TUI owns the terminal, so it never logs to the console.
func (o *GlobalOptions) open(forTUI bool) (*app, error) {
	cfg, path, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if forTUI {
		logCfg.Console = false
	}
	logger, closer, err := logging.Setup(logCfg)
	if err != nil {
		return nil, err
	}

	client := webhook.NewClient(cfg.WebhookURL).WithLogger(logger)
	logger.Debug().Str("config", path).Str("host", client.Host()).Msg("kbchat starting")

	return &app{
		cfg:    cfg,
		path:   path,
		logger: logger,
		closer: closer,
		client: client,
	}, nil
}

// Close releases the log output.
func (a *app) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// NewRootCommand builds the kbchat command tree.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	root := &cobra.Command{
		Use:   "kbchat",
		Short: "Chat with a knowledge base through its webhook",
		Long: `kbchat sends each question to a knowledge-base webhook and shows the reply.

With no subcommand it opens the full-screen chat. Use 'ask' for a single
question and 'repl' for a line-mode conversation.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.kbchat/config.toml)")
	pf.StringVar(&opts.WebhookURL, "webhook-url", "", "webhook URL, overrides the config file and KBCHAT_WEBHOOK_URL")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level: debug, info, warn, error or disabled")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Reason: err.Error()}
	})

	root.AddCommand(
		newAskCommand(opts),
		newReplCommand(opts),
		newConfigCommand(opts),
		newVersionCommand(),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kbchat %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
		},
	}
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		DisplayError(os.Stderr, err)
	}
	return GetExitCode(err)
}
