// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/caarlos0/env/v11"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/kbchat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete kbchat configuration.
type Config struct {
	// WebhookURL is the knowledge-base endpoint every turn is posted to.
	WebhookURL string `toml:"webhook_url" json:"webhook_url" env:"KBCHAT_WEBHOOK_URL"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`
}

// UIConfig contains display settings.
type UIConfig struct {
	// SyntaxStyle is the chroma style whose colors paint code tokens.
	SyntaxStyle string `toml:"syntax_style" json:"syntax_style" env:"KBCHAT_SYNTAX_STYLE"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error, disabled.
	Level string `toml:"level" json:"level" env:"KBCHAT_LOG_LEVEL"`
	// File is the log file path (empty = ~/.kbchat/kbchat.log)
	File string `toml:"file" json:"file" env:"KBCHAT_LOG_FILE"`
	// Console sends logs to stderr instead of a file. Line-mode commands set it.
	Console bool `toml:"console" json:"console"`
}

// LogLevels lists the accepted log.level values.
var LogLevels = []string{"debug", "info", "warn", "error", "disabled"}

// DefaultSyntaxStyle is the chroma style used when none is configured.
const DefaultSyntaxStyle = "catppuccin-mocha"

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration. The webhook URL is left empty
// and must be supplied by the file, the environment or a flag.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			SyntaxStyle: DefaultSyntaxStyle,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the kbchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".kbchat"), nil
}

// DefaultPath returns the path to the TOML config file.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kbchat.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the TOML file at path over the defaults and applies environment
// overrides. A missing file is not an error. An empty path selects
// DefaultPath. Load does not validate; callers that need a usable webhook
// call Validate.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills blank values that have a default.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.UI.SyntaxStyle == "" {
		c.UI.SyntaxStyle = defaults.UI.SyntaxStyle
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to path as TOML.
// RELIABILITY: Atomic write so a crash never leaves a half-written file for
// the watcher to pick up.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# kbchat configuration file\n")
	buf.WriteString("# webhook_url is required; KBCHAT_WEBHOOK_URL overrides it\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// SECURITY: owner read/write only
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ErrConfigExists is returned by Init when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// Init writes a default config file to path unless one exists.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	return Save(Default(), path)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.WebhookURL == "" {
		errs = append(errs, ValidationError{
			Field:   "webhook_url",
			Message: "is required (set it in the config file or KBCHAT_WEBHOOK_URL)",
		})
	} else if err := validateWebhookURL(c.WebhookURL); err != nil {
		errs = append(errs, ValidationError{Field: "webhook_url", Message: err.Error()})
	}

	if !isKnownLevel(c.Log.Level) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(LogLevels, ", ")),
		})
	}

	if _, ok := styles.Registry[c.UI.SyntaxStyle]; !ok {
		errs = append(errs, ValidationError{
			Field:   "ui.syntax_style",
			Message: fmt.Sprintf("unknown chroma style %q (known: %s)", c.UI.SyntaxStyle, strings.Join(styles.Names(), ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must be an absolute URL with a host")
	}
	return nil
}

func isKnownLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - KBCHAT_WEBHOOK_URL: overrides webhook_url
//   - KBCHAT_SYNTAX_STYLE: overrides ui.syntax_style
//   - KBCHAT_LOG_LEVEL: overrides log.level
//   - KBCHAT_LOG_FILE: overrides log.file
func (c *Config) ApplyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return nil
}

// =============================================================================
// GET HELPER (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value by its TOML key path (e.g., "log.level").
func (c *Config) Get(key string) (interface{}, error) {
	if key == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTOMLName(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

func fieldByTOMLName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := strings.Split(t.Field(i).Tag.Get("toml"), ",")[0]
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys returns every leaf key path in the configuration.
func Keys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}

// =============================================================================
// HOT RELOAD
// =============================================================================

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 150 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	overrides []func(*Config)
}

// WithOverrides applies fn to every reloaded config before it is validated.
// The CLI uses it to keep command-line flags in force across reloads.
func WithOverrides(fn func(*Config)) WatchOption {
	return func(o *watchOptions) {
		o.overrides = append(o.overrides, fn)
	}
}

// Watch reloads the file at path whenever it changes and passes the result to
// fn until ctx is done. The parent directory is watched so that editors that
// replace the file by rename are still seen. Load or validation failures are
// passed to fn as err with a nil config.
func Watch(ctx context.Context, path string, fn func(*Config, error), opts ...WatchOption) error {
	var wo watchOptions
	for _, opt := range opts {
		opt(&wo)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()

		target := filepath.Clean(path)
		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
				} else {
					timer.Reset(reloadDebounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				cfg, err := Load(path)
				if err == nil {
					for _, override := range wo.overrides {
						override(cfg)
					}
					err = cfg.Validate()
				}
				if err != nil {
					fn(nil, err)
					continue
				}
				fn(cfg, nil)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fn(nil, fmt.Errorf("config watcher: %w", err))
			}
		}
	}()

	return nil
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return fmt.Sprintf("config encode error: %v", err)
	}
	return sb.String()
}
