// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KBCHAT_WEBHOOK_URL", "KBCHAT_SYNTAX_STYLE", "KBCHAT_LOG_LEVEL", "KBCHAT_LOG_FILE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	if cfg.WebhookURL != "" {
		t.Errorf("Expected empty webhook_url, got %q", cfg.WebhookURL)
	}
	if cfg.UI.SyntaxStyle != DefaultSyntaxStyle {
		t.Errorf("Expected syntax style %q, got %q", DefaultSyntaxStyle, cfg.UI.SyntaxStyle)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level 'info', got %q", cfg.Log.Level)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.SyntaxStyle != DefaultSyntaxStyle {
		t.Errorf("Expected default style, got %q", cfg.UI.SyntaxStyle)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `webhook_url = "https://kb.example.com/hook"

[ui]
syntax_style = "dracula"

[log]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WebhookURL != "https://kb.example.com/hook" {
		t.Errorf("webhook_url = %q", cfg.WebhookURL)
	}
	if cfg.UI.SyntaxStyle != "dracula" {
		t.Errorf("syntax_style = %q", cfg.UI.SyntaxStyle)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level should be lowercased, got %q", cfg.Log.Level)
	}

	t.Setenv("KBCHAT_WEBHOOK_URL", "http://localhost:5678/webhook/kb")
	t.Setenv("KBCHAT_LOG_FILE", "/tmp/kb.log")

	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.WebhookURL != "http://localhost:5678/webhook/kb" {
		t.Errorf("env override not applied, got %q", cfg.WebhookURL)
	}
	if cfg.Log.File != "/tmp/kb.log" {
		t.Errorf("log.file env override not applied, got %q", cfg.Log.File)
	}
	if cfg.UI.SyntaxStyle != "dracula" {
		t.Errorf("unset env var must not clobber file value, got %q", cfg.UI.SyntaxStyle)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("webhook_url = "), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected decode error for malformed TOML")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{
			name:   "valid https",
			modify: func(c *Config) { c.WebhookURL = "https://kb.example.com/webhook" },
		},
		{
			name:   "valid http with port",
			modify: func(c *Config) { c.WebhookURL = "http://localhost:5678/webhook/kb" },
		},
		{
			name:      "missing url",
			modify:    func(c *Config) {},
			wantField: "webhook_url",
		},
		{
			name:      "relative url",
			modify:    func(c *Config) { c.WebhookURL = "/webhook/kb" },
			wantField: "webhook_url",
		},
		{
			name:      "wrong scheme",
			modify:    func(c *Config) { c.WebhookURL = "ftp://kb.example.com" },
			wantField: "webhook_url",
		},
		{
			name: "unknown level",
			modify: func(c *Config) {
				c.WebhookURL = "https://kb.example.com"
				c.Log.Level = "verbose"
			},
			wantField: "log.level",
		},
		{
			name: "unknown style",
			modify: func(c *Config) {
				c.WebhookURL = "https://kb.example.com"
				c.UI.SyntaxStyle = "no-such-style"
			},
			wantField: "ui.syntax_style",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verrs ValidateErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want ValidateErrors", err)
			}
			found := false
			for _, v := range verrs {
				if v.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() errors %v missing field %s", verrs, tt.wantField)
			}
		})
	}
}

func TestValidate_UnknownStyleListsKnownStyles(t *testing.T) {
	cfg := Default()
	cfg.WebhookURL = "https://kb.example.com"
	cfg.UI.SyntaxStyle = "no-such-style"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error for unknown style")
	}
	for _, want := range []string{`unknown chroma style "no-such-style"`, "monokai", DefaultSyntaxStyle} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error %q does not mention %q", err, want)
		}
	}
}

func TestSaveAndInit(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}

	if err := Init(path); !errors.Is(err, ErrConfigExists) {
		t.Errorf("Init() on existing file error = %v, want ErrConfigExists", err)
	}

	cfg := Default()
	cfg.WebhookURL = "https://kb.example.com/hook"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.WebhookURL != cfg.WebhookURL {
		t.Errorf("round trip lost webhook_url: %q", loaded.WebhookURL)
	}
}

func TestConfig_Get(t *testing.T) {
	cfg := Default()
	cfg.WebhookURL = "https://kb.example.com"

	got, err := cfg.Get("webhook_url")
	if err != nil || got != "https://kb.example.com" {
		t.Errorf("Get(webhook_url) = %v, %v", got, err)
	}

	got, err = cfg.Get("log.level")
	if err != nil || got != "info" {
		t.Errorf("Get(log.level) = %v, %v", got, err)
	}

	if _, err := cfg.Get("log.nothing"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if _, err := cfg.Get("webhook_url.x"); err == nil {
		t.Error("Expected error when descending into a scalar")
	}
}

func TestKeys(t *testing.T) {
	want := []string{"webhook_url", "ui.syntax_style", "log.level", "log.file", "log.console"}
	got := Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`webhook_url = "https://one.example.com"`), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	err := Watch(ctx, path, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(`webhook_url = "https://two.example.com"`), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.WebhookURL != "https://two.example.com" {
			t.Errorf("reloaded webhook_url = %q", cfg.WebhookURL)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatch_AppliesOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`[log]
level = "info"`), 0600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		cfg *Config
		err error
	}
	reloaded := make(chan result, 4)
	err := Watch(ctx, path, func(cfg *Config, err error) {
		reloaded <- result{cfg, err}
	}, WithOverrides(func(cfg *Config) {
		cfg.WebhookURL = "https://flag.example.com"
	}))
	if err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// No webhook_url in the file; the override keeps the config valid.
	if err := os.WriteFile(path, []byte(`[log]
level = "debug"`), 0600); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reloaded:
		if r.err != nil {
			t.Fatalf("reload error = %v", r.err)
		}
		if r.cfg.WebhookURL != "https://flag.example.com" {
			t.Errorf("webhook_url = %q", r.cfg.WebhookURL)
		}
		if r.cfg.Log.Level != "debug" {
			t.Errorf("log.level = %q", r.cfg.Log.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
