// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/kbchat/internal/config"
	"github.com/jeranaias/kbchat/internal/session"
	"github.com/jeranaias/kbchat/internal/webhook"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KBCHAT_WEBHOOK_URL", "KBCHAT_SYNTAX_STYLE", "KBCHAT_LOG_LEVEL", "KBCHAT_LOG_FILE", "FORCE_COLOR"} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")
}

// execute runs the command tree with an isolated config path and logging off.
func execute(t *testing.T, configPath string, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithStderr(t, configPath, args...)
	return out, err
}

func executeWithStderr(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", configPath, "--log-level", "disabled"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

type webhookStub struct {
	mu       sync.Mutex
	messages []string
}

func (s *webhookStub) received() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.messages...)
}

func newWebhook(t *testing.T, status int, body string) (*httptest.Server, *webhookStub) {
	t.Helper()
	stub := &webhookStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req webhook.Request
		_ = json.NewDecoder(r.Body).Decode(&req)
		stub.mu.Lock()
		stub.messages = append(stub.messages, req.Message)
		stub.mu.Unlock()
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, stub
}

// =============================================================================
// ASK TESTS
// =============================================================================

func TestAsk_PrintsReply(t *testing.T) {
	clearEnv(t)
	srv, stub := newWebhook(t, http.StatusOK, `{"output":"Restart the agent.\n`+"```bash\\nsystemctl restart agent\\n```"+`"}`)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, cfgPath, "--webhook-url", srv.URL, "ask", "how", "do", "I", "fix", "it?")
	require.NoError(t, err)

	assert.Equal(t, []string{"how do I fix it?"}, stub.received())
	// Not a terminal: the reply is printed untouched.
	assert.Equal(t, "Restart the agent.\n```bash\nsystemctl restart agent\n```\n", out)
}

func TestAsk_FailedTurn(t *testing.T) {
	clearEnv(t)
	srv, _ := newWebhook(t, http.StatusInternalServerError, `oops`)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, cfgPath, "--webhook-url", srv.URL, "ask", "hello")
	require.Error(t, err)

	assert.Empty(t, out)
	assert.ErrorIs(t, err, ErrTurnFailed)
	assert.ErrorIs(t, err, webhook.ErrStatus)
	assert.Equal(t, session.GenericFailureMessage, err.Error())
	assert.Equal(t, ExitNetworkError, GetExitCode(err))
}

func TestAsk_RequiresQuestion(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, cfgPath, "--webhook-url", "https://kb.example.com/hook", "ask")
	require.Error(t, err)

	var usage *UsageError
	assert.ErrorAs(t, err, &usage)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestAsk_BlankQuestion(t *testing.T) {
	clearEnv(t)
	srv, stub := newWebhook(t, http.StatusOK, `{"output":"x"}`)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, cfgPath, "--webhook-url", srv.URL, "ask", "   ")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	assert.Empty(t, stub.received())
}

func TestAsk_MissingWebhookURL(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, cfgPath, "ask", "hello")
	require.Error(t, err)

	var errs config.ValidateErrors
	assert.ErrorAs(t, err, &errs)
	assert.Equal(t, ExitConfigError, GetExitCode(err))
}

func TestAsk_UnknownFlag(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, cfgPath, "ask", "--bogus", "hello")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func TestConfigCommands(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "kbchat", "config.toml")

	out, err := execute(t, cfgPath, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Wrote default configuration to "+cfgPath)
	assert.Contains(t, out, "[i] Set webhook_url")
	_, statErr := os.Stat(cfgPath)
	require.NoError(t, statErr)

	_, err = execute(t, cfgPath, "config", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfigExists)
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	out, err = execute(t, cfgPath, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, cfgPath+"\n", out)

	out, err = execute(t, cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "syntax_style")

	out, err = execute(t, cfgPath, "config", "get", "ui.syntax_style")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSyntaxStyle+"\n", out)

	_, err = execute(t, cfgPath, "config", "get", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestConfigShow_WarnsWhenNotUsable(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, errOut, err := executeWithStderr(t, cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "webhook_url")
	assert.Contains(t, errOut, "[!] not usable yet")
	assert.Contains(t, errOut, "webhook_url")

	_, errOut, err = executeWithStderr(t, cfgPath, "--webhook-url", "https://kb.example.com/hook", "config", "show")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestConfigGet_FlagOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("KBCHAT_WEBHOOK_URL", "https://env.example.com/hook")
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, cfgPath, "config", "get", "webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com/hook\n", out)

	out, err = execute(t, cfgPath, "--webhook-url", "https://flag.example.com/hook", "config", "get", "webhook_url")
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com/hook\n", out)
}

func TestConfigValidate(t *testing.T) {
	clearEnv(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")

	_, err := execute(t, cfgPath, "config", "validate")
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	out, err := execute(t, cfgPath, "--webhook-url", "https://kb.example.com/hook", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration is valid")
}

func TestVersion(t *testing.T) {
	clearEnv(t)
	out, err := execute(t, filepath.Join(t.TempDir(), "config.toml"), "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "kbchat "+Version))
}

// =============================================================================
// REPL TESTS
// =============================================================================

type fakePrompter struct {
	lines   []string
	history []string
}

func (p *fakePrompter) Prompt(string) (string, error) {
	if len(p.lines) == 0 {
		return "", io.EOF
	}
	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func (p *fakePrompter) AppendHistory(item string) {
	p.history = append(p.history, item)
}

type fakeSender struct {
	calls []string
}

func (f *fakeSender) Send(ctx context.Context, text string) (string, error) {
	f.calls = append(f.calls, text)
	if strings.Contains(text, "fail") {
		return "", fmt.Errorf("%w: connection refused", webhook.ErrTransport)
	}
	return "answer to " + text, nil
}

func TestRunRepl(t *testing.T) {
	in := &fakePrompter{lines: []string{"what is kb?", "   ", "fail please", "again", "quit", "never read"}}
	sender := &fakeSender{}
	var out, errOut bytes.Buffer

	err := runRepl(context.Background(), in, sender, zerolog.Nop(), &out, &errOut, NewReplyRenderer("monokai", false, 80))
	require.NoError(t, err)

	assert.Equal(t, []string{"what is kb?", "fail please", "again"}, sender.calls)
	assert.Equal(t, []string{"what is kb?", "fail please", "again"}, in.history)
	assert.Equal(t, []string{"never read"}, in.lines)

	assert.Contains(t, out.String(), "answer to what is kb?")
	assert.Contains(t, out.String(), "answer to again")
	assert.NotContains(t, out.String(), "answer to fail please")
	assert.Equal(t, 1, strings.Count(errOut.String(), session.GenericFailureMessage))
	assert.Contains(t, errOut.String(), "[X] "+session.GenericFailureMessage)
	assert.Equal(t, 2, strings.Count(out.String(), strings.Repeat("-", separatorWidth)))
}

func TestRunRepl_EOF(t *testing.T) {
	in := &fakePrompter{}
	var out, errOut bytes.Buffer

	err := runRepl(context.Background(), in, &fakeSender{}, zerolog.Nop(), &out, &errOut, NewReplyRenderer("monokai", false, 80))
	assert.NoError(t, err)
}

func TestRunRepl_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := &fakePrompter{lines: []string{"hello"}}
	sender := &fakeSender{}

	err := runRepl(ctx, in, sender, zerolog.Nop(), io.Discard, io.Discard, NewReplyRenderer("monokai", false, 80))
	assert.NoError(t, err)
	assert.Empty(t, sender.calls)
}

// =============================================================================
// RENDER TESTS
// =============================================================================

func TestReplyRenderer_Plain(t *testing.T) {
	reply := "See:\n```js\nconst a = 1;\n```"
	assert.Equal(t, reply, NewReplyRenderer("monokai", false, 80).Render(reply))
}

func TestReplyRenderer_Colored(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(GetColorProfile()) })

	got := NewReplyRenderer("monokai", true, 80).Render("Intro text\n```bash\necho $HOME\n```")

	assert.Contains(t, got, "Intro text")
	assert.Contains(t, got, "[bash]")
	assert.Contains(t, got, "echo $HOME")
	assert.NotContains(t, got, "```")
}

// =============================================================================
// EXIT CODE TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", &UsageError{Reason: "bad"}, ExitUsageError},
		{"validation", config.ValidateErrors{{Field: "webhook_url", Message: "is required"}}, ExitConfigError},
		{"no url", webhook.ErrNoURL, ExitConfigError},
		{"transport", &turnError{cause: fmt.Errorf("%w: refused", webhook.ErrTransport)}, ExitNetworkError},
		{"status", &webhook.StatusError{Status: 502}, ExitNetworkError},
		{"decode", webhook.ErrDecode, ExitNetworkError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}
