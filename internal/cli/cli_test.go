// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/jeranaias/crowdassist/internal/assist"
	"github.com/jeranaias/crowdassist/internal/config"
)

const fixturePage = "../page/testdata/submission.html"

// =============================================================================
// TEST HELPERS
// =============================================================================

type testApp struct {
	*App
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	out, errBuf := &bytes.Buffer{}, &bytes.Buffer{}
	app := &App{
		Config:      config.Default(),
		Log:         zerolog.Nop(),
		Stdout:      out,
		Stderr:      errBuf,
		DraftsPath:  filepath.Join(t.TempDir(), "drafts.db"),
		NewPrompter: func() Prompter { t.Fatal("unexpected prompt"); return nil },
	}
	t.Cleanup(func() { app.Close() })
	return &testApp{App: app, out: out, err: errBuf}
}

// fakePrompter answers prompts from a queue.
type fakePrompter struct {
	answers []string
	asked   []string
	closed  bool
}

func (f *fakePrompter) next(prompt string) (string, error) {
	f.asked = append(f.asked, prompt)
	if len(f.answers) == 0 {
		return "", io.EOF
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

func (f *fakePrompter) Prompt(p string) (string, error)         { return f.next(p) }
func (f *fakePrompter) PasswordPrompt(p string) (string, error) { return f.next(p) }
func (f *fakePrompter) Close() error                            { f.closed = true; return nil }

// completionServer answers chat completions with content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id": "chatcmpl-1",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
			"usage": map[string]int{"total_tokens": 42},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func withCompletions(t *testing.T, app *testApp, content string) {
	srv := completionServer(t, content)
	app.Config.OpenAI.Token = "sk-test"
	app.Config.OpenAI.BaseURL = srv.URL
}

func decodeJSON(t *testing.T, b *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(b.Bytes(), &v), b.String())
	return v
}

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"list", "extra", "--limit", "5", "--feature=auto_reply", "--all", "--json=false"})

	assert.Equal(t, "list", p.Subcommand())
	assert.Equal(t, "5", p.Flag("limit"))
	assert.Equal(t, 5, p.FlagIntOrDefault("limit", 20))
	assert.Equal(t, "auto_reply", p.Flag("feature"))
	assert.True(t, p.BoolFlag("all"))
	assert.False(t, p.BoolFlag("json"))
	assert.True(t, p.HasFlag("json"))
	assert.Equal(t, "extra", p.Positional(1))
	assert.Equal(t, "", p.Positional(5))
	assert.Equal(t, 2, p.PositionalCount())
	assert.Equal(t, "fallback", p.FlagOrDefault("missing", "fallback"))
}

func TestArgParser_Empty(t *testing.T) {
	p := NewArgParser(nil)
	assert.Equal(t, "", p.Subcommand())
	assert.Equal(t, 0, p.PositionalCount())
	assert.False(t, p.HasFlag("page"))
}

func TestParseIntWithValidation(t *testing.T) {
	n, err := ParseIntWithValidation("12", "--limit")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = ParseIntWithValidation("twelve", "--limit")
	assert.Error(t, err)
	_, err = ParseIntWithValidation("", "--limit")
	assert.Error(t, err)
}

func TestJoinPositionalArgs(t *testing.T) {
	p := NewArgParser([]string{"set", "ui.theme_mode", "dark", "mode"})
	assert.Equal(t, "dark mode", JoinPositionalArgs(p, 2))
	assert.Equal(t, "", JoinPositionalArgs(p, 9))
}

// =============================================================================
// COMMAND PARSING TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"--page", "x.html"}, CmdTUI},
		{[]string{"compose"}, CmdTUI},
		{[]string{"keep-alive"}, CmdKeepalive},
		{[]string{"refresh"}, CmdRefresh},
		{[]string{"ip"}, CmdIP},
		{[]string{"review", "text"}, CmdReview},
		{[]string{"auto-reply"}, CmdReply},
		{[]string{"report", "generate"}, CmdReport},
		{[]string{"export"}, CmdExport},
		{[]string{"triage"}, CmdTriage},
		{[]string{"privacy"}, CmdRedact},
		{[]string{"classify", "https://x"}, CmdClassify},
		{[]string{"mention"}, CmdMention},
		{[]string{"history"}, CmdDrafts},
		{[]string{"CONFIG", "show"}, CmdConfig},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-h"}, CmdHelp},
		{[]string{"frobnicate"}, CmdUnknown},
	}

	for _, tt := range tests {
		got, _ := Parse(tt.argv)
		assert.Equal(t, tt.want, got, "%v", tt.argv)
	}
}

func TestParse_GlobalFlags(t *testing.T) {
	cmd, args := Parse([]string{"drafts", "--json", "show", "-q", "abc", "--verbose"})
	assert.Equal(t, CmdDrafts, cmd)
	assert.True(t, args.JSON)
	assert.True(t, args.Quiet)
	assert.True(t, args.Verbose)
	assert.Equal(t, "show", args.Subcommand)
	assert.Equal(t, "abc", args.Parser.Positional(1))
}

func TestParse_Unknown(t *testing.T) {
	cmd, args := Parse([]string{"Nope"})
	assert.Equal(t, CmdUnknown, cmd)
	assert.Equal(t, "nope", args.Name)
}

func TestPrintUsageAndVersion(t *testing.T) {
	var b bytes.Buffer
	PrintUsage(&b)
	assert.Contains(t, b.String(), "crowdassist")
	assert.Contains(t, b.String(), "keepalive")

	b.Reset()
	PrintVersion(&b)
	assert.Contains(t, b.String(), Version)
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitUsageError, GetExitCode(ErrMissingArgument("--page", "x")))
	assert.Equal(t, ExitUsageError, GetExitCode(ErrInvalidValue("--format", "pdf", "md or json")))
	assert.Equal(t, ExitGeneralError, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitGeneralError, GetExitCode(NewCommandError("ip", "lookup", "down", errors.New("x"))))
}

func TestDisplayError(t *testing.T) {
	var b bytes.Buffer
	DisplayError(&b, config.ErrNoToken, false)
	assert.Contains(t, b.String(), "Error:")
	assert.Contains(t, b.String(), "crowdassist config token set")

	b.Reset()
	DisplayError(&b, ErrMissingArgument("--page", "crowdassist triage --page FILE"), true)
	out := decodeJSON(t, &b)
	assert.Equal(t, "usage_error", out["error_type"])
	assert.Equal(t, "--page", out["field"])
	assert.Equal(t, false, out["success"])

	b.Reset()
	DisplayError(&b, nil, false)
	assert.Empty(t, b.String())
}

func TestCommandError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewCommandError("refresh", "post", "session refresh failed", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "session refresh failed")
}

// =============================================================================
// PAGE COMMAND TESTS
// =============================================================================

func TestHandleClassify(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"classify", "https://bugcrowd.com/submissions/3f2b8c1e-9a4d-4e6f-8b7a-1c2d3e4f5a6b"})
	require.NoError(t, HandleClassify(app.App, args))
	assert.Equal(t, "report-view\n", app.out.String())

	_, args = Parse([]string{"classify"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleClassify(app.App, args)))
}

func TestHandleTriage(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"triage", "--page", fixturePage})
	require.NoError(t, HandleTriage(app.App, args))
	assert.Contains(t, app.out.String(), "Triaged in 1d 2h 35m")

	app.out.Reset()
	_, args = Parse([]string{"triage", "--json", "--page", fixturePage})
	require.NoError(t, HandleTriage(app.App, args))
	out := decodeJSON(t, app.out)
	assert.Equal(t, true, out["triaged"])
	assert.Equal(t, "Triaged in 1d 2h 35m", out["indicator"])
}

func TestHandleTriage_MissingPage(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"triage"})
	err := HandleTriage(app.App, args)
	var ue *UsageError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "--page", ue.Field)
}

func TestHandleRedact_ToFile(t *testing.T) {
	app := newTestApp(t)
	out := filepath.Join(t.TempDir(), "safe.html")
	_, args := Parse([]string{"redact", "--page", fixturePage, "--output", out})
	require.NoError(t, HandleRedact(app.App, args))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
	assert.Contains(t, app.err.String(), "Redacted")
	assert.Empty(t, app.out.String())
}

func TestHandleExport_JSON(t *testing.T) {
	app := newTestApp(t)
	dir := t.TempDir()
	_, args := Parse([]string{"export", "--json", "--page", fixturePage, "--out", dir})
	require.NoError(t, HandleExport(app.App, args))

	out := decodeJSON(t, app.out)
	assert.Equal(t, "Stored XSS in profile bio", out["title"])
	path, _ := out["path"].(string)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Summary")
}

func TestHandleExport_BadFormat(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"export", "--page", fixturePage, "--format", "pdf", "--out", t.TempDir()})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleExport(app.App, args)))
}

// =============================================================================
// MENTION COMMAND TESTS
// =============================================================================

func TestHandleMention(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"mention", "--names", "hunter42,helen,bob", "--text", "thanks @he"})
	require.NoError(t, HandleMention(app.App, args))

	s := app.out.String()
	assert.Contains(t, s, "thanks @he|")
	assert.Contains(t, s, "matching")
	assert.Contains(t, s, "> @helen")
	assert.NotContains(t, s, "hunter42")
}

func TestHandleMention_AcceptJSON(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"mention", "--json", "--accept", "--names", "hunter42,helen", "--text", "thanks @he"})
	require.NoError(t, HandleMention(app.App, args))

	out := decodeJSON(t, app.out)
	assert.Equal(t, true, out["committed"])
	assert.Equal(t, "thanks @helen ", out["text"])
	assert.Equal(t, float64(14), out["caret"])
}

func TestHandleMention_FromPage(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"mention", "--json", "--page", fixturePage, "--text", "hi @tri"})
	require.NoError(t, HandleMention(app.App, args))

	out := decodeJSON(t, app.out)
	assert.Equal(t, "matching", out["state"])
	assert.Equal(t, []interface{}{"triage_amy"}, out["matches"])
}

func TestHandleMention_Errors(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"mention"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleMention(app.App, args)))

	_, args = Parse([]string{"mention", "--text", "x", "--caret", "nope"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleMention(app.App, args)))
}

func TestCaretMarker(t *testing.T) {
	assert.Equal(t, "ab|c", caretMarker("abc", 2))
	assert.Equal(t, "abc|", caretMarker("abc", 10))
	assert.Equal(t, "a\\n|b", caretMarker("a\nb", 2))
}

// =============================================================================
// ASSIST COMMAND TESTS
// =============================================================================

func TestHandleReview(t *testing.T) {
	app := newTestApp(t)
	withCompletions(t, app, "  Thanks, the steps are updated.  ")

	_, args := Parse([]string{"review", "--page", fixturePage, "--text", "thx fixed"})
	require.NoError(t, HandleReview(context.Background(), app.App, args))
	assert.Equal(t, "Thanks, the steps are updated.\n", app.out.String())
	assert.Contains(t, app.err.String(), "saved as draft")

	store, err := app.Drafts()
	require.NoError(t, err)
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHandleReview_Diff(t *testing.T) {
	app := newTestApp(t)
	withCompletions(t, app, "thanks for the review")

	_, args := Parse([]string{"review", "--diff", "--text", "thx for the review"})
	require.NoError(t, HandleReview(context.Background(), app.App, args))
	assert.Equal(t, "[-thx-]{+thanks+} for the review\n", app.out.String())
	assert.Contains(t, app.err.String(), "+1 -1 words")
}

func TestHandleReview_NoToken(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"review", "--text", "thx"})
	err := HandleReview(context.Background(), app.App, args)
	assert.ErrorIs(t, err, config.ErrNoToken)
}

func TestHandleReply_JSONAndOut(t *testing.T) {
	app := newTestApp(t)
	withCompletions(t, app, "Here is the exact request.")
	outFile := filepath.Join(t.TempDir(), "reply.txt")

	_, args := Parse([]string{"reply", "--json", "--page", fixturePage, "--out", outFile})
	require.NoError(t, HandleReply(context.Background(), app.App, args))

	out := decodeJSON(t, app.out)
	assert.Equal(t, string(assist.FeatureAutoReply), out["feature"])
	assert.Equal(t, "Here is the exact request.", out["output"])
	assert.NotEmpty(t, out["draft_id"])

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "Here is the exact request.", string(data))
}

func TestHandleReport_GeneratePrompts(t *testing.T) {
	app := newTestApp(t)
	withCompletions(t, app, "## Summary\n\nReflected XSS.")
	prompter := &fakePrompter{answers: []string{"", "https://target.example", "Reflected XSS"}}
	app.Interactive = true
	app.NewPrompter = func() Prompter { return prompter }

	_, args := Parse([]string{"report", "generate"})
	require.NoError(t, HandleReport(context.Background(), app.App, args))

	assert.Equal(t, []string{"Target URL: ", "Target URL: ", "Vulnerability type: "}, prompter.asked)
	assert.True(t, prompter.closed)
	assert.Contains(t, app.out.String(), "Reflected XSS.")
}

func TestHandleReport_GenerateNonInteractive(t *testing.T) {
	app := newTestApp(t)
	_, args := Parse([]string{"report", "generate", "--url", "https://target.example"})
	err := HandleReport(context.Background(), app.App, args)
	assert.ErrorIs(t, err, assist.ErrMissingReportInput)
}

func TestHandleReport_PromptAborted(t *testing.T) {
	app := newTestApp(t)
	app.Interactive = true
	app.NewPrompter = func() Prompter { return &fakePrompter{} }

	_, args := Parse([]string{"report", "generate"})
	err := HandleReport(context.Background(), app.App, args)
	assert.ErrorIs(t, err, ErrPromptAborted)
}

// =============================================================================
// DRAFTS COMMAND TESTS
// =============================================================================

func TestHandleDrafts(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, args := Parse([]string{"drafts"})
	require.NoError(t, HandleDrafts(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "No drafts yet.")

	app.out.Reset()
	withCompletions(t, app, "Polished reply")
	_, args = Parse([]string{"review", "--json", "rough reply"})
	require.NoError(t, HandleReview(ctx, app.App, args))
	id, _ := decodeJSON(t, app.out)["draft_id"].(string)
	require.NotEmpty(t, id)

	app.out.Reset()
	_, args = Parse([]string{"drafts", "list", "--feature", "review_reply"})
	require.NoError(t, HandleDrafts(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "review_reply")
	assert.Contains(t, app.out.String(), "Polished reply")

	app.out.Reset()
	_, args = Parse([]string{"drafts", "show", id[:8]})
	require.NoError(t, HandleDrafts(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "rough reply")
	assert.Contains(t, app.out.String(), "AI Review")

	app.out.Reset()
	_, args = Parse([]string{"drafts", "--json", "prune", "--keep", "0"})
	require.NoError(t, HandleDrafts(ctx, app.App, args))
	assert.Equal(t, float64(1), decodeJSON(t, app.out)["removed"])
}

func TestHandleDrafts_Errors(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	_, args := Parse([]string{"drafts", "list", "--feature", "nope"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleDrafts(ctx, app.App, args)))

	_, args = Parse([]string{"drafts", "show"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleDrafts(ctx, app.App, args)))

	_, args = Parse([]string{"drafts", "explode"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleDrafts(ctx, app.App, args)))
}

// =============================================================================
// SESSION COMMAND TESTS
// =============================================================================

func TestHandleRefresh(t *testing.T) {
	var cookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cookies := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookies,
		[]byte(".bugcrowd.com\tTRUE\t/\tTRUE\t0\t_crowdcontrol_session\tsess123\n"), 0600))

	app := newTestApp(t)
	app.Config.Session.RefreshURL = srv.URL
	app.Config.Session.CookiesFile = cookies

	_, args := Parse([]string{"refresh"})
	require.NoError(t, HandleRefresh(context.Background(), app.App, args))
	assert.Equal(t, "_crowdcontrol_session=sess123", cookie)
	assert.Contains(t, app.out.String(), "Session refreshed")
}

func TestHandleRefresh_StatusJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	cookies := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(cookies,
		[]byte(".bugcrowd.com\tTRUE\t/\tTRUE\t0\tsid\tabc\n"), 0600))

	app := newTestApp(t)
	app.Config.Session.RefreshURL = srv.URL
	app.Config.Session.CookiesFile = cookies

	_, args := Parse([]string{"refresh", "--json"})
	err := HandleRefresh(context.Background(), app.App, args)
	require.Error(t, err)

	out := decodeJSON(t, app.out)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, float64(http.StatusUnauthorized), out["status"])
}

func TestHandleIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ip":"203.0.113.9"}`))
	}))
	defer srv.Close()

	app := newTestApp(t)
	app.Config.Network.IPLookupURL = srv.URL

	_, args := Parse([]string{"ip"})
	require.NoError(t, HandleIP(context.Background(), app.App, args))
	assert.Equal(t, "203.0.113.9\n", app.out.String())

	app.out.Reset()
	_, args = Parse([]string{"ip", "--json", "--insert", "Reproduced here."})
	require.NoError(t, HandleIP(context.Background(), app.App, args))
	out := decodeJSON(t, app.out)
	assert.Equal(t, "203.0.113.9", out["ip"])
	assert.True(t, strings.HasSuffix(out["text"].(string), "My IP is: 203.0.113.9"))
}

// =============================================================================
// CONFIG COMMAND TESTS
// =============================================================================

func TestHandleConfig_SetAndShow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app := newTestApp(t)
	ctx := context.Background()

	_, args := Parse([]string{"config", "set", "ui.theme_mode", "dark"})
	require.NoError(t, HandleConfig(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "ui.theme_mode = dark")
	assert.Equal(t, "dark", app.Config.UI.ThemeMode)

	path, err := config.ConfigPathTOML()
	require.NoError(t, err)
	saved, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", saved.UI.ThemeMode)

	app.out.Reset()
	_, args = Parse([]string{"config", "show"})
	require.NoError(t, HandleConfig(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "theme_mode")
	assert.Contains(t, app.out.String(), "(not set)")
}

func TestHandleConfig_SetErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	app := newTestApp(t)
	ctx := context.Background()

	_, args := Parse([]string{"config", "set", "ui.theme_mode", "neon"})
	require.Error(t, HandleConfig(ctx, app.App, args))
	assert.Equal(t, config.ThemeSystem, app.Config.UI.ThemeMode, "rejected value must not stick")

	_, args = Parse([]string{"config", "set", "nope.key", "1"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleConfig(ctx, app.App, args)))

	_, args = Parse([]string{"config", "set", "ui.theme_mode"})
	assert.Equal(t, ExitUsageError, GetExitCode(HandleConfig(ctx, app.App, args)))
}

func TestHandleConfig_Path(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	app := newTestApp(t)

	_, args := Parse([]string{"config", "--json", "path"})
	require.NoError(t, HandleConfig(context.Background(), app.App, args))
	out := decodeJSON(t, app.out)
	assert.Equal(t, filepath.Join(home, ".crowdassist", "config.toml"), out["path"])
	assert.Equal(t, false, out["exists"])
}

func TestHandleConfig_TokenSetAndClear(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())
	app := newTestApp(t)
	app.Interactive = true
	prompter := &fakePrompter{answers: []string{"sk-abcdef123456"}}
	app.NewPrompter = func() Prompter { return prompter }
	ctx := context.Background()

	_, args := Parse([]string{"config", "token", "set"})
	require.NoError(t, HandleConfig(ctx, app.App, args))
	assert.Contains(t, app.out.String(), "system keyring")
	assert.NotContains(t, app.out.String(), "sk-abcdef123456")
	assert.True(t, app.Config.OpenAI.TokenInKeyring)

	token, err := config.LoadToken(app.Config)
	require.NoError(t, err)
	assert.Equal(t, "sk-abcdef123456", token)

	_, args = Parse([]string{"config", "token", "clear"})
	require.NoError(t, HandleConfig(ctx, app.App, args))
	_, err = config.LoadToken(app.Config)
	assert.ErrorIs(t, err, config.ErrNoToken)
}

func TestHandleConfig_TokenSetRejectsBadPrefix(t *testing.T) {
	keyring.MockInit()
	t.Setenv("HOME", t.TempDir())
	app := newTestApp(t)

	_, args := Parse([]string{"config", "token", "set", "abc"})
	assert.ErrorIs(t, HandleConfig(context.Background(), app.App, args), config.ErrTokenPrefix)
}

func TestMaskIfSecret(t *testing.T) {
	assert.Equal(t, "dark", maskIfSecret("ui.theme_mode", "dark"))
	masked := maskIfSecret("openai.token", "sk-secret-value")
	assert.NotContains(t, masked, "secret-value")
	assert.True(t, strings.HasPrefix(masked, "fingerprint "))
}
