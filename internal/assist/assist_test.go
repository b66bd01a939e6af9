// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jeranaias/crowdassist/internal/openai"
	"github.com/jeranaias/crowdassist/internal/storage"
)

// fakeCompleter records requests and answers with a fixed reply.
type fakeCompleter struct {
	reqs  []openai.ChatRequest
	reply string
	err   error
}

func (f *fakeCompleter) Chat(_ context.Context, req openai.ChatRequest) (*openai.ChatResponse, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	var resp openai.ChatResponse
	_ = json.Unmarshal([]byte(`{"choices":[{"message":{"role":"assistant","content":`+quote(f.reply)+`}}]}`), &resp)
	return &resp, nil
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

type memDrafts struct {
	saved []storage.Draft
	err   error
}

func (m *memDrafts) Save(_ context.Context, d storage.Draft) (storage.Draft, error) {
	if m.err != nil {
		return storage.Draft{}, m.err
	}
	d.ID = "draft-1"
	m.saved = append(m.saved, d)
	return d, nil
}

func TestReviewReply(t *testing.T) {
	fc := &fakeCompleter{reply: "  Thanks, I have retested and it still reproduces.  "}
	drafts := &memDrafts{}
	a := New(fc, drafts, zerolog.Nop())

	s, err := a.ReviewReply(context.Background(), " thx i retested it still works ", "")
	require.NoError(t, err)
	assert.Equal(t, "Thanks, I have retested and it still reproduces.", s.Output)
	assert.Equal(t, FeatureReviewReply, s.Feature)
	assert.Equal(t, "draft-1", s.DraftID)

	require.Len(t, fc.reqs, 1)
	req := fc.reqs[0]
	assert.Equal(t, "gpt-3.5-turbo", req.Model)
	assert.Equal(t, 300, req.MaxTokens)
	assert.InDelta(t, 0.2, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "keeping the EXACT same format and approach")
	assert.Equal(t,
		"This is my response to a program/triage team request. Please clean it up while keeping the same format and approach:\n\nthx i retested it still works",
		req.Messages[1].Content)

	require.Len(t, drafts.saved, 1)
	assert.Equal(t, "review_reply", drafts.saved[0].Feature)
}

func TestReviewReply_WithLastComment(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	a := New(fc, nil, zerolog.Nop())

	_, err := a.ReviewReply(context.Background(), "my reply", "Please provide a PoC")
	require.NoError(t, err)

	user := fc.reqs[0].Messages[1].Content
	assert.True(t, strings.HasPrefix(user, "This is my response to a program/triage team request. Here's what they said:\n\n\"Please provide a PoC\""))
	assert.Contains(t, user, "And here's my reply that needs cleaning up:\n\nmy reply\n\n")
}

func TestAutoReply(t *testing.T) {
	fc := &fakeCompleter{reply: "Happy to help!"}
	a := New(fc, nil, zerolog.Nop())

	s, err := a.AutoReply(context.Background(), "Could you share the request?")
	require.NoError(t, err)
	assert.Equal(t, "Happy to help!", s.Output)
	assert.Empty(t, s.DraftID)

	req := fc.reqs[0]
	assert.Equal(t, 200, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 1, "auto-reply sends no system prompt")
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "\"Could you share the request?\"")
	assert.True(t, strings.HasSuffix(req.Messages[0].Content, "no additional formatting or explanations."))
}

func TestAutoReply_NoComment(t *testing.T) {
	fc := &fakeCompleter{reply: "x"}
	_, err := New(fc, nil, zerolog.Nop()).AutoReply(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoComment)
	assert.EqualError(t, err, "No previous comment found to reply to.")
	assert.Empty(t, fc.reqs)
}

func TestReviewReport(t *testing.T) {
	fc := &fakeCompleter{reply: "Improved report"}
	a := New(fc, nil, zerolog.Nop())

	_, err := a.ReviewReport(context.Background(), "xss in search")
	require.NoError(t, err)

	req := fc.reqs[0]
	assert.Equal(t, 1000, req.MaxTokens)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "improve their vulnerability report")
	assert.Contains(t, req.Messages[1].Content, "maintaining all technical details:\n\nxss in search\n\nPlease improve:")
}

func TestGenerateReport(t *testing.T) {
	fc := &fakeCompleter{reply: "**Summary:** ..."}
	drafts := &memDrafts{}
	a := New(fc, drafts, zerolog.Nop())

	s, err := a.GenerateReport(context.Background(), "https://example.com/search?q=1", "Reflected XSS")
	require.NoError(t, err)
	assert.Equal(t, FeatureGenerateReport, s.Feature)

	req := fc.reqs[0]
	assert.Equal(t, 800, req.MaxTokens)
	assert.InDelta(t, 0.4, req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "cybersecurity expert")
	user := req.Messages[1].Content
	assert.True(t, strings.HasPrefix(user, "Create a vulnerability report for a Reflected XSS found on https://example.com/search?q=1."))
	for _, heading := range []string{"**Summary:**", "**Reproduction Steps:**", "**Impact:**", "**Fix Recommendations:**"} {
		assert.Contains(t, user, heading)
	}
	assert.Equal(t, "Reflected XSS @ https://example.com/search?q=1", drafts.saved[0].Input)
}

func TestGenerateReport_MissingInput(t *testing.T) {
	a := New(&fakeCompleter{}, nil, zerolog.Nop())
	_, err := a.GenerateReport(context.Background(), "https://example.com", " ")
	assert.ErrorIs(t, err, ErrMissingReportInput)
	_, err = a.GenerateReport(context.Background(), "", "IDOR")
	assert.ErrorIs(t, err, ErrMissingReportInput)
}

func TestEmptyInput(t *testing.T) {
	a := New(&fakeCompleter{}, nil, zerolog.Nop())
	_, err := a.ReviewReply(context.Background(), "\n\t", "comment")
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = a.ReviewReport(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestNoToken(t *testing.T) {
	_, err := New(nil, nil, zerolog.Nop()).AutoReply(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Contains(t, err.Error(), "Please set your OpenAI API token")

	fc := &fakeCompleter{err: openai.ErrNotConfigured}
	_, err = New(fc, nil, zerolog.Nop()).AutoReply(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestCompletionError(t *testing.T) {
	fc := &fakeCompleter{err: openai.ErrAuthFailed}
	_, err := New(fc, nil, zerolog.Nop()).ReviewReport(context.Background(), "report")
	assert.ErrorIs(t, err, openai.ErrAuthFailed)
	assert.Contains(t, err.Error(), "AI Report Review failed")
}

func TestDraftSaveFailureIsNotFatal(t *testing.T) {
	fc := &fakeCompleter{reply: "fine"}
	a := New(fc, &memDrafts{err: errors.New("disk full")}, zerolog.Nop())

	s, err := a.AutoReply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "fine", s.Output)
	assert.Empty(t, s.DraftID)
}

func TestWithModel(t *testing.T) {
	fc := &fakeCompleter{reply: "x"}
	a := New(fc, nil, zerolog.Nop()).WithModel("gpt-4o-mini")
	_, _ = a.AutoReply(context.Background(), "hi")
	assert.Equal(t, "gpt-4o-mini", fc.reqs[0].Model)
}

// TestEndToEnd runs a feature against a fake API server and a real store.
func TestEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Sounds good, thanks!"}}],"usage":{"total_tokens":42}}`))
	}))
	defer server.Close()

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	client := openai.NewClient("sk-test").WithBaseURL(server.URL).WithLimiter(rate.NewLimiter(rate.Inf, 0))
	s, err := New(client, store, zerolog.Nop()).AutoReply(context.Background(), "We have triaged your report.")
	require.NoError(t, err)

	d, err := store.Get(context.Background(), s.DraftID)
	require.NoError(t, err)
	assert.Equal(t, "Sounds good, thanks!", d.Output)
	assert.Equal(t, "auto_reply", d.Feature)
}

func TestFeatureTitles(t *testing.T) {
	for _, f := range Features {
		assert.NotEqual(t, string(f), f.Title())
	}
}
