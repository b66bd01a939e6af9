// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/config"
	"github.com/jeranaias/crowdassist/internal/openai"
	"github.com/jeranaias/crowdassist/internal/storage"
)

// Feature identifies an assist action. The values are stored with drafts.
type Feature string

const (
	FeatureReviewReply    Feature = "review_reply"
	FeatureAutoReply      Feature = "auto_reply"
	FeatureReviewReport   Feature = "review_report"
	FeatureGenerateReport Feature = "generate_report"
)

// Features lists every feature in menu order.
var Features = []Feature{FeatureReviewReply, FeatureAutoReply, FeatureReviewReport, FeatureGenerateReport}

// Title returns the heading shown above a suggestion.
func (f Feature) Title() string {
	switch f {
	case FeatureReviewReply:
		return "AI Review"
	case FeatureAutoReply:
		return "AI Reply"
	case FeatureReviewReport:
		return "AI Report Review"
	case FeatureGenerateReport:
		return "Generated Report"
	}
	return string(f)
}

var (
	// ErrEmptyInput is returned when the text to work on is blank.
	ErrEmptyInput = errors.New("Please enter some text first.")

	// ErrNoComment is returned by AutoReply without a comment to answer.
	ErrNoComment = errors.New("No previous comment found to reply to.")

	// ErrMissingReportInput is returned by GenerateReport without a target
	// or vulnerability type.
	ErrMissingReportInput = errors.New("Please enter both a target URL and a vulnerability type.")

	// ErrNoToken is returned when no API token is configured.
	ErrNoToken = config.ErrNoToken
)

// Completer sends a chat completion. *openai.Client satisfies it.
type Completer interface {
	Chat(ctx context.Context, req openai.ChatRequest) (*openai.ChatResponse, error)
}

// DraftSaver records suggestions. *storage.DraftStore satisfies it.
type DraftSaver interface {
	Save(ctx context.Context, d storage.Draft) (storage.Draft, error)
}

// Suggestion is the result of an assist call.
type Suggestion struct {
	// DraftID is empty when no draft store is attached or saving failed.
	DraftID string
	Feature Feature
	Input   string
	Output  string
}

// Assistant runs the writing features against a completion API.
type Assistant struct {
	client Completer
	drafts DraftSaver
	model  string
	log    zerolog.Logger
}

// New creates an assistant. client may be nil when no token is set; every
// call then fails with ErrNoToken. drafts may be nil.
func New(client Completer, drafts DraftSaver, log zerolog.Logger) *Assistant {
	return &Assistant{
		client: client,
		drafts: drafts,
		model:  config.DefaultModel,
		log:    log.With().Str("component", "assist").Logger(),
	}
}

// WithModel overrides the completion model.
func (a *Assistant) WithModel(model string) *Assistant {
	if model != "" {
		a.model = model
	}
	return a
}

// ReviewReply polishes a reply to the program team. lastComment, when
// present, gives the model the message being answered.
func (a *Assistant) ReviewReply(ctx context.Context, reply, lastComment string) (Suggestion, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Suggestion{}, ErrEmptyInput
	}
	lastComment = strings.TrimSpace(lastComment)

	return a.run(ctx, FeatureReviewReply, reply, openai.ChatRequest{
		Messages: []openai.Message{
			openai.SystemMessage(reviewReplySystem),
			openai.UserMessage(reviewReplyPrompt(reply, lastComment)),
		},
		MaxTokens:   300,
		Temperature: 0.2,
	})
}

// AutoReply drafts a response to the latest comment from the program team.
func (a *Assistant) AutoReply(ctx context.Context, lastComment string) (Suggestion, error) {
	lastComment = strings.TrimSpace(lastComment)
	if lastComment == "" {
		return Suggestion{}, ErrNoComment
	}

	return a.run(ctx, FeatureAutoReply, lastComment, openai.ChatRequest{
		Messages:    []openai.Message{openai.UserMessage(autoReplyPrompt(lastComment))},
		MaxTokens:   200,
		Temperature: 0.3,
	})
}

// ReviewReport improves a report description without dropping details.
func (a *Assistant) ReviewReport(ctx context.Context, description string) (Suggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Suggestion{}, ErrEmptyInput
	}

	return a.run(ctx, FeatureReviewReport, description, openai.ChatRequest{
		Messages: []openai.Message{
			openai.SystemMessage(reviewReportSystem),
			openai.UserMessage(reviewReportPrompt(description)),
		},
		MaxTokens:   1000,
		Temperature: 0.3,
	})
}

// GenerateReport writes a report skeleton (Summary, Reproduction Steps,
// Impact, Fix Recommendations) for a vulnerability found on targetURL.
func (a *Assistant) GenerateReport(ctx context.Context, targetURL, vulnType string) (Suggestion, error) {
	targetURL = strings.TrimSpace(targetURL)
	vulnType = strings.TrimSpace(vulnType)
	if targetURL == "" || vulnType == "" {
		return Suggestion{}, ErrMissingReportInput
	}

	return a.run(ctx, FeatureGenerateReport, vulnType+" @ "+targetURL, openai.ChatRequest{
		Messages: []openai.Message{
			openai.SystemMessage(generateReportSystem),
			openai.UserMessage(generateReportPrompt(targetURL, vulnType)),
		},
		MaxTokens:   800,
		Temperature: 0.4,
	})
}

func (a *Assistant) run(ctx context.Context, feature Feature, input string, req openai.ChatRequest) (Suggestion, error) {
	if a.client == nil {
		return Suggestion{}, ErrNoToken
	}
	req.Model = a.model

	resp, err := a.client.Chat(ctx, req)
	if errors.Is(err, openai.ErrNotConfigured) {
		return Suggestion{}, ErrNoToken
	}
	if err != nil {
		a.log.Error().Err(err).Str("feature", string(feature)).Msg("completion failed")
		return Suggestion{}, fmt.Errorf("%s failed: %w", feature.Title(), err)
	}

	s := Suggestion{Feature: feature, Input: input, Output: resp.Content()}
	if s.Output == "" {
		return Suggestion{}, openai.ErrEmptyResponse
	}

	a.log.Info().
		Str("feature", string(feature)).
		Int("tokens", resp.Usage.TotalTokens).
		Msg("suggestion ready")

	if a.drafts != nil {
		d, err := a.drafts.Save(ctx, storage.Draft{Feature: string(feature), Input: input, Output: s.Output})
		if err != nil {
			a.log.Warn().Err(err).Msg("failed to save draft")
		} else {
			s.DraftID = d.ID
		}
	}
	return s, nil
}
