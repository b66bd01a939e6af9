// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package openai provides the chat completions client used by the writing
// assistant.
//
// # Key Types
//
//   - Client: HTTP client with rate limiting and retry support
//   - ChatRequest, ChatResponse: chat completions wire format
//   - APIError: error reported by the API, wrapped in a sentinel when the
//     status has one (ErrAuthFailed, ErrRateLimited, ErrModelNotFound)
//
// # Usage
//
//	client := openai.NewFromConfig(cfg.OpenAI, token).WithLogger(log)
//	resp, err := client.Chat(ctx, openai.ChatRequest{
//	    Messages:    []openai.Message{openai.UserMessage("Hello")},
//	    MaxTokens:   200,
//	    Temperature: 0.3,
//	})
//
// # Security
//
// The token is never logged. Logs carry KeyFingerprint instead.
package openai
