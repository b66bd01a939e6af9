// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package assist implements the AI writing features: reviewing a reply,
// drafting an auto-reply, reviewing a report and generating a report.
//
// Each feature sends fixed prompts through an openai client and returns a
// trimmed Suggestion. Suggestions are recorded in the draft history when a
// DraftSaver is attached.
//
// # Usage
//
//	a := assist.New(client, store, log)
//	s, err := a.AutoReply(ctx, doc.LastComment())
package assist
