// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package page reads saved bug bounty platform pages.
//
// It classifies page URLs, extracts what the assistant needs (usernames for
// mentions, the latest program comment, the comment and description
// fields, the submission body), computes the time to triage and applies
// privacy-mode redaction.
//
// # Key Types
//
//   - Document: a parsed page (golang.org/x/net/html, queried with cascadia)
//   - Kind: report creation, report view or other
//   - TriageInfo: submission and triage timestamps
//
// # Usage
//
//	doc, err := page.Load("submission.html")
//	if err != nil {
//	    return err
//	}
//	if label, ok := doc.TriageIndicator(); ok {
//	    fmt.Println(label) // Triaged in 1d 2h 5m
//	}
//	md, err := doc.SubmissionMarkdown()
package page
