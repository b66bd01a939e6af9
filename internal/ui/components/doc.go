// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the composer's reusable views.
//
// # Key Types
//
//   - MentionPopup: scrolling "@name" match list with a highlighted entry
//   - Modal: generated-text preview with Cancel and a primary button
//   - StatusBar: notices, keep-alive state, triage indicator and shortcuts
//   - Spinner: in-flight request indicator
package components
