// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive commands
// of crowdassist.
//
// Every feature of the reply composer is also reachable from the shell so it
// can be scripted against saved submission pages.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global flags and an ArgParser
//   - App: Shared dependencies (config, logger, writers, lazily opened stores)
//   - UsageError, CommandError: Errors mapped to exit codes
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	app := cli.NewApp(cfg, log)
//	switch cmd {
//	case cli.CmdReview:
//	    err = cli.HandleReview(ctx, app, args)
//	case cli.CmdTriage:
//	    err = cli.HandleTriage(app, args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Composer:
//   - tui: Full-screen reply composer (default)
//   - mention: Run the @mention matcher over a text
//
// Assistant:
//   - review, reply, report: Suggestions from the completion API
//   - drafts: Browse saved suggestions
//
// Page tools:
//   - export, triage, redact, classify
//
// Session:
//   - keepalive, refresh, ip
//
// All data-producing commands support the --json flag.
package cli
