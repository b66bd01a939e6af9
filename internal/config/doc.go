// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for crowdassist.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env files, environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - OpenAIConfig: Completion API token, endpoint and model
//   - SessionConfig: Keep-alive schedule and cookie source
//   - UIConfig: Theme mode and privacy mode
//   - Watcher: fsnotify-based reloader that reports changed keys
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CROWDASSIST_*), including values from .env
//   - ~/.crowdassist/config.toml
//   - ~/.crowdassist/config.json
//   - Built-in defaults
//
// The API token is kept in the OS keyring when one is available
// (see SaveToken and LoadToken).
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//
// React to edits:
//
//	w, _ := config.NewWatcher(cfg, log)
//	w.OnChange(func(old, updated *config.Config, changed []string) {
//	    if config.Changed(changed, "session.auto_renew") {
//	        scheduler.SetEnabled(updated.Session.AutoRenew)
//	    }
//	})
//	_ = w.Start()
package config
