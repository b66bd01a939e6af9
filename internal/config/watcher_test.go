// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestWatcher_ReloadReportsChangedKeys(t *testing.T) {
	t.Cleanup(ResetGlobalForTesting)

	next := Default()
	next.Session.AutoRenew = false
	next.UI.PrivacyMode = true

	w, err := NewWatcherForDir(t.TempDir(), Default(), func() (*Config, error) { return next, nil }, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var calls int
	var got []string
	w.OnChange(func(old, updated *Config, changed []string) {
		calls++
		got = changed
		if !old.Session.AutoRenew || updated.Session.AutoRenew {
			t.Error("listener received wrong old/updated configs")
		}
	})

	w.Reload()
	if calls != 1 {
		t.Fatalf("listener called %d times, want 1", calls)
	}
	if !Changed(got, "session.auto_renew") || !Changed(got, "ui.privacy_mode") || len(got) != 2 {
		t.Errorf("changed = %v", got)
	}
	if w.Current() != next {
		t.Error("Current() should return the reloaded config")
	}
	if Global() != next {
		t.Error("reload should publish the new global config")
	}

	// Same content again: nothing to report.
	w.Reload()
	if calls != 1 {
		t.Errorf("unchanged reload notified listeners")
	}
}

func TestWatcher_ReloadErrorKeepsPrevious(t *testing.T) {
	current := Default()
	w, err := NewWatcherForDir(t.TempDir(), current, func() (*Config, error) {
		return nil, errors.New("parse error")
	}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	w.OnChange(func(_, _ *Config, _ []string) { t.Error("listener should not run") })
	w.Reload()

	if w.Current() != current {
		t.Error("failed reload replaced the config")
	}
}

func TestIsConfigFile(t *testing.T) {
	for name, want := range map[string]bool{
		"/h/.crowdassist/config.toml": true,
		"/h/.crowdassist/config.json": true,
		"/h/.crowdassist/.env":        true,
		"/h/.crowdassist/drafts.db":   false,
		"/h/.crowdassist/.tmp-1234":   false,
	} {
		if got := isConfigFile(name); got != want {
			t.Errorf("isConfigFile(%q) = %v, want %v", name, got, want)
		}
	}
}
