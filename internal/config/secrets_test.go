// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSaveToken_Keyring(t *testing.T) {
	isolate(t)
	keyring.MockInit()

	cfg := Default()
	if err := SaveToken(cfg, "  sk-test-123  "); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	if !cfg.OpenAI.TokenInKeyring || cfg.OpenAI.Token != "" {
		t.Errorf("token should live in the keyring, got %+v", cfg.OpenAI)
	}

	path, _ := ConfigPathTOML()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "sk-test-123") {
		t.Error("token written to config file despite keyring")
	}

	got, err := LoadToken(cfg)
	if err != nil || got != "sk-test-123" {
		t.Errorf("LoadToken() = %q, %v", got, err)
	}
}

func TestSaveToken_KeyringUnavailable(t *testing.T) {
	isolate(t)
	keyring.MockInitWithError(errors.New("no secret service"))

	cfg := Default()
	if err := SaveToken(cfg, "sk-fallback"); err != nil {
		t.Fatalf("SaveToken() error = %v", err)
	}
	if cfg.OpenAI.TokenInKeyring || cfg.OpenAI.Token != "sk-fallback" {
		t.Errorf("token should fall back to config, got %+v", cfg.OpenAI)
	}

	got, err := LoadToken(cfg)
	if err != nil || got != "sk-fallback" {
		t.Errorf("LoadToken() = %q, %v", got, err)
	}
}

func TestSaveToken_Invalid(t *testing.T) {
	isolate(t)
	keyring.MockInit()

	if err := SaveToken(Default(), ""); !errors.Is(err, ErrTokenEmpty) {
		t.Errorf("SaveToken(\"\") = %v, want ErrTokenEmpty", err)
	}
	if err := SaveToken(Default(), "abc"); !errors.Is(err, ErrTokenPrefix) {
		t.Errorf("SaveToken(abc) = %v, want ErrTokenPrefix", err)
	}
}

func TestLoadToken_Missing(t *testing.T) {
	keyring.MockInit()

	if _, err := LoadToken(Default()); !errors.Is(err, ErrNoToken) {
		t.Errorf("LoadToken() = %v, want ErrNoToken", err)
	}

	cfg := Default()
	cfg.OpenAI.TokenInKeyring = true
	if _, err := LoadToken(cfg); !errors.Is(err, ErrNoToken) {
		t.Errorf("LoadToken() with empty keyring = %v, want ErrNoToken", err)
	}
}

func TestClearToken(t *testing.T) {
	isolate(t)
	keyring.MockInit()

	cfg := Default()
	if err := SaveToken(cfg, "sk-gone"); err != nil {
		t.Fatal(err)
	}
	if err := ClearToken(cfg); err != nil {
		t.Fatalf("ClearToken() error = %v", err)
	}
	if _, err := LoadToken(cfg); !errors.Is(err, ErrNoToken) {
		t.Errorf("LoadToken() after clear = %v, want ErrNoToken", err)
	}
}
