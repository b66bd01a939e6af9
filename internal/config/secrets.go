// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

// =============================================================================
// TOKEN STORAGE
// =============================================================================

const (
	keyringService = "crowdassist"
	keyringUser    = "openai_token"
)

// ErrNoToken indicates no API token is configured anywhere.
var ErrNoToken = errors.New("Please set your OpenAI API token in the settings first.")

// SaveToken validates token and stores it in the OS keyring. When the
// keyring is unavailable the token is written to the config file instead.
// cfg is updated and saved either way.
func SaveToken(cfg *Config, token string) error {
	token = strings.TrimSpace(token)
	if err := ValidateToken(token); err != nil {
		return err
	}

	if err := keyring.Set(keyringService, keyringUser, token); err == nil {
		cfg.OpenAI.Token = ""
		cfg.OpenAI.TokenInKeyring = true
	} else {
		cfg.OpenAI.Token = token
		cfg.OpenAI.TokenInKeyring = false
	}

	if err := Save(cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LoadToken returns the effective API token. A token in the config (or
// from the environment) wins over the keyring.
func LoadToken(cfg *Config) (string, error) {
	if cfg.OpenAI.Token != "" {
		return cfg.OpenAI.Token, nil
	}
	if !cfg.OpenAI.TokenInKeyring {
		return "", ErrNoToken
	}

	token, err := keyring.Get(keyringService, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

// ClearToken removes the token from the keyring and the config.
func ClearToken(cfg *Config) error {
	if cfg.OpenAI.TokenInKeyring {
		if err := keyring.Delete(keyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("failed to remove token from keyring: %w", err)
		}
	}
	cfg.OpenAI.Token = ""
	cfg.OpenAI.TokenInKeyring = false
	return Save(cfg)
}
