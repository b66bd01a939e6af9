// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for crowdassist.
//
// Command: config [subcommand]
// Short:   View and modify settings
//
// Subcommands:
//   show (default)      Display current settings
//   set <key> <value>   Set a setting (dotted key)
//   path                Show the settings file path
//   token set [TOKEN]   Store the API token (prompts when omitted)
//   token test          Check the stored token against the API
//   token clear         Remove the stored token
//
// Examples:
//   crowdassist config set ui.theme_mode dark
//   crowdassist config set session.auto_renew false
//   crowdassist config set session.cookie_source chrome
//   crowdassist config token set

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/crowdassist/internal/config"
	"github.com/jeranaias/crowdassist/internal/openai"
)

// HandleConfig handles the "config" command.
func HandleConfig(ctx context.Context, app *App, args Args) error {
	p := args.Parser
	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			fmt.Fprintln(app.Stdout, app.Config.String())
			return nil
		}
		return handleConfigShow(app)

	case "set":
		return handleConfigSet(app, p.Positional(1), JoinPositionalArgs(p, 2))

	case "get":
		key := p.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "crowdassist config get ui.theme_mode")
		}
		v, err := app.Config.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(app.Stdout, maskIfSecret(key, fmt.Sprint(v)))
		return nil

	case "path":
		return handleConfigPath(app, args.JSON)

	case "token":
		switch p.Positional(1) {
		case "set":
			return handleTokenSet(app, p.Positional(2))
		case "test":
			return handleTokenTest(ctx, app)
		case "clear":
			if err := config.ClearToken(app.Config); err != nil {
				return err
			}
			fmt.Fprintf(app.Stdout, "%s API token removed\n", RenderStatus("ok"))
			return nil
		default:
			return ErrInvalidValue("token subcommand", p.Positional(1), "set, test or clear")
		}

	default:
		return fmt.Errorf("unknown config subcommand: %s", args.Subcommand)
	}
}

// handleConfigShow displays the current settings.
func handleConfigShow(app *App) error {
	cfg := app.Config
	w := app.Stdout
	row := func(key, value string) {
		fmt.Fprintf(w, "  %s%s\n", RenderLabel(key+":", 26), ValueStyle.Render(value))
	}

	fmt.Fprintln(w, TitleStyle.Render("crowdassist settings"))

	fmt.Fprintln(w, SectionStyle.Render("[openai]"))
	row("token", tokenState(cfg))
	row("base_url", cfg.OpenAI.BaseURL)
	row("model", cfg.OpenAI.Model)
	row("timeout_secs", fmt.Sprint(cfg.OpenAI.TimeoutSecs))

	fmt.Fprintln(w, SectionStyle.Render("[session]"))
	row("auto_renew", yesNo(cfg.Session.AutoRenew))
	row("refresh_interval_minutes", fmt.Sprint(cfg.Session.RefreshIntervalMinutes))
	row("refresh_url", cfg.Session.RefreshURL)
	row("cookie_domain", cfg.Session.CookieDomain)
	row("cookie_source", cfg.Session.CookieSource)
	row("cookies_file", orUnset(cfg.Session.CookiesFile))
	row("devtools_url", cfg.Session.DevToolsURL)

	fmt.Fprintln(w, SectionStyle.Render("[ui]"))
	row("theme_mode", cfg.UI.ThemeMode)
	row("privacy_mode", yesNo(cfg.UI.PrivacyMode))
	row("export_dir", cfg.UI.ExportDir)

	fmt.Fprintln(w, SectionStyle.Render("[network]"))
	row("ip_lookup_url", cfg.Network.IPLookupURL)

	fmt.Fprintln(w, SectionStyle.Render("[logging]"))
	row("level", cfg.Logging.Level)
	row("file", orUnset(cfg.Logging.File))

	fmt.Fprintln(w)
	if path, err := config.ConfigPathTOML(); err == nil {
		fmt.Fprintf(w, "Config file: %s\n", DimStyle.Render(path))
	}
	return nil
}

// handleConfigSet sets a configuration value.
func handleConfigSet(app *App, key, value string) error {
	if key == "" {
		return ErrMissingArgument("key", "crowdassist config set <key> <value>")
	}
	if value == "" {
		return ErrMissingArgument("value", fmt.Sprintf("crowdassist config set %s <value>", key))
	}

	key = strings.ToLower(key)
	if key == "openai.token" {
		return handleTokenSet(app, value)
	}

	cfg := app.Config.Clone()
	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Field: "key", Value: key, Reason: err.Error(),
			Example: "keys: " + strings.Join(config.GetAllKeys(), ", ")}
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	*app.Config = *cfg

	fmt.Fprintf(app.Stdout, "%s %s = %s\n", RenderStatus("ok"), key, maskIfSecret(key, value))
	return nil
}

// handleConfigPath shows the config file path.
func handleConfigPath(app *App, jsonMode bool) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if jsonMode {
		return outputJSON(app.Stdout, map[string]interface{}{"path": path, "exists": exists})
	}
	fmt.Fprintln(app.Stdout, path)
	if !exists {
		fmt.Fprintf(app.Stderr, "%s (file does not exist - will be created on first save)\n",
			DimStyle.Render("Note"))
	}
	return nil
}

// =============================================================================
// TOKEN
// =============================================================================

func handleTokenSet(app *App, token string) error {
	if token == "" {
		if !app.Interactive {
			return ErrMissingArgument("token", "crowdassist config token set sk-...")
		}
		prompter := app.NewPrompter()
		var err error
		token, err = ask(prompter, "OpenAI API token: ", true)
		prompter.Close()
		if err != nil {
			return err
		}
	}

	if err := config.SaveToken(app.Config, token); err != nil {
		return err
	}
	where := "config file"
	if app.Config.OpenAI.TokenInKeyring {
		where = "system keyring"
	}
	fmt.Fprintf(app.Stdout, "%s Token saved to the %s (fingerprint %s)\n",
		RenderStatus("ok"), where, openai.KeyFingerprint(strings.TrimSpace(token)))
	return nil
}

func handleTokenTest(ctx context.Context, app *App) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := client.TestConnection(ctx); err != nil {
		return NewCommandError("token", "test", "the API rejected the request", err)
	}
	fmt.Fprintf(app.Stdout, "%s Token works (fingerprint %s)\n", RenderStatus("ok"), client.KeyFingerprint())
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func tokenState(cfg *config.Config) string {
	switch {
	case cfg.OpenAI.Token != "":
		return "set in config (fingerprint " + openai.KeyFingerprint(cfg.OpenAI.Token) + ")"
	case cfg.OpenAI.TokenInKeyring:
		return "stored in system keyring"
	default:
		return "(not set)"
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

// maskIfSecret hides values of secret keys.
func maskIfSecret(key, value string) string {
	keyLower := strings.ToLower(key)
	for _, s := range []string{"key", "secret", "token", "password"} {
		if strings.Contains(keyLower, s) {
			return "fingerprint " + openai.KeyFingerprint(value)
		}
	}
	return value
}
