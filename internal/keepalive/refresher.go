// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/config"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrNoCookies means the cookie source had nothing for the platform domain.
var ErrNoCookies = errors.New("no session cookies found, user may not be logged in")

// StatusError is a refresh request answered with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("session refresh failed: %s", e.Status)
}

// =============================================================================
// REFRESHER
// =============================================================================

// Refresher performs a single session refresh.
type Refresher struct {
	URL    string
	Domain string
	Source CookieSource

	client *http.Client
	log    zerolog.Logger
}

// NewRefresher creates a refresher posting to url with cookies for domain.
// Empty url and domain fall back to the platform defaults.
func NewRefresher(url, domain string, src CookieSource, log zerolog.Logger) *Refresher {
	if url == "" {
		url = config.DefaultRefreshURL
	}
	if domain == "" {
		domain = config.DefaultCookieDomain
	}
	return &Refresher{
		URL:    url,
		Domain: domain,
		Source: src,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.With().Str("component", "keepalive").Logger(),
	}
}

// NewRefresherFromConfig builds a refresher and its cookie source from the
// session settings.
func NewRefresherFromConfig(cfg config.SessionConfig, log zerolog.Logger) (*Refresher, error) {
	src, err := SourceFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewRefresher(cfg.RefreshURL, cfg.CookieDomain, src, log), nil
}

// SourceFromConfig picks the cookie source named by cfg.CookieSource.
func SourceFromConfig(cfg config.SessionConfig) (CookieSource, error) {
	switch cfg.CookieSource {
	case "", config.CookieSourceFile:
		return NewFileSource(cfg.CookiesFile), nil
	case config.CookieSourceChrome:
		if cfg.DevToolsURL == "" {
			return nil, fmt.Errorf("cookie_source is chrome but devtools_url is empty")
		}
		return NewChromeSource(cfg.DevToolsURL), nil
	default:
		return nil, fmt.Errorf("unknown cookie source %q (use file or chrome)", cfg.CookieSource)
	}
}

// Refresh posts the refresh request with the current session cookies.
func (r *Refresher) Refresh(ctx context.Context) error {
	if r.Source == nil {
		return ErrNoCookies
	}
	cookies, err := r.Source.Cookies(ctx, r.Domain)
	if err != nil {
		r.log.Error().Err(err).Msg("Error refreshing session")
		return err
	}
	if len(cookies) == 0 {
		r.log.Warn().Str("domain", r.Domain).Msg("No session cookies found, user may not be logged in")
		return ErrNoCookies
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cookie", CookieHeader(cookies))

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Error().Err(err).Msg("Error refreshing session")
		return fmt.Errorf("session refresh request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.log.Warn().Int("status", resp.StatusCode).Str("status_text", resp.Status).Msg("Session refresh failed")
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	r.log.Info().Int("status", resp.StatusCode).Int("cookies", len(cookies)).Msg("Session refreshed successfully")
	return nil
}
