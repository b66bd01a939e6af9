// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ipinfo looks up the machine's public IP address so it can be
// quoted in a comment or report.
package ipinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/crowdassist/internal/config"
)

// ErrNoIP is returned when the lookup service answers without an address.
var ErrNoIP = errors.New("lookup returned no IP address")

// Prefix introduces the address in inserted text.
const Prefix = "My IP is: "

// Client queries an ipify-style endpoint that answers {"ip": "..."}.
type Client struct {
	url        string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for url. An empty url uses the default.
func NewClient(url string, log zerolog.Logger) *Client {
	if url == "" {
		url = config.DefaultIPLookupURL
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("component", "ipinfo").Logger(),
	}
}

// Lookup returns the public IP address.
func (c *Client) Lookup(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch IP: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch IP: HTTP %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to parse IP response: %w", err)
	}

	ip := strings.TrimSpace(body.IP)
	if ip == "" {
		return "", ErrNoIP
	}
	if net.ParseIP(ip) == nil {
		c.log.Warn().Str("ip", ip).Msg("lookup returned an unparseable address")
	}
	return ip, nil
}

// Insert appends the IP line to text, separated by a blank line when text
// is not empty.
func Insert(text, ip string) string {
	line := Prefix + ip
	if text == "" {
		return line
	}
	return text + "\n\n" + line
}
