// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// ChromeSource reads cookies from a running Chrome started with
// --remote-debugging-port, so the session of the everyday browser profile
// is kept alive.
type ChromeSource struct {
	// DevToolsURL is the browser's debugging endpoint, e.g.
	// http://127.0.0.1:9222 or a ws:// URL.
	DevToolsURL string

	// URLs whose cookies are requested. Defaults cover the login and main
	// platform hosts.
	URLs []string

	Timeout time.Duration
}

// NewChromeSource creates a source for the browser at devToolsURL.
func NewChromeSource(devToolsURL string) *ChromeSource {
	return &ChromeSource{
		DevToolsURL: devToolsURL,
		URLs: []string{
			"https://login.hackers.bugcrowd.com/",
			"https://bugcrowd.com/",
		},
		Timeout: 15 * time.Second,
	}
}

// Cookies implements CookieSource.
func (s *ChromeSource) Cookies(ctx context.Context, domain string) ([]Cookie, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, s.DevToolsURL)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var raw []*network.Cookie
	err := chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		raw, err = network.GetCookies().WithUrls(s.URLs).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies from browser at %s: %w", devToolsHost(s.DevToolsURL), err)
	}

	cookies := make([]Cookie, 0, len(raw))
	for _, c := range raw {
		ck := Cookie{Name: c.Name, Value: c.Value, Domain: c.Domain}
		if !c.Session && c.Expires > 0 {
			ck.Expires = time.Unix(int64(c.Expires), 0)
		}
		cookies = append(cookies, ck)
	}
	return filterCookies(cookies, domain, time.Now()), nil
}

// devToolsHost strips the scheme for log output.
func devToolsHost(u string) string {
	for _, p := range []string{"http://", "https://", "ws://", "wss://"} {
		u = strings.TrimPrefix(u, p)
	}
	return u
}
