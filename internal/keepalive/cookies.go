// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// =============================================================================
// COOKIES
// =============================================================================

// Cookie is a browser cookie reduced to what the refresh request needs.
type Cookie struct {
	Name    string
	Value   string
	Domain  string
	Expires time.Time // zero for session cookies
}

// CookieSource supplies the logged-in browser's cookies for a domain.
type CookieSource interface {
	Cookies(ctx context.Context, domain string) ([]Cookie, error)
}

// MatchDomain reports whether a cookie set for cookieDomain is sent to
// hosts under domain. Both may carry a leading dot.
func MatchDomain(cookieDomain, domain string) bool {
	c := strings.ToLower(strings.TrimPrefix(cookieDomain, "."))
	d := strings.ToLower(strings.TrimPrefix(domain, "."))
	if c == "" || d == "" {
		return false
	}
	return c == d || strings.HasSuffix(c, "."+d)
}

// CookieHeader joins cookies as "name=value; name2=value2".
func CookieHeader(cookies []Cookie) string {
	return strings.Join(lo.Map(cookies, func(c Cookie, _ int) string {
		return c.Name + "=" + c.Value
	}), "; ")
}

// filterCookies keeps unexpired cookies for domain, last one wins on
// duplicate names.
func filterCookies(cookies []Cookie, domain string, now time.Time) []Cookie {
	matched := lo.Filter(cookies, func(c Cookie, _ int) bool {
		if !MatchDomain(c.Domain, domain) {
			return false
		}
		return c.Expires.IsZero() || c.Expires.After(now)
	})
	uniq := lo.UniqBy(lo.Reverse(matched), func(c Cookie) string { return c.Name + "\x00" + c.Domain })
	return lo.Reverse(uniq)
}

// =============================================================================
// STATIC SOURCE
// =============================================================================

// StaticSource serves a fixed cookie list.
type StaticSource []Cookie

// Cookies implements CookieSource.
func (s StaticSource) Cookies(_ context.Context, domain string) ([]Cookie, error) {
	return filterCookies(append([]Cookie(nil), s...), domain, time.Now()), nil
}

// =============================================================================
// FILE SOURCE
// =============================================================================

// FileSource reads a Netscape cookies.txt export, the format browser
// "export cookies" extensions and curl produce. The file is re-read on
// every call so a fresh export is picked up without a restart.
type FileSource struct {
	Path string
	now  func() time.Time
}

// NewFileSource creates a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, now: time.Now}
}

// Cookies implements CookieSource.
func (f *FileSource) Cookies(_ context.Context, domain string) ([]Cookie, error) {
	if f.Path == "" {
		return nil, fmt.Errorf("no cookies file configured (set session.cookies_file)")
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cookies file: %w", err)
	}
	defer file.Close()

	cookies, err := ParseNetscape(bufio.NewScanner(file))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies file: %w", err)
	}

	now := time.Now
	if f.now != nil {
		now = f.now
	}
	return filterCookies(cookies, domain, now()), nil
}

const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscape parses cookies.txt lines:
//
//	domain  include-subdomains  path  secure  expiry  name  value
//
// Comment and blank lines are skipped. Lines prefixed with #HttpOnly_ are
// cookies, not comments.
func ParseNetscape(sc *bufio.Scanner) ([]Cookie, error) {
	var cookies []Cookie
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, httpOnlyPrefix) {
			line = strings.TrimPrefix(line, httpOnlyPrefix)
		} else if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}

		c := Cookie{
			Domain: fields[0],
			Name:   fields[5],
			Value:  strings.Join(fields[6:], "\t"),
		}
		if exp, err := strconv.ParseInt(fields[4], 10, 64); err == nil && exp > 0 {
			c.Expires = time.Unix(exp, 0)
		}
		cookies = append(cookies, c)
	}
	return cookies, sc.Err()
}
