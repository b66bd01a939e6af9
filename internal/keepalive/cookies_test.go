// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package keepalive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDomain(t *testing.T) {
	tests := []struct {
		cookie, domain string
		want           bool
	}{
		{".bugcrowd.com", ".bugcrowd.com", true},
		{"bugcrowd.com", ".bugcrowd.com", true},
		{"login.hackers.bugcrowd.com", ".bugcrowd.com", true},
		{".login.hackers.bugcrowd.com", "bugcrowd.com", true},
		{"notbugcrowd.com", ".bugcrowd.com", false},
		{"bugcrowd.com.evil.io", ".bugcrowd.com", false},
		{"example.com", ".bugcrowd.com", false},
		{"", ".bugcrowd.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchDomain(tt.cookie, tt.domain), "%s vs %s", tt.cookie, tt.domain)
	}
}

func TestCookieHeader(t *testing.T) {
	assert.Equal(t, "", CookieHeader(nil))
	assert.Equal(t, "a=1", CookieHeader([]Cookie{{Name: "a", Value: "1"}}))
	assert.Equal(t, "a=1; b=2", CookieHeader([]Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}))
}

func TestStaticSource_Filters(t *testing.T) {
	src := StaticSource{
		{Name: "_session", Value: "abc", Domain: ".bugcrowd.com"},
		{Name: "other", Value: "x", Domain: "example.com"},
		{Name: "old", Value: "y", Domain: ".bugcrowd.com", Expires: time.Now().Add(-time.Hour)},
	}
	got, err := src.Cookies(context.Background(), ".bugcrowd.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "_session", got[0].Name)
}

const cookiesTxt = "# Netscape HTTP Cookie File\n" +
	"# exported for testing\n" +
	"\n" +
	".bugcrowd.com\tTRUE\t/\tTRUE\t0\t_crowdcontrol_session\tsess123\n" +
	"#HttpOnly_login.hackers.bugcrowd.com\tFALSE\t/\tTRUE\t4102444800\tauth\ttok=en\n" +
	".bugcrowd.com\tTRUE\t/\tFALSE\t946684800\texpired\tgone\n" +
	".example.com\tTRUE\t/\tFALSE\t0\tunrelated\tzzz\n" +
	"malformed line\n"

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte(cookiesTxt), 0600))

	src := NewFileSource(path)
	got, err := src.Cookies(context.Background(), ".bugcrowd.com")
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"_crowdcontrol_session", "auth"}, names)

	for _, c := range got {
		if c.Name == "auth" {
			assert.Equal(t, "tok=en", c.Value)
			assert.Equal(t, "login.hackers.bugcrowd.com", c.Domain)
			assert.False(t, c.Expires.IsZero())
		}
	}
}

func TestFileSource_Errors(t *testing.T) {
	_, err := NewFileSource("").Cookies(context.Background(), ".bugcrowd.com")
	assert.Error(t, err)

	_, err = NewFileSource(filepath.Join(t.TempDir(), "missing.txt")).Cookies(context.Background(), ".bugcrowd.com")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_DuplicateNameLastWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	data := ".bugcrowd.com\tTRUE\t/\tTRUE\t0\tsid\told\n" +
		".bugcrowd.com\tTRUE\t/\tTRUE\t0\tsid\tnew\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	got, err := NewFileSource(path).Cookies(context.Background(), ".bugcrowd.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Value)
}
