// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"regexp"
	"strings"
)

// Kind is the type of platform page a URL points at.
type Kind int

const (
	KindOther Kind = iota
	KindReportCreation
	KindReportView
)

func (k Kind) String() string {
	switch k {
	case KindReportCreation:
		return "report-creation"
	case KindReportView:
		return "report-view"
	default:
		return "other"
	}
}

var reportViewPattern = regexp.MustCompile(`/submissions/[a-f0-9-]{36}$`)

// IsReportCreation reports whether url is a new-report or edit-report page.
func IsReportCreation(url string) bool {
	if !strings.Contains(url, "/engagements/") {
		return false
	}
	return strings.Contains(url, "/submissions/new") ||
		(strings.Contains(url, "/submissions/") && strings.Contains(url, "/edit"))
}

// IsReportView reports whether url shows a single submitted report.
func IsReportView(url string) bool {
	return reportViewPattern.MatchString(url) && !strings.Contains(url, "/engagements/")
}

// Classify returns the page kind for url. Creation pages win over view
// pages, although the two patterns cannot both match.
func Classify(url string) Kind {
	switch {
	case IsReportCreation(url):
		return KindReportCreation
	case IsReportView(url):
		return KindReportView
	default:
		return KindOther
	}
}
