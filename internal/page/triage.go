// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package page

import (
	"fmt"
	"strings"
	"time"
)

// StatusTriaged is the only status that gets a triage indicator.
const StatusTriaged = "Triaged"

// TriageInfo describes how long a report waited for triage.
type TriageInfo struct {
	SubmittedAt time.Time
	TriagedAt   time.Time
	Duration    time.Duration
}

// Indicator returns the "Triaged in ..." label.
func (t TriageInfo) Indicator() string {
	return "Triaged in " + FormatTriage(t.Duration)
}

// Tooltip returns both timestamps in local time.
func (t TriageInfo) Tooltip() string {
	return fmt.Sprintf("Submitted: %s\nTriaged: %s",
		t.SubmittedAt.Local().Format(time.RFC1123), t.TriagedAt.Local().Format(time.RFC1123))
}

// TriageDuration returns the time from submission to triage, never
// negative, truncated to whole minutes.
func TriageDuration(submitted, triaged time.Time) time.Duration {
	d := triaged.Sub(submitted)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Minute)
}

// FormatTriage formats d as "2d 3h 15m". Days and hours are omitted when
// zero; minutes are always present.
func FormatTriage(d time.Duration) string {
	minutes := int64(d / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	days := minutes / (60 * 24)
	hours := (minutes % (60 * 24)) / 60
	mins := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	parts = append(parts, fmt.Sprintf("%dm", mins))
	return strings.Join(parts, " ")
}

// Triage gathers the triage timing of a triaged report. ok is false when
// the status is not exactly "Triaged" or a timestamp is missing.
func (d *Document) Triage() (TriageInfo, bool) {
	status, err := d.Status()
	if err != nil || status != StatusTriaged {
		return TriageInfo{}, false
	}
	submitted, err := d.SubmittedAt()
	if err != nil {
		return TriageInfo{}, false
	}
	triaged, err := d.TriagedAt()
	if err != nil {
		return TriageInfo{}, false
	}
	return TriageInfo{
		SubmittedAt: submitted,
		TriagedAt:   triaged,
		Duration:    TriageDuration(submitted, triaged),
	}, true
}

// TriageIndicator returns the "Triaged in ..." label for a triaged report.
func (d *Document) TriageIndicator() (string, bool) {
	info, ok := d.Triage()
	if !ok {
		return "", false
	}
	return info.Indicator(), true
}
