// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package duration converts machine duration tokens (ISO-8601 "PT1H30M")
// and cooking prose ("bake for 25-30 minutes") into human time phrases.
// Output is always a phrase or nothing, never a machine-format string.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RangePolicy selects the bound used when prose contains a numeric
// range ("25-30 minutes").
type RangePolicy uint8

const (
	// RangeUpper takes the upper bound.
	RangeUpper RangePolicy = iota
	// RangeLower takes the lower bound.
	RangeLower
	// RangeMean takes the average of both bounds.
	RangeMean
)

// ParseRangePolicy returns the policy matching a profile value.
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "upper":
		return RangeUpper, nil
	case "lower":
		return RangeLower, nil
	case "mean", "average":
		return RangeMean, nil
	}
	return 0, fmt.Errorf("unknown range policy %q", s)
}

var (
	rxISOHours   = regexp.MustCompile(`(\d+)\s*H`)
	rxISOMinutes = regexp.MustCompile(`(\d+)\s*M`)
)

// ParseISO converts an ISO-8601 duration token into a human phrase.
// Hour and minute components are tested independently; when minutes
// reach 60 without an explicit hour component, the excess carries into
// hours. A token without any non-zero component yields false.
func ParseISO(token string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	if !strings.HasPrefix(t, "PT") {
		return "", false
	}
	t = t[2:]

	hours, minutes := 0, 0
	if m := rxISOHours.FindStringSubmatch(t); m != nil {
		hours, _ = strconv.Atoi(m[1])
	}
	if m := rxISOMinutes.FindStringSubmatch(t); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}
	if hours == 0 && minutes >= 60 {
		hours = minutes / 60
		minutes = minutes % 60
	}

	return Humanize(hours*60 + minutes)
}

// Humanize renders a minute count as "<n> hour[s] [<m> minute[s]]".
// Zero or negative minutes yield false.
func Humanize(total int) (string, bool) {
	if total <= 0 {
		return "", false
	}
	hours, minutes := total/60, total%60

	parts := []string{}
	if hours == 1 {
		parts = append(parts, "1 hour")
	} else if hours > 1 {
		parts = append(parts, strconv.Itoa(hours)+" hours")
	}
	if minutes == 1 {
		parts = append(parts, "1 minute")
	} else if minutes > 1 {
		parts = append(parts, strconv.Itoa(minutes)+" minutes")
	}
	return strings.Join(parts, " "), true
}
