// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package duration_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/plated/plated/pkg/duration"
)

func TestParseISO(t *testing.T) {
	tests := []struct {
		token    string
		expected string
		ok       bool
	}{
		{"PT30M", "30 minutes", true},
		{"PT1M", "1 minute", true},
		{"PT1H", "1 hour", true},
		{"PT2H", "2 hours", true},
		{"PT1H30M", "1 hour 30 minutes", true},
		{"PT1H1M", "1 hour 1 minute", true},
		{"pt45m", "45 minutes", true},
		{" PT20M ", "20 minutes", true},
		// minutes above 59 carry into hours
		{"PT65M", "1 hour 5 minutes", true},
		{"PT120M", "2 hours", true},
		{"PT0M", "", false},
		{"PT", "", false},
		{"1H30M", "", false},
		{"", "", false},
		{"P1DT2H", "", false},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			s, ok := duration.ParseISO(test.token)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, s)
		})
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		minutes  int
		expected string
		ok       bool
	}{
		{1, "1 minute", true},
		{30, "30 minutes", true},
		{60, "1 hour", true},
		{61, "1 hour 1 minute", true},
		{90, "1 hour 30 minutes", true},
		{150, "2 hours 30 minutes", true},
		{0, "", false},
		{-5, "", false},
	}

	for _, test := range tests {
		s, ok := duration.Humanize(test.minutes)
		require.Equal(t, test.ok, ok)
		require.Equal(t, test.expected, s)
	}
}

func TestParseRangePolicy(t *testing.T) {
	for input, expected := range map[string]duration.RangePolicy{
		"":      duration.RangeUpper,
		"upper": duration.RangeUpper,
		"lower": duration.RangeLower,
		"mean":  duration.RangeMean,
		"Mean ": duration.RangeMean,
	} {
		p, err := duration.ParseRangePolicy(input)
		require.NoError(t, err)
		require.Equal(t, expected, p)
	}

	_, err := duration.ParseRangePolicy("sideways")
	require.Error(t, err)
}
