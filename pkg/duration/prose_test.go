// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package duration_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/plated/plated/pkg/duration"
)

func testUnits() map[string]int {
	return map[string]int{
		"minutes": 1, "minute": 1, "min": 1,
		"hours": 60, "hour": 60,
	}
}

func TestScan(t *testing.T) {
	s := duration.NewScanner(
		[]string{"bake", "cook", "simmer"},
		testUnits(),
		map[string]int{"half an hour": 30},
		duration.RangeUpper,
	)

	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"Bake for 25-30 minutes until golden.", "30 minutes", true},
		{"Cook the rice for 1 hour.", "1 hour", true},
		{"Bake at 200 degrees for 25 minutes.", "25 minutes", true},
		{"Bakes in 20 minutes.", "20 minutes", true},
		{"Simmer gently for 45 min.", "45 minutes", true},
		{"Let it rest for half an hour before serving.", "30 minutes", true},
		{"Mix everything together well.", "", false},
		// a bare number with no verb anchor is ignored
		{"Serves 4 people in 2 portions.", "", false},
		{"", "", false},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			out, ok := s.Scan(test.text)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, out)
		})
	}
}

func TestScanRangePolicies(t *testing.T) {
	text := "Bake for 20-30 minutes."

	tests := []struct {
		policy   duration.RangePolicy
		expected string
	}{
		{duration.RangeUpper, "30 minutes"},
		{duration.RangeLower, "20 minutes"},
		{duration.RangeMean, "25 minutes"},
	}

	for _, test := range tests {
		s := duration.NewScanner([]string{"bake"}, testUnits(), nil, test.policy)
		out, ok := s.Scan(text)
		require.True(t, ok)
		require.Equal(t, test.expected, out)
	}
}

func TestScanToken(t *testing.T) {
	s := duration.NewScanner(nil, testUnits(), map[string]int{"half an hour": 30}, duration.RangeUpper)

	tests := []struct {
		text     string
		expected string
		ok       bool
	}{
		{"45 min", "45 minutes", true},
		{"1 hour", "1 hour", true},
		{"1-2 hours", "2 hours", true},
		{"Prep time: 15 minutes", "15 minutes", true},
		{"half an hour", "30 minutes", true},
		{"no time here", "", false},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			out, ok := s.ScanToken(test.text)
			require.Equal(t, test.ok, ok)
			require.Equal(t, test.expected, out)
		})
	}

	// a scanner without verbs never matches full prose
	_, ok := s.Scan("Bake for 20 minutes.")
	require.False(t, ok)
}
