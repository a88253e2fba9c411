// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package ingredient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/plated/plated/pkg/ingredient"
)

func TestParseQuantity(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		token    string
		expected any
	}{
		{"", nil},
		{"1", 1},
		{"12", 12},
		{"1.5", 1.5},
		{"1,5", 1.5},
		{"1/2", 0.5},
		{"3/4", 0.75},
		{"1 1/2", 1.5},
		{"½", 0.5},
		{"¾", 0.75},
		{"1½", 1.5},
		{"2 ½", 2.5},
		{"⅓", 0.33},
		{"about 2", 2},
		{"~2", 2},
		{"approx. 3", 3},
		{"half", 0.5},
		{"2.0", 2},
		{"2-3", "2-3"},
		{"2–3", "2–3"},
		{"1/0", "1/0"},
		{"n/a", "n/a"},
	}

	for _, test := range tests {
		t.Run(test.token, func(t *testing.T) {
			require.Equal(t, test.expected, p.ParseQuantity(test.token))
		})
	}
}

func TestParseQuantityFractionGlyphs(t *testing.T) {
	p := newParser(t)

	glyphs := map[string]float64{
		"½": 0.5, "¼": 0.25, "¾": 0.75,
		"⅓": 0.33, "⅔": 0.67,
		"⅛": 0.125, "⅜": 0.375, "⅝": 0.625, "⅞": 0.875,
		"⅕": 0.2, "⅖": 0.4, "⅗": 0.6, "⅘": 0.8,
	}
	for glyph, expected := range glyphs {
		t.Run(glyph, func(t *testing.T) {
			v, ok := p.ParseQuantity(glyph).(float64)
			require.True(t, ok)
			require.InDelta(t, expected, v, 1e-9)
		})
	}
}

func TestParseQuantityRangePolicies(t *testing.T) {
	tests := []struct {
		policy   ingredient.RangePolicy
		expected any
	}{
		{ingredient.RangeVerbatim, "2-5"},
		{ingredient.RangeUpper, 5},
		{ingredient.RangeLower, 2},
		{ingredient.RangeMean, 3.5},
	}

	for _, test := range tests {
		p := newParser(t, ingredient.WithRangePolicy(test.policy))
		require.Equal(t, test.expected, p.ParseQuantity("2-5"))
	}
}
