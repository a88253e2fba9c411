// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package ingredient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/plated/plated/pkg/ingredient"
)

func newParser(t *testing.T, options ...ingredient.Option) *ingredient.Parser {
	t.Helper()
	p, err := ingredient.NewParser(ingredient.DefaultVocabulary(), options...)
	require.NoError(t, err)
	return p
}

func TestParseLine(t *testing.T) {
	p := newParser(t)

	tests := []struct {
		line     string
		expected ingredient.Entry
	}{
		{
			"1 1/2 cups flour",
			ingredient.Entry{Name: "flour", Amount: 1.5, Unit: "cup"},
		},
		{
			"2 eggs",
			ingredient.Entry{Name: "eggs", Amount: 2},
		},
		{
			"½ cup sugar",
			ingredient.Entry{Name: "sugar", Amount: 0.5, Unit: "cup"},
		},
		{
			"1½ cups milk",
			ingredient.Entry{Name: "milk", Amount: 1.5, Unit: "cup"},
		},
		{
			"100 g dark chocolate",
			ingredient.Entry{Name: "dark chocolate", Amount: 100, Unit: "g"},
		},
		{
			"2-3 tablespoons olive oil",
			ingredient.Entry{Name: "olive oil", Amount: "2-3", Unit: "tablespoon"},
		},
		{
			"1 tbsp. butter",
			ingredient.Entry{Name: "butter", Amount: 1, Unit: "tablespoon"},
		},
		{
			"salt to taste",
			ingredient.Entry{Name: "salt"},
		},
		{
			"a pinch of salt",
			ingredient.Entry{Name: "salt", Amount: 1, Unit: "pinch"},
		},
		{
			"juice of one lemon",
			ingredient.Entry{Name: "juice lemon", Amount: 1},
		},
		{
			"two cups water",
			ingredient.Entry{Name: "water", Amount: 2, Unit: "cup"},
		},
		{
			"1 onion, chopped",
			ingredient.Entry{Name: "onion", Amount: 1, Modifier: "chopped"},
		},
		{
			"chopped walnuts",
			ingredient.Entry{Name: "walnuts", Modifier: "chopped"},
		},
		{
			"1 cup flour (sifted)",
			ingredient.Entry{Name: "flour", Amount: 1, Unit: "cup"},
		},
		{
			"3 large eggs",
			ingredient.Entry{Name: "large eggs", Amount: 3},
		},
		{
			"fresh basil leaves",
			ingredient.Entry{Name: "fresh basil leaves"},
		},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			assert := require.New(t)
			entry, ok := p.ParseLine(test.line)
			assert.True(ok)
			assert.Equal(test.expected, entry)
		})
	}
}

func TestParseLineDropped(t *testing.T) {
	p := newParser(t)

	tests := []string{
		"",
		"   ",
		"For the dough:",
		"-",
		"(optional)",
	}

	for _, line := range tests {
		t.Run("drop "+line, func(t *testing.T) {
			_, ok := p.ParseLine(line)
			require.False(t, ok)
		})
	}
}

// A section header carrying a digit is a real line, not a header.
func TestParseLineHeaderWithDigits(t *testing.T) {
	p := newParser(t)

	entry, ok := p.ParseLine("2 eggs:")
	require.True(t, ok)
	require.Equal(t, "eggs", entry.Name)
}

func TestParseLineRangePolicies(t *testing.T) {
	tests := []struct {
		policy   ingredient.RangePolicy
		expected any
	}{
		{ingredient.RangeVerbatim, "2-4"},
		{ingredient.RangeUpper, 4},
		{ingredient.RangeLower, 2},
		{ingredient.RangeMean, 3},
	}

	for _, test := range tests {
		p := newParser(t, ingredient.WithRangePolicy(test.policy))
		entry, ok := p.ParseLine("2-4 cloves garlic")
		require.True(t, ok)
		require.Equal(t, test.expected, entry.Amount)
		require.Equal(t, "clove", entry.Unit)
	}
}

func TestParseLineCustomVocabulary(t *testing.T) {
	vocab := ingredient.Vocabulary{
		Units: []ingredient.Unit{
			{Canonical: "tablespoon", Forms: []string{"kašike", "kašika"}},
			{Canonical: "g", Forms: []string{"grama", "gram", "g"}},
		},
		WordNumerals: map[string]float64{
			"jedan": 1, "jednog": 1, "dva": 2, "pola": 0.5,
		},
		Noise:   []string{"po ukusu"},
		OfWords: []string{"od"},
	}
	p, err := ingredient.NewParser(vocab)
	require.NoError(t, err)

	tests := []struct {
		line     string
		expected ingredient.Entry
	}{
		{
			"2 kašike šećera",
			ingredient.Entry{Name: "šećera", Amount: 2, Unit: "tablespoon"},
		},
		{
			"200 grama brašna",
			ingredient.Entry{Name: "brašna", Amount: 200, Unit: "g"},
		},
		{
			"sok od jednog limuna",
			ingredient.Entry{Name: "sok limuna", Amount: 1},
		},
		{
			"so po ukusu",
			ingredient.Entry{Name: "so"},
		},
		{
			"pola kašike soli",
			ingredient.Entry{Name: "soli", Amount: 0.5, Unit: "tablespoon"},
		},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			assert := require.New(t)
			entry, ok := p.ParseLine(test.line)
			assert.True(ok)
			assert.Equal(test.expected, entry)
		})
	}
}

// A descriptive adjective colliding with a unit form must stay in the
// name instead of becoming a unit.
func TestDescriptiveCollision(t *testing.T) {
	vocab := ingredient.DefaultVocabulary()
	vocab.Units = append(vocab.Units, ingredient.Unit{
		Canonical: "large", Forms: []string{"large"},
	})
	p, err := ingredient.NewParser(vocab)
	require.NoError(t, err)

	entry, ok := p.ParseLine("2 large onions")
	require.True(t, ok)
	require.Equal(t, "large onions", entry.Name)
	require.Empty(t, entry.Unit)
}

func TestCleanNameIdempotent(t *testing.T) {
	p := newParser(t)

	tests := []string{
		"flour (sifted), chopped",
		"the olive oil",
		"salt to taste,",
		"onions",
	}
	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			once := p.CleanName(s)
			require.Equal(t, once, p.CleanName(once))
		})
	}
}

func TestResolveUnit(t *testing.T) {
	p := newParser(t)

	for token, expected := range map[string]string{
		"cups":  "cup",
		"Cups":  "cup",
		"tbsp.": "tablespoon",
		"G":     "g",
	} {
		unit, ok := p.ResolveUnit(token)
		require.True(t, ok, token)
		require.Equal(t, expected, unit)
	}

	_, ok := p.ResolveUnit("eggs")
	require.False(t, ok)
}
