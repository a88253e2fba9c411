// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package ingredient

// Vocabulary holds the locale-specific word lists used by a [Parser].
// It is plain data, usually loaded from a profile file, so that one
// parser implementation serves every locale.
type Vocabulary struct {
	// Units maps surface forms to canonical unit labels.
	Units []Unit `yaml:"units"`

	// WordNumerals maps spelled-out numbers to their value
	// ("one" -> 1, "pola" -> 0.5).
	WordNumerals map[string]float64 `yaml:"word_numerals"`

	// Approximations are markers stripped from quantity tokens
	// ("about", "ca.", "circa").
	Approximations []string `yaml:"approximations"`

	// Noise are phrases removed from ingredient names
	// ("to taste", "po ukusu").
	Noise []string `yaml:"noise"`

	// PrepWords are preparation verbs relocated from the head of a name
	// into the entry modifier ("chopped", "grated").
	PrepWords []string `yaml:"prep_words"`

	// Descriptive are adjectives that must never act as units
	// ("large", "small"). Any unit form colliding with this list is
	// dropped at compile time so the word stays in the name.
	Descriptive []string `yaml:"descriptive"`

	// Articles are leading articles and prepositions trimmed from names.
	Articles []string `yaml:"articles"`

	// OfWords link a noun phrase to an embedded numeral
	// ("juice of one lemon", "sok od jednog limuna").
	OfWords []string `yaml:"of_words"`

	// Idioms are fixed patterns carrying an implied amount and unit.
	Idioms []Idiom `yaml:"idioms"`
}

// Unit maps a set of surface forms to one canonical label.
type Unit struct {
	Canonical string   `yaml:"canonical"`
	Forms     []string `yaml:"forms"`
}

// Idiom is a line pattern with a fixed implied amount and unit.
// The pattern must contain exactly one capture group for the name.
type Idiom struct {
	Pattern string  `yaml:"pattern"`
	Amount  float64 `yaml:"amount"`
	Unit    string  `yaml:"unit"`
}

// DefaultVocabulary returns the English baseline vocabulary.
// Profiles without an explicit vocabulary fall back to it.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Units: []Unit{
			{Canonical: "cup", Forms: []string{"cups", "cup", "c."}},
			{Canonical: "tablespoon", Forms: []string{"tablespoons", "tablespoon", "tbsp.", "tbsp", "tbs"}},
			{Canonical: "teaspoon", Forms: []string{"teaspoons", "teaspoon", "tsp.", "tsp"}},
			{Canonical: "g", Forms: []string{"grams", "gram", "gr", "g"}},
			{Canonical: "kg", Forms: []string{"kilograms", "kilogram", "kg"}},
			{Canonical: "ml", Forms: []string{"milliliters", "millilitres", "milliliter", "millilitre", "ml"}},
			{Canonical: "l", Forms: []string{"liters", "litres", "liter", "litre", "l"}},
			{Canonical: "dl", Forms: []string{"deciliters", "deciliter", "dl"}},
			{Canonical: "oz", Forms: []string{"ounces", "ounce", "oz"}},
			{Canonical: "lb", Forms: []string{"pounds", "pound", "lbs", "lb"}},
			{Canonical: "pinch", Forms: []string{"pinches", "pinch"}},
			{Canonical: "dash", Forms: []string{"dashes", "dash"}},
			{Canonical: "clove", Forms: []string{"cloves", "clove"}},
			{Canonical: "slice", Forms: []string{"slices", "slice"}},
			{Canonical: "piece", Forms: []string{"pieces", "piece", "pcs"}},
			{Canonical: "can", Forms: []string{"cans", "can"}},
			{Canonical: "package", Forms: []string{"packages", "package", "pkg"}},
			{Canonical: "bunch", Forms: []string{"bunches", "bunch"}},
			{Canonical: "handful", Forms: []string{"handfuls", "handful"}},
			{Canonical: "stick", Forms: []string{"sticks", "stick"}},
			{Canonical: "pint", Forms: []string{"pints", "pint"}},
			{Canonical: "quart", Forms: []string{"quarts", "quart"}},
		},
		WordNumerals: map[string]float64{
			"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"half": 0.5, "quarter": 0.25, "dozen": 12,
		},
		Approximations: []string{
			"about", "approximately", "approx.", "approx", "around",
			"roughly", "circa", "ca.", "~",
		},
		Noise: []string{
			"to taste", "as needed", "optional", "for garnish",
			"for serving", "if needed", "or more", "divided",
			"plus more",
		},
		PrepWords: []string{
			"chopped", "grated", "minced", "diced", "sliced", "shredded",
			"crushed", "melted", "softened", "beaten", "peeled",
		},
		Descriptive: []string{"large", "small", "medium", "whole", "big", "tiny"},
		Articles:    []string{"a", "an", "the", "of"},
		OfWords:     []string{"of"},
		Idioms: []Idiom{
			{Pattern: `(?i)^(?:a\s+)?pinch\s+of\s+(.+)$`, Amount: 1, Unit: "pinch"},
			{Pattern: `(?i)^(?:a\s+)?dash\s+of\s+(.+)$`, Amount: 1, Unit: "dash"},
		},
	}
}
