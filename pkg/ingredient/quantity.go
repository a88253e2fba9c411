// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package ingredient

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// RangePolicy selects how a numeric range amount ("2-4") is resolved.
type RangePolicy uint8

const (
	// RangeVerbatim preserves the range as a string.
	RangeVerbatim RangePolicy = iota
	// RangeUpper takes the upper bound.
	RangeUpper
	// RangeLower takes the lower bound.
	RangeLower
	// RangeMean takes the average of both bounds.
	RangeMean
)

// ParseRangePolicy returns the policy matching a profile value.
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "verbatim":
		return RangeVerbatim, nil
	case "upper":
		return RangeUpper, nil
	case "lower":
		return RangeLower, nil
	case "mean", "average":
		return RangeMean, nil
	}
	return 0, fmt.Errorf("unknown range policy %q", s)
}

// fractionGlyphs maps unicode vulgar fractions to decimal literals.
var fractionGlyphs = map[rune]string{
	'½': "0.5", '¼': "0.25", '¾': "0.75",
	'⅓': "0.33", '⅔': "0.67",
	'⅛': "0.125", '⅜': "0.375", '⅝': "0.625", '⅞': "0.875",
	'⅕': "0.2", '⅖': "0.4", '⅗': "0.6", '⅘': "0.8",
}

var rxRange = regexp.MustCompile(`^(\d+(?:[.,]\d+)?)\s*[-–—]\s*(\d+(?:[.,]\d+)?)$`)

// ParseQuantity converts a raw quantity token into a number, a string or
// nil. It never fails: a token that resists every stage comes back as the
// original trimmed string, and only an empty token yields nil.
func (p *Parser) ParseQuantity(token string) any {
	orig := strings.TrimSpace(token)
	if orig == "" {
		return nil
	}

	t := p.stripApproximations(orig)
	t = p.substituteWordNumeral(t)
	t = expandFractions(t)
	t = strings.TrimSpace(strings.Trim(t, ".,"))
	if t == "" {
		return orig
	}

	// "1 1/2", "1/2" and glyph expansions such as "1 0.5" are summed.
	if strings.ContainsRune(t, '/') || len(strings.Fields(t)) > 1 {
		if v, ok := sumParts(t); ok {
			return collapseFloat(v)
		}
	}

	if m := rxRange.FindStringSubmatch(t); m != nil {
		lo, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
		hi, _ := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
		switch p.ranges {
		case RangeUpper:
			return collapseFloat(hi)
		case RangeLower:
			return collapseFloat(lo)
		case RangeMean:
			return collapseFloat((lo + hi) / 2)
		default:
			return t
		}
	}

	if f, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", "."), 64); err == nil {
		return collapseFloat(f)
	}

	return orig
}

func (p *Parser) stripApproximations(s string) string {
	for changed := true; changed; {
		changed = false
		ls := strings.ToLower(strings.TrimSpace(s))
		for _, marker := range p.approx {
			if !strings.HasPrefix(ls, marker) {
				continue
			}
			// a marker ending in a letter must not truncate a longer word
			if rest := ls[len(marker):]; rest != "" && isLetterBoundary(marker, rest) {
				continue
			}
			s = strings.TrimSpace(s[len(marker):])
			changed = true
			break
		}
	}
	return s
}

// substituteWordNumeral replaces a leading known word-numeral with its
// numeric value, so the rest of the pipeline applies unchanged.
func (p *Parser) substituteWordNumeral(s string) string {
	word, rest, _ := strings.Cut(strings.TrimSpace(s), " ")
	v, ok := p.wordnum[strings.ToLower(word)]
	if !ok {
		return s
	}
	num := strconv.FormatFloat(v, 'f', -1, 64)
	if rest == "" {
		return num
	}
	return num + " " + rest
}

func isLetterBoundary(marker, rest string) bool {
	last := rune(marker[len(marker)-1])
	next := []rune(rest)[0]
	return unicode.IsLetter(last) && unicode.IsLetter(next)
}

// expandFractions replaces vulgar fraction glyphs with decimal literals.
// A glyph directly following a digit gets a separating space so both
// parts are summed instead of concatenated ("1½" -> "1 0.5").
func expandFractions(s string) string {
	b := new(strings.Builder)
	prevDigit := false
	for _, r := range s {
		if dec, ok := fractionGlyphs[r]; ok {
			if prevDigit {
				b.WriteByte(' ')
			}
			b.WriteString(dec)
			prevDigit = false
			continue
		}
		b.WriteRune(r)
		prevDigit = unicode.IsDigit(r)
	}
	return b.String()
}

// sumParts sums whitespace-separated numeric terms, resolving "a/b"
// fractions by division. A zero denominator discards that term.
func sumParts(s string) (float64, bool) {
	total := 0.0
	found := false
	for _, part := range strings.Fields(s) {
		num, denom, isFrac := strings.Cut(part, "/")
		if isFrac {
			a, errA := strconv.ParseFloat(num, 64)
			b, errB := strconv.ParseFloat(denom, 64)
			if errA != nil || errB != nil {
				return 0, false
			}
			if b == 0 {
				continue
			}
			total += a / b
			found = true
			continue
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(part, ",", "."), 64)
		if err != nil {
			return 0, false
		}
		total += f
		found = true
	}
	return total, found
}

// collapseFloat turns an exact-integer float into an int.
func collapseFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < 1<<52 {
		return int(f)
	}
	return f
}
