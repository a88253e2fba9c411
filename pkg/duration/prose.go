// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package duration

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Scanner finds cooking durations in free text with verb-anchored
// patterns: a cooking verb followed, within a short window, by a number
// and a time unit. Verbs, unit words and fixed phrases come from the
// active locale profile.
type Scanner struct {
	rx          *regexp.Regexp
	rxToken     *regexp.Regexp
	units       map[string]int
	phrases     map[string]int
	phraseOrder []string
	policy      RangePolicy
}

// NewScanner builds a scanner from a verb list, a unit-word to minutes
// map and optional fixed phrases ("pola sata" -> 30).
func NewScanner(verbs []string, units map[string]int, phrases map[string]int, policy RangePolicy) *Scanner {
	s := &Scanner{
		units:   map[string]int{},
		phrases: map[string]int{},
		policy:  policy,
	}

	unitForms := make([]string, 0, len(units))
	for form, minutes := range units {
		form = strings.ToLower(strings.TrimSpace(form))
		s.units[form] = minutes
		unitForms = append(unitForms, form)
	}
	for phrase, minutes := range phrases {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		s.phrases[phrase] = minutes
		s.phraseOrder = append(s.phraseOrder, phrase)
	}
	slices.Sort(s.phraseOrder)

	if len(unitForms) == 0 {
		return s
	}

	slices.SortFunc(unitForms, func(a, b string) int { return len(b) - len(a) })
	for i, f := range unitForms {
		unitForms[i] = regexp.QuoteMeta(f)
	}
	s.rxToken = regexp.MustCompile(
		`(?i)(\d+)(?:\s*[-–—]\s*(\d+))?\s*(` + strings.Join(unitForms, "|") + `)\b`)

	if len(verbs) == 0 {
		return s
	}
	verbForms := make([]string, 0, len(verbs))
	for _, v := range verbs {
		verbForms = append(verbForms, regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(v))))
	}

	s.rx = regexp.MustCompile(
		`(?i)\b(?:` + strings.Join(verbForms, "|") + `)\p{L}*\b[^.!?\n]{0,60}?` +
			`(\d+)(?:\s*[-–—]\s*(\d+))?\s*(` + strings.Join(unitForms, "|") + `)\b`)

	return s
}

// Scan returns the human phrase for the first duration found in text.
func (s *Scanner) Scan(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, phrase := range s.phraseOrder {
		if strings.Contains(lower, phrase) {
			return Humanize(s.phrases[phrase])
		}
	}

	if s.rx == nil {
		return "", false
	}
	return s.resolveMatch(s.rx.FindStringSubmatch(text))
}

// ScanToken converts a bare time fragment ("30 min", "1-2 sata") without
// requiring a verb anchor. It serves explicit time elements where the
// surrounding markup already names the field.
func (s *Scanner) ScanToken(text string) (string, bool) {
	if s.rxToken == nil {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, phrase := range s.phraseOrder {
		if strings.Contains(lower, phrase) {
			return Humanize(s.phrases[phrase])
		}
	}
	return s.resolveMatch(s.rxToken.FindStringSubmatch(text))
}

func (s *Scanner) resolveMatch(m []string) (string, bool) {
	if m == nil {
		return "", false
	}

	value, _ := strconv.Atoi(m[1])
	if m[2] != "" {
		upper, _ := strconv.Atoi(m[2])
		switch s.policy {
		case RangeLower:
			// keep value
		case RangeMean:
			value = (value + upper) / 2
		default:
			value = upper
		}
	}

	mult, ok := s.units[strings.ToLower(m[3])]
	if !ok {
		return "", false
	}
	return Humanize(value * mult)
}
