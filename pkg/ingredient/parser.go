// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package ingredient turns free-text ingredient lines into structured
// entries. Parsing is vocabulary driven: the same parser serves every
// locale, the word lists come from a [Vocabulary].
package ingredient

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// qtyPat matches a quantity token: digits, vulgar fraction glyphs,
// decimal separators, fraction slashes and range dashes.
const qtyPat = `((?:\d|[½¼¾⅓⅔⅛⅜⅝⅞⅕⅖⅗⅘])(?:[\d½¼¾⅓⅔⅛⅜⅝⅞⅕⅖⅗⅘.,/–—-]|\s)*)`

// Parser decomposes one ingredient line into quantity, unit and name.
type Parser struct {
	vocab  Vocabulary
	ranges RangePolicy

	units    map[string]string
	rxFull   *regexp.Regexp
	rxBare   *regexp.Regexp
	rxOf     *regexp.Regexp
	idioms   []compiledIdiom
	noise    []*regexp.Regexp
	wordnum  map[string]float64
	articles map[string]struct{}
	prep     map[string]struct{}
	approx   []string
}

type compiledIdiom struct {
	rx     *regexp.Regexp
	amount float64
	unit   string
}

// Option configures a [Parser].
type Option func(*Parser)

// WithRangePolicy sets the numeric range resolution policy.
func WithRangePolicy(p RangePolicy) Option {
	return func(parser *Parser) {
		parser.ranges = p
	}
}

// NewParser compiles a vocabulary into a parser.
func NewParser(vocab Vocabulary, options ...Option) (*Parser, error) {
	p := &Parser{
		vocab:    vocab,
		units:    map[string]string{},
		wordnum:  map[string]float64{},
		articles: map[string]struct{}{},
		prep:     map[string]struct{}{},
	}

	for _, fn := range options {
		fn(p)
	}

	descriptive := map[string]struct{}{}
	for _, w := range vocab.Descriptive {
		descriptive[strings.ToLower(w)] = struct{}{}
	}

	// Descriptive adjectives never act as units. A colliding form is
	// dropped here so the word stays attached to the name.
	forms := []string{}
	for _, u := range vocab.Units {
		for _, f := range u.Forms {
			key := normalizeForm(f)
			if _, ok := descriptive[key]; ok {
				continue
			}
			p.units[key] = u.Canonical
			forms = append(forms, f)
		}
	}
	if len(forms) == 0 {
		return nil, fmt.Errorf("vocabulary has no usable unit forms")
	}

	// Longest alternative first, so a compound unit is never truncated
	// to its single-word prefix.
	slices.SortFunc(forms, func(a, b string) int {
		if d := len(b) - len(a); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
	for i, f := range forms {
		forms[i] = regexp.QuoteMeta(f)
	}
	unitAlt := "(" + strings.Join(forms, "|") + ")"

	var err error
	if p.rxFull, err = regexp.Compile(`(?i)^` + qtyPat + `\s*` + unitAlt + `[\s.,]+(.+)$`); err != nil {
		return nil, err
	}
	p.rxBare = regexp.MustCompile(`(?i)^` + qtyPat + `\s*(\p{L}.*)$`)

	for k, v := range vocab.WordNumerals {
		p.wordnum[strings.ToLower(k)] = v
	}
	for _, a := range vocab.Articles {
		p.articles[strings.ToLower(a)] = struct{}{}
	}
	for _, w := range vocab.PrepWords {
		p.prep[strings.ToLower(w)] = struct{}{}
	}
	for _, a := range vocab.Approximations {
		p.approx = append(p.approx, strings.ToLower(a))
	}
	slices.SortFunc(p.approx, func(a, b string) int { return len(b) - len(a) })

	for _, ph := range vocab.Noise {
		rx, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.TrimSpace(ph)) + `\b`)
		if err != nil {
			return nil, err
		}
		p.noise = append(p.noise, rx)
	}

	for _, idiom := range vocab.Idioms {
		rx, err := regexp.Compile(idiom.Pattern)
		if err != nil {
			return nil, fmt.Errorf("idiom %q: %w", idiom.Pattern, err)
		}
		p.idioms = append(p.idioms, compiledIdiom{rx: rx, amount: idiom.Amount, unit: idiom.Unit})
	}

	if len(vocab.OfWords) > 0 && len(p.wordnum) > 0 {
		ofForms := make([]string, 0, len(vocab.OfWords))
		for _, w := range vocab.OfWords {
			ofForms = append(ofForms, regexp.QuoteMeta(w))
		}
		numForms := make([]string, 0, len(p.wordnum))
		for w := range p.wordnum {
			numForms = append(numForms, regexp.QuoteMeta(w))
		}
		slices.SortFunc(numForms, func(a, b string) int { return len(b) - len(a) })
		p.rxOf = regexp.MustCompile(
			`(?i)^(\p{L}[\p{L}\s]*?)\s+(?:` + strings.Join(ofForms, "|") + `)\s+(` +
				strings.Join(numForms, "|") + `)\s+(.+)$`)
	}

	return p, nil
}

// ParseLine parses one ingredient line. It is total on non-empty input:
// it either returns a valid entry or reports the line as droppable noise
// (empty line, section header, name shorter than 2 characters).
func (p *Parser) ParseLine(line string) (Entry, bool) {
	raw := normalizeSpace(line)
	if raw == "" {
		return Entry{}, false
	}
	// a trailing colon with no quantity marks a section header that
	// leaked into the ingredient list
	if strings.HasSuffix(raw, ":") && !strings.ContainsAny(raw, "0123456789") {
		return Entry{}, false
	}

	raw = p.substituteWordNumeral(raw)

	var entry Entry

	switch {
	case p.matchFull(raw, &entry):
	case p.matchBare(raw, &entry):
	case p.matchIdiom(raw, &entry):
	case p.matchOf(raw, &entry):
	default:
		// terminal: the whole cleaned line becomes the name
		entry = Entry{Name: raw}
	}

	name, modifier := p.cleanName(entry.Name)
	if len([]rune(name)) < 2 {
		return Entry{}, false
	}
	entry.Name = name
	if entry.Modifier == "" {
		entry.Modifier = modifier
	}

	return entry, true
}

func (p *Parser) matchFull(s string, e *Entry) bool {
	m := p.rxFull.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	unit, ok := p.ResolveUnit(m[2])
	if !ok {
		return false
	}
	*e = Entry{Name: m[3], Amount: p.ParseQuantity(m[1]), Unit: unit}
	return true
}

func (p *Parser) matchBare(s string, e *Entry) bool {
	m := p.rxBare.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	*e = Entry{Name: m[2], Amount: p.ParseQuantity(m[1])}
	return true
}

func (p *Parser) matchIdiom(s string, e *Entry) bool {
	for _, idiom := range p.idioms {
		m := idiom.rx.FindStringSubmatch(s)
		if m == nil || len(m) < 2 {
			continue
		}
		*e = Entry{Name: m[1], Amount: collapseFloat(idiom.amount), Unit: idiom.unit}
		return true
	}
	return false
}

// matchOf handles possessive-of constructions such as "juice of one
// lemon" or "sok od jednog limuna": the embedded numeral becomes the
// amount and the surrounding noun phrase stays in the name.
func (p *Parser) matchOf(s string, e *Entry) bool {
	if p.rxOf == nil {
		return false
	}
	m := p.rxOf.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	v, ok := p.wordnum[strings.ToLower(m[2])]
	if !ok {
		return false
	}
	*e = Entry{Name: m[1] + " " + m[3], Amount: collapseFloat(v)}
	return true
}

// ResolveUnit maps a raw unit token to its canonical label.
// An unknown token yields false and is treated as a bare count.
func (p *Parser) ResolveUnit(token string) (string, bool) {
	u, ok := p.units[normalizeForm(token)]
	return u, ok
}

// CleanName applies the name cleanup pass: parenthetical asides, noise
// phrases, leading articles and trailing punctuation are removed and
// whitespace collapsed. Cleaning is idempotent.
func (p *Parser) CleanName(s string) string {
	name, modifier := p.cleanName(s)
	if modifier != "" {
		// cleanName relocated a preparation verb; CleanName keeps the
		// plain string contract, so put it back in front
		return normalizeSpace(modifier + " " + name)
	}
	return name
}

var (
	rxParens    = regexp.MustCompile(`\([^()]*\)`)
	rxTrailPunc = regexp.MustCompile(`[\s,;:.–—-]+$`)
	rxLeadPunc  = regexp.MustCompile(`^[\s,;:–—-]+`)
)

func (p *Parser) cleanName(s string) (name, modifier string) {
	for prev := ""; prev != s; {
		prev = s
		s = rxParens.ReplaceAllString(s, " ")
	}
	for _, rx := range p.noise {
		s = rx.ReplaceAllString(s, " ")
	}
	s = rxLeadPunc.ReplaceAllString(s, "")
	s = rxTrailPunc.ReplaceAllString(s, "")
	s = normalizeSpace(s)

	// leading articles and prepositions
	for {
		word, rest, found := strings.Cut(s, " ")
		if !found {
			break
		}
		if _, ok := p.articles[strings.ToLower(word)]; !ok {
			break
		}
		s = rest
	}

	// a leading preparation verb moves into the modifier slot
	if word, rest, found := strings.Cut(s, " "); found {
		if _, ok := p.prep[strings.ToLower(strings.Trim(word, ","))]; ok {
			modifier = strings.ToLower(strings.Trim(word, ","))
			s = rest
		}
	}
	// same for a trailing ", chopped" style segment
	if head, tail, found := cutLast(s, ","); found {
		if _, ok := p.prep[strings.ToLower(strings.TrimSpace(tail))]; ok {
			if modifier == "" {
				modifier = strings.ToLower(strings.TrimSpace(tail))
			}
			s = head
		}
	}

	s = rxTrailPunc.ReplaceAllString(s, "")
	return normalizeSpace(s), modifier
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func normalizeForm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".")
	return strings.Join(strings.Fields(s), " ")
}

func normalizeSpace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Amount formats an amount for logging and plain-text output.
func Amount(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
