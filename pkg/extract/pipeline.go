// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"codeberg.org/plated/plated/pkg/duration"
	"codeberg.org/plated/plated/pkg/extract/meta"
	"codeberg.org/plated/plated/pkg/extract/schema"
	"codeberg.org/plated/plated/pkg/ingredient"
)

// Options configures a [Pipeline]. Keyword and class lists come from
// the active site/locale profile; they are data, not branching code.
type Options struct {
	// Site is an informational profile name used in logs.
	Site string

	// TitleTrim holds regex patterns removed from title metadata
	// (site-name suffixes such as " | BonApeti").
	TitleTrim []string

	// IngredientHeadings and InstructionHeadings are section heading
	// keywords ("Ingredients", "Sastojci", "Bahan").
	IngredientHeadings  []string
	InstructionHeadings []string

	// NoteClasses and DescriptionClasses are class-attribute keywords
	// identifying notes and intro sections.
	NoteClasses        []string
	DescriptionClasses []string

	// Class-attribute keywords identifying time elements per field.
	PrepClasses  []string
	CookClasses  []string
	TotalClasses []string

	// TagStopwords are dropped from the tag list.
	TagStopwords []string

	// Joined-string delimiters, preserved per site.
	TagDelimiter   string
	ImageDelimiter string

	// Ingredients parses ingredient lines. Required.
	Ingredients *ingredient.Parser

	// PrepTimes and CookTimes scan prose for durations. Optional.
	PrepTimes *duration.Scanner
	CookTimes *duration.Scanner

	Logger *slog.Logger
}

// Pipeline resolves every record field of a document by trying its
// strategies in priority order. A pipeline is immutable after
// construction and safe for concurrent use.
type Pipeline struct {
	opts      Options
	titleTrim []*regexp.Regexp
	stopwords map[string]struct{}
	logger    *slog.Logger

	dishName     []strategy[string]
	description  []strategy[string]
	ingredients  []strategy[[]string]
	instructions []strategy[[]string]
	category     []strategy[string]
	prepTime     []strategy[string]
	cookTime     []strategy[string]
	totalTime    []strategy[string]
	notes        []strategy[string]
	tags         []strategy[[]string]
	images       []strategy[[]string]
	published    []strategy[string]
}

// strategy is one ordered attempt at resolving a field value.
// Strategies are pure read-only functions of the document and the
// previously resolved structured-data candidate.
type strategy[T any] struct {
	name string
	try  func(*fieldContext) (T, bool)
}

// fieldContext carries the per-document state shared by strategies.
type fieldContext struct {
	doc  *Document
	meta meta.Meta
	data *schema.Result
	log  *slog.Logger

	// instructions text, once resolved, for prose duration scanning
	instructionsText string
}

// NewPipeline builds a pipeline from profile options.
func NewPipeline(opts Options) (*Pipeline, error) {
	p := &Pipeline{
		opts:      opts,
		stopwords: map[string]struct{}{},
		logger:    opts.Logger,
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	if p.opts.Ingredients == nil {
		parser, err := ingredient.NewParser(ingredient.DefaultVocabulary())
		if err != nil {
			return nil, err
		}
		p.opts.Ingredients = parser
	}
	if p.opts.TagDelimiter == "" {
		p.opts.TagDelimiter = ", "
	}
	if p.opts.ImageDelimiter == "" {
		p.opts.ImageDelimiter = ","
	}

	for _, pattern := range opts.TitleTrim {
		rx, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}
		p.titleTrim = append(p.titleTrim, rx)
	}
	for _, w := range opts.TagStopwords {
		p.stopwords[strings.ToLower(w)] = struct{}{}
	}

	p.buildStrategies()
	return p, nil
}

// Process assembles the record of one document. Every field resolves
// independently: a failing field yields null and never aborts the rest.
func (p *Pipeline) Process(doc *Document) *Record {
	log := p.logger.With(
		slog.String("source", doc.Source),
		slog.String("site", p.opts.Site),
	)

	c := &fieldContext{
		doc:  doc,
		meta: meta.ParseMeta(doc.Root),
		log:  log,
	}
	c.data = schema.Locate(doc.Root, log)

	rec := &Record{Source: doc.Source}

	rec.DishName = OptText(resolve(c, "dish_name", p.dishName))
	rec.Description = OptText(resolve(c, "description", p.description))

	for _, line := range resolve(c, "ingredients", p.ingredients) {
		if entry, ok := p.opts.Ingredients.ParseLine(line); ok {
			rec.Ingredients = append(rec.Ingredients, entry)
		}
	}

	if steps := resolve(c, "instructions", p.instructions); len(steps) > 0 {
		joined := joinSteps(steps)
		rec.Instructions = OptText(joined)
		c.instructionsText = joined
	}

	rec.Category = OptText(resolve(c, "category", p.category))
	rec.PrepTime = OptText(resolve(c, "prep_time", p.prepTime))
	rec.CookTime = OptText(resolve(c, "cook_time", p.cookTime))
	rec.TotalTime = OptText(resolve(c, "total_time", p.totalTime))
	rec.Notes = OptText(resolve(c, "notes", p.notes))

	if tags := p.filterTags(resolve(c, "tags", p.tags)); len(tags) > 0 {
		rec.Tags = OptText(strings.Join(tags, p.opts.TagDelimiter))
	}
	if urls := dedupe(resolve(c, "image_urls", p.images)); len(urls) > 0 {
		rec.ImageURLs = OptText(strings.Join(urls, p.opts.ImageDelimiter))
	}

	rec.Published = OptText(resolve(c, "published", p.published))

	log.Info("document processed",
		slog.Int("ingredients", len(rec.Ingredients)),
		slog.Bool("structured", c.data.Recipe != nil),
	)
	return rec
}

// resolve tries the strategies of one field in order and returns the
// first non-empty value.
func resolve[T any](c *fieldContext, field string, strategies []strategy[T]) T {
	for _, s := range strategies {
		if v, ok := s.try(c); ok {
			c.log.Debug("field resolved",
				slog.String("field", field),
				slog.String("strategy", s.name),
			)
			return v
		}
	}
	c.log.Debug("field unresolved", slog.String("field", field))
	var zero T
	return zero
}

func (p *Pipeline) trimTitle(s string) string {
	for _, rx := range p.titleTrim {
		s = rx.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

func (p *Pipeline) filterTags(tags []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if len(tag) < 3 {
			continue
		}
		if _, ok := p.stopwords[tag]; ok {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func dedupe(values []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var rxNumbered = regexp.MustCompile(`^\d+[.)]`)

// joinSteps joins instruction steps into one string, numbering them
// unless the source already did.
func joinSteps(steps []string) string {
	cleaned := []string{}
	for _, s := range steps {
		if s = strings.Join(strings.Fields(s), " "); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return ""
	}
	if rxNumbered.MatchString(cleaned[0]) {
		return strings.Join(cleaned, " ")
	}
	b := new(strings.Builder)
	for i, s := range cleaned {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(s)
	}
	return b.String()
}
