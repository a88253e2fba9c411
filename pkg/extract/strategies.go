// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"codeberg.org/plated/plated/pkg/duration"
	"codeberg.org/plated/plated/pkg/extract/schema"
)

func (p *Pipeline) buildStrategies() {
	p.dishName = []strategy[string]{
		{"schema", p.nameFromSchema},
		{"meta", p.nameFromMeta},
		{"itemprop", func(c *fieldContext) (string, bool) {
			return firstValue(itempropValues(c.doc.Root, "name"))
		}},
		{"heading", p.nameFromHeading},
		{"title", func(c *fieldContext) (string, bool) {
			return nonEmpty(p.trimTitle(c.meta.LookupGet("html.title")))
		}},
	}

	p.description = []strategy[string]{
		{"schema", candidateText(recipeOf, "description")},
		{"schema-article", candidateText(articleOf, "description")},
		{"meta", func(c *fieldContext) (string, bool) {
			return nonEmpty(c.meta.LookupGet(
				"html.description", "graph.description", "twitter.description",
			))
		}},
		{"itemprop", func(c *fieldContext) (string, bool) {
			return firstValue(itempropValues(c.doc.Root, "description"))
		}},
		{"class", func(c *fieldContext) (string, bool) {
			return classText(c.doc.Root, p.opts.DescriptionClasses, true)
		}},
	}

	p.ingredients = []strategy[[]string]{
		{"schema", func(c *fieldContext) ([]string, bool) {
			if c.data.Recipe == nil {
				return nil, false
			}
			lines := c.data.Recipe.Ingredients()
			return lines, len(lines) > 0
		}},
		{"itemprop", func(c *fieldContext) ([]string, bool) {
			lines := itempropValues(c.doc.Root, "recipeIngredient")
			if len(lines) == 0 {
				lines = itempropValues(c.doc.Root, "ingredients")
			}
			return lines, len(lines) > 0
		}},
		{"heading", func(c *fieldContext) ([]string, bool) {
			items := listAfterHeading(c.doc.Root, p.opts.IngredientHeadings)
			return items, len(items) > 0
		}},
		{"digit-list", func(c *fieldContext) ([]string, bool) {
			items := digitDominatedList(c.doc.Root)
			return items, len(items) > 0
		}},
	}

	p.instructions = []strategy[[]string]{
		{"schema", func(c *fieldContext) ([]string, bool) {
			if c.data.Recipe == nil {
				return nil, false
			}
			steps := c.data.Recipe.Steps()
			return steps, len(steps) > 0
		}},
		{"itemprop", p.stepsFromItemprop},
		{"heading", func(c *fieldContext) ([]string, bool) {
			steps := stepsAfterHeading(c.doc.Root, p.opts.InstructionHeadings)
			return steps, len(steps) > 0
		}},
	}

	p.category = []strategy[string]{
		{"schema", candidateText(recipeOf, "recipeCategory", "recipeCuisine")},
		{"schema-article", candidateText(articleOf, "articleSection")},
		{"meta", func(c *fieldContext) (string, bool) {
			return nonEmpty(c.meta.LookupGet("article.section"))
		}},
		{"itemprop", func(c *fieldContext) (string, bool) {
			return firstValue(itempropValues(c.doc.Root, "recipeCategory"))
		}},
		{"breadcrumb", func(c *fieldContext) (string, bool) {
			return breadcrumbCategory(c.doc.Root)
		}},
	}

	p.prepTime = p.timeStrategies("prepTime", p.opts.PrepClasses, p.opts.PrepTimes, true)
	p.cookTime = p.timeStrategies("cookTime", p.opts.CookClasses, p.opts.CookTimes, true)
	// total time never comes from instruction prose, a step duration is
	// not the total
	p.totalTime = p.timeStrategies("totalTime", p.opts.TotalClasses, p.opts.CookTimes, false)

	p.notes = []strategy[string]{
		{"class", func(c *fieldContext) (string, bool) {
			return classText(c.doc.Root, p.opts.NoteClasses, true)
		}},
	}

	p.tags = []strategy[[]string]{
		{"schema", func(c *fieldContext) ([]string, bool) {
			if c.data.Recipe == nil {
				return nil, false
			}
			tags := c.data.Recipe.Keywords()
			return tags, len(tags) > 0
		}},
		{"schema-article", func(c *fieldContext) ([]string, bool) {
			if c.data.Article == nil {
				return nil, false
			}
			tags := c.data.Article.Keywords()
			return tags, len(tags) > 0
		}},
		{"meta-article", func(c *fieldContext) ([]string, bool) {
			tags := c.meta.Lookup("article.tag")
			return tags, len(tags) > 0
		}},
		{"meta", func(c *fieldContext) ([]string, bool) {
			raw := c.meta.LookupGet("html.keywords", "html.parsely-tags")
			tags := splitList(raw)
			return tags, len(tags) > 0
		}},
	}

	p.images = []strategy[[]string]{
		{"schema", func(c *fieldContext) ([]string, bool) {
			if c.data.Recipe == nil {
				return nil, false
			}
			urls := c.data.Recipe.Images()
			return urls, len(urls) > 0
		}},
		{"meta", func(c *fieldContext) ([]string, bool) {
			urls := c.meta.Lookup("graph.image")
			if len(urls) == 0 {
				urls = c.meta.Lookup("twitter.image")
			}
			return urls, len(urls) > 0
		}},
		{"itemprop", func(c *fieldContext) ([]string, bool) {
			urls := itempropValues(c.doc.Root, "image")
			return urls, len(urls) > 0
		}},
		{"container", func(c *fieldContext) ([]string, bool) {
			urls := containerImages(c.doc.Root)
			return urls, len(urls) > 0
		}},
	}

	p.published = []strategy[string]{
		{"schema", func(c *fieldContext) (string, bool) {
			v, ok := candidateText(recipeOf, "datePublished")(c)
			if !ok {
				return "", false
			}
			return parseDate(v)
		}},
		{"schema-article", func(c *fieldContext) (string, bool) {
			v, ok := candidateText(articleOf, "datePublished")(c)
			if !ok {
				return "", false
			}
			return parseDate(v)
		}},
		{"meta", func(c *fieldContext) (string, bool) {
			t, ok := c.meta.PublishedTime()
			if !ok {
				return "", false
			}
			return t.UTC().Format(time.RFC3339), true
		}},
	}
}

// recipeOf and articleOf select the candidate a text strategy reads.
func recipeOf(c *fieldContext) *schema.Candidate  { return c.data.Recipe }
func articleOf(c *fieldContext) *schema.Candidate { return c.data.Article }

// candidateText builds a strategy reading the first non-empty of the
// given properties from a structured-data candidate.
func candidateText(pick func(*fieldContext) *schema.Candidate, keys ...string) func(*fieldContext) (string, bool) {
	return func(c *fieldContext) (string, bool) {
		cand := pick(c)
		if cand == nil {
			return "", false
		}
		for _, key := range keys {
			if v, ok := cand.Text(key); ok {
				return v, true
			}
		}
		return "", false
	}
}

func (p *Pipeline) nameFromSchema(c *fieldContext) (string, bool) {
	if v, ok := candidateText(recipeOf, "name")(c); ok {
		return v, ok
	}
	return candidateText(articleOf, "headline", "name")(c)
}

func (p *Pipeline) nameFromMeta(c *fieldContext) (string, bool) {
	return nonEmpty(p.trimTitle(c.meta.LookupGet("graph.title", "twitter.title")))
}

func (p *Pipeline) nameFromHeading(c *fieldContext) (string, bool) {
	return firstHeading(c.doc.Root)
}

// stepsFromItemprop collects recipeInstructions markup, preferring list
// items, then paragraphs, then the raw container text.
func (p *Pipeline) stepsFromItemprop(c *fieldContext) ([]string, bool) {
	nodes := itempropNodes(c.doc.Root, "recipeInstructions")
	if len(nodes) == 0 {
		return nil, false
	}
	if len(nodes) > 1 {
		steps := []string{}
		for _, n := range nodes {
			if s := textOf(n); s != "" {
				steps = append(steps, s)
			}
		}
		return steps, len(steps) > 0
	}
	steps := childTexts(nodes[0], "li")
	if len(steps) == 0 {
		steps = childTexts(nodes[0], "p")
	}
	if len(steps) == 0 {
		if s := textOf(nodes[0]); s != "" {
			steps = []string{s}
		}
	}
	return steps, len(steps) > 0
}

// timeStrategies builds the shared resolution chain of a duration
// field. Prose scanning runs last, over the already resolved
// instruction text.
func (p *Pipeline) timeStrategies(key string, classes []string, scanner *duration.Scanner, prose bool) []strategy[string] {
	chain := []strategy[string]{
		{"schema", func(c *fieldContext) (string, bool) {
			v, ok := candidateText(recipeOf, key)(c)
			if !ok {
				return "", false
			}
			return p.readDuration(v, scanner)
		}},
		{"itemprop", func(c *fieldContext) (string, bool) {
			for _, v := range itempropValues(c.doc.Root, key) {
				if s, ok := p.readDuration(v, scanner); ok {
					return s, ok
				}
			}
			return "", false
		}},
		{"class", func(c *fieldContext) (string, bool) {
			v, ok := classText(c.doc.Root, classes, false)
			if !ok {
				return "", false
			}
			return p.readDuration(v, scanner)
		}},
	}
	if prose && scanner != nil {
		chain = append(chain, strategy[string]{"prose", func(c *fieldContext) (string, bool) {
			if c.instructionsText == "" {
				return "", false
			}
			return scanner.Scan(c.instructionsText)
		}})
	}
	return chain
}

// readDuration turns a raw duration value into display form, trying
// ISO-8601 first and falling back to the prose token scanner.
func (p *Pipeline) readDuration(raw string, scanner *duration.Scanner) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if s, ok := duration.ParseISO(raw); ok {
		return s, ok
	}
	if scanner != nil {
		if s, ok := scanner.ScanToken(raw); ok {
			return s, ok
		}
	}
	return "", false
}

func parseDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return "", false
	}
	return t.UTC().Format(time.RFC3339), true
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func firstValue(values []string) (string, bool) {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v, true
		}
	}
	return "", false
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
