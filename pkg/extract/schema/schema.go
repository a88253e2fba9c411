// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package schema locates the machine-readable Recipe (or Article) object
// embedded in a document. It decodes every JSON-LD payload once into a
// candidate tagged with the shape the source used, falls back to HTML
// microdata items, and degrades to raw-text field scraping when no
// payload decodes at all.
package schema

import (
	"encoding/json"
	"log/slog"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Shape is the encoding shape a candidate was found in.
type Shape uint8

const (
	// SingleObject is a bare top-level object.
	SingleObject Shape = iota + 1
	// ObjectList is a top-level array scanned for the target type.
	ObjectList
	// GraphWrapper is an object wrapping the target in a @graph array.
	GraphWrapper
)

func (s Shape) String() string {
	switch s {
	case SingleObject:
		return "object"
	case ObjectList:
		return "list"
	case GraphWrapper:
		return "graph"
	}
	return strconv.Itoa(int(s))
}

// Result holds the resolved candidates of one document. Recipe is the
// primary candidate; Article is only consulted for category and tags.
// Either or both may be nil.
type Result struct {
	Recipe  *Candidate
	Article *Candidate
}

// Locate resolves the structured data candidates of a document.
// The search stops at the first JSON-LD payload yielding a Recipe; it
// never merges partial matches across payloads. When every payload fails
// to decode, a degraded text scrape of the raw payloads may still return
// a partial candidate.
func Locate(root *html.Node, logger *slog.Logger) *Result {
	if logger == nil {
		logger = slog.Default()
	}

	payloads := collectPayloads(root)
	res := &Result{}
	failures := 0

	for _, raw := range payloads {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			failures++
			logger.Debug("skipping malformed JSON-LD payload", slog.Any("err", err))
			continue
		}
		recipe, article := classify(unescapeValues(v))
		if res.Article == nil && article != nil {
			res.Article = article
		}
		if recipe != nil {
			res.Recipe = recipe
			logger.Debug("structured data found",
				slog.String("type", recipe.Type),
				slog.String("shape", recipe.Shape.String()),
			)
			break
		}
	}

	if res.Recipe == nil {
		if c := microdataRecipe(root); c != nil {
			res.Recipe = c
			logger.Debug("recipe resolved from microdata")
		}
	}

	if res.Recipe == nil && len(payloads) > 0 && failures == len(payloads) {
		if c := textFallback(payloads); c != nil {
			res.Recipe = c
			logger.Debug("recipe resolved from degraded text fallback")
		}
	}

	return res
}

// collectPayloads returns the raw text of every JSON-LD script.
func collectPayloads(root *html.Node) []string {
	payloads := []string{}
	for n := range iterNodes(root) {
		if n.DataAtom != atom.Script || n.FirstChild == nil {
			continue
		}
		if a, _ := getAttr(n, "type"); a == "application/ld+json" {
			payloads = append(payloads, n.FirstChild.Data)
		}
	}
	return payloads
}

// classify decodes one payload value into candidates, checking in order:
// the top-level object itself, a @graph wrapper array, a plain array.
func classify(v any) (recipe, article *Candidate) {
	switch t := v.(type) {
	case map[string]any:
		if isRecipeType(t) {
			return newCandidate(t, SingleObject), nil
		}
		if graph, ok := t["@graph"].([]any); ok {
			return scanList(graph, GraphWrapper)
		}
		if isArticleType(t) {
			return nil, newCandidate(t, SingleObject)
		}
	case []any:
		return scanList(t, ObjectList)
	}
	return nil, nil
}

func scanList(items []any, shape Shape) (recipe, article *Candidate) {
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if recipe == nil && isRecipeType(m) {
			recipe = newCandidate(m, shape)
		}
		if article == nil && isArticleType(m) {
			article = newCandidate(m, shape)
		}
	}
	return recipe, article
}

// unescapeValues reverses the HTML escaping some publishers apply to
// string values inside JSON-LD script elements.
func unescapeValues(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = unescapeValues(x)
		}
	case []any:
		for i, x := range t {
			t[i] = unescapeValues(x)
		}
	case string:
		return html.UnescapeString(t)
	}
	return v
}
