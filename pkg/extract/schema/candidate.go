// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package schema

import (
	"strings"
)

// Candidate is a resolved structured-data object. It is decoded once;
// accessors read the decoded property map without re-sniffing shapes.
type Candidate struct {
	Shape Shape
	Type  string

	props map[string]any
}

func newCandidate(props map[string]any, shape Shape) *Candidate {
	types := typesOf(props)
	typ := ""
	if len(types) > 0 {
		typ = types[0]
	}
	return &Candidate{Shape: shape, Type: typ, props: props}
}

// Text returns a string property. Subkeys descend into nested objects
// ("image", "url"). A list value yields its first usable element.
func (c *Candidate) Text(key string, subkeys ...string) (string, bool) {
	return textValue(c.props[key], subkeys)
}

func textValue(v any, subkeys []string) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case map[string]any:
		if len(subkeys) == 0 {
			return "", false
		}
		return textValue(t[subkeys[0]], subkeys[1:])
	case []any:
		for _, item := range t {
			if s, ok := textValue(item, subkeys); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Strings returns a property as a list of strings. A scalar becomes a
// one-element list; object elements contribute their text, name or url.
func (c *Candidate) Strings(key string) []string {
	return stringList(c.props[key])
}

func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range t {
			out = append(out, stringList(item)...)
		}
	case map[string]any:
		for _, key := range []string{"text", "name", "url"} {
			if s, ok := textValue(t[key], nil); ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Ingredients returns the recipeIngredient lines.
func (c *Candidate) Ingredients() []string {
	return c.Strings("recipeIngredient")
}

// Steps returns the recipeInstructions texts, flattening HowToStep
// objects and HowToSection wrappers.
func (c *Candidate) Steps() []string {
	return stepList(c.props["recipeInstructions"])
}

func stepList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range t {
			out = append(out, stepList(item)...)
		}
	case map[string]any:
		// HowToSection carries its steps in itemListElement
		if elems, ok := t["itemListElement"]; ok {
			if nested := stepList(elems); len(nested) > 0 {
				return nested
			}
		}
		for _, key := range []string{"text", "name"} {
			if s, ok := textValue(t[key], nil); ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Keywords returns the keywords property, splitting a comma-joined
// scalar into its parts.
func (c *Candidate) Keywords() []string {
	out := []string{}
	for _, s := range c.Strings("keywords") {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Images returns the image URLs, accepting a scalar, a list or
// ImageObject values.
func (c *Candidate) Images() []string {
	return imageList(c.props["image"])
}

func imageList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []any:
		for _, item := range t {
			out = append(out, imageList(item)...)
		}
	case map[string]any:
		for _, key := range []string{"url", "contentUrl"} {
			if s, ok := textValue(t[key], nil); ok {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// typesOf returns the @type values of an object.
func typesOf(m map[string]any) []string {
	switch t := m["@type"].(type) {
	case string:
		return []string{t}
	case []any:
		out := []string{}
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func isRecipeType(m map[string]any) bool {
	for _, t := range typesOf(m) {
		if t == "Recipe" {
			return true
		}
	}
	return false
}

// articleTypes lists the schema.org Article subtypes some strategies use
// for category and tags when no Recipe object exists.
var articleTypes = map[string]struct{}{
	"Article":      {},
	"NewsArticle":  {},
	"BlogPosting":  {},
	"TechArticle":  {},
	"Report":       {},
	"WebPage":      {},
	"CreativeWork": {},
}

func isArticleType(m map[string]any) bool {
	for _, t := range typesOf(m) {
		if _, ok := articleTypes[t]; ok {
			return true
		}
	}
	return false
}
