// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package meta retrieves document-level metadata (meta tags, opengraph,
// twitter cards, title) from a page.
package meta

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/antchfx/htmlquery"
	"github.com/araddon/dateparse"
	"github.com/go-shiori/dom"
)

// Meta is the parsed metadata of a page. Each name holds the values in
// document order, without duplicates.
type Meta map[string][]string

// Add adds a value under a name.
func (m Meta) Add(name, value string) {
	if slices.Contains(m[name], value) {
		return
	}
	m[name] = append(m[name], value)
}

// Lookup returns the values of the first name that has any.
func (m Meta) Lookup(names ...string) []string {
	for _, name := range names {
		if v, ok := m[name]; ok && len(v) > 0 {
			return v
		}
	}
	return nil
}

// LookupGet returns the first value of the first name that has any.
func (m Meta) LookupGet(names ...string) string {
	if v := m.Lookup(names...); len(v) > 0 {
		return v[0]
	}
	return ""
}

type rawSpec struct {
	name     string
	selector string
	fn       func(*html.Node) (string, string)
}

func extMeta(k, v, sep string) func(*html.Node) (string, string) {
	return func(n *html.Node) (string, string) {
		_, key, _ := strings.Cut(strings.TrimSpace(dom.GetAttribute(n, k)), sep)
		val := strings.TrimSpace(dom.GetAttribute(n, v))

		// Some attributes may contain HTML, we don't want that
		a, _ := html.Parse(strings.NewReader(val))
		return key, dom.TextContent(a)
	}
}

var specList = []rawSpec{
	{"html", "//title", func(n *html.Node) (string, string) {
		return "title", dom.TextContent(n)
	}},
	{"html", "/html[@lang]/@lang", func(n *html.Node) (string, string) {
		return "lang", dom.TextContent(n)
	}},

	// Common HTML meta tags
	{"html", `//meta[@content][
		@name='author' or
		@name='date' or
		@name='description' or
		@name='keywords' or
		@name='parsely-tags'
	]`, extMeta("name", "content", "")},

	// Facebook opengraph
	{
		"graph", "//meta[@content][starts-with(@property, 'og:')]",
		extMeta("property", "content", ":"),
	},
	{
		"graph", "//meta[@content][starts-with(@name, 'og:')]",
		extMeta("name", "content", ":"),
	},

	// Twitter cards
	{
		"twitter", "//meta[@content][starts-with(@name, 'twitter:')]",
		extMeta("name", "content", ":"),
	},

	// Article metadata (article:section, article:tag,
	// article:published_time)
	{
		"article", "//meta[@content][starts-with(@property, 'article:')]",
		extMeta("property", "content", ":"),
	},
}

// ParseMeta parses page metadata.
func ParseMeta(doc *html.Node) Meta {
	res := Meta{}

	for _, x := range specList {
		nodes, _ := htmlquery.QueryAll(doc, x.selector)

		for _, node := range nodes {
			name, value := x.fn(node)
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			if name == "" || value == "" {
				continue
			}

			res.Add(fmt.Sprintf("%s.%s", x.name, name), value)
		}
	}

	return res
}

// PublishedTime returns the page publication date when any metadata
// carries one.
func (m Meta) PublishedTime() (time.Time, bool) {
	for _, name := range []string{
		"article.published_time",
		"graph.published_time",
		"html.date",
	} {
		for _, v := range m[name] {
			if t, err := dateparse.ParseLocal(v); err == nil && !t.IsZero() {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
