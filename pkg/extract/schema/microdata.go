// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package schema

import (
	"iter"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// microdataRecipe converts the first itemscope tree of type Recipe into
// a candidate. Microdata is only consulted when no JSON-LD payload
// yields a match.
func microdataRecipe(root *html.Node) *Candidate {
	for n := range iterNodes(root) {
		if !hasAttr(n, "itemscope") || hasAttr(n, "itemprop") {
			continue
		}
		itemtype, _ := getAttr(n, "itemtype")
		if typeName(itemtype) != "Recipe" {
			continue
		}

		item := map[string]any{"@type": "Recipe"}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			readItemNode(item, c)
		}
		if len(item) > 1 {
			return newCandidate(item, SingleObject)
		}
	}
	return nil
}

// readItemNode collects itemprop values into item, descending into
// nested itemscope elements as nested objects.
func readItemNode(item map[string]any, n *html.Node) {
	props, hasProp := getAttr(n, "itemprop")
	scoped := hasAttr(n, "itemscope")

	switch {
	case scoped && hasProp:
		sub := map[string]any{}
		if itemtype, ok := getAttr(n, "itemtype"); ok {
			sub["@type"] = typeName(itemtype)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			readItemNode(sub, c)
		}
		for prop := range strings.FieldsSeq(props) {
			addProp(item, prop, sub)
		}
		return
	case hasProp:
		if v := propValue(n); v != "" {
			for prop := range strings.FieldsSeq(props) {
				addProp(item, prop, v)
			}
		}
		return
	case scoped:
		// an unrelated nested scope, stop here
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		readItemNode(item, c)
	}
}

// propValue extracts the value of an itemprop element depending on its
// tag, the way schema.org microdata defines it.
func propValue(n *html.Node) string {
	var v string
	switch n.DataAtom {
	case atom.Meta:
		v, _ = getAttr(n, "content")
	case atom.Img, atom.Audio, atom.Embed, atom.Iframe, atom.Source, atom.Video:
		v, _ = getAttr(n, "src")
	case atom.A, atom.Area, atom.Link:
		v, _ = getAttr(n, "href")
	case atom.Data, atom.Meter:
		v, _ = getAttr(n, "value")
	case atom.Time:
		if v, _ = getAttr(n, "datetime"); v == "" {
			v = nodeText(n)
		}
	default:
		if v, _ = getAttr(n, "content"); v == "" {
			v = nodeText(n)
		}
	}
	return strings.TrimSpace(v)
}

func addProp(item map[string]any, name string, val any) {
	if name == "" {
		return
	}
	if prev, ok := item[name]; ok {
		if list, ok := prev.([]any); ok {
			item[name] = append(list, val)
		} else {
			item[name] = []any{prev, val}
		}
		return
	}
	item[name] = val
}

// typeName returns the last path segment of an itemtype URI.
func typeName(uri string) string {
	uri = strings.TrimSuffix(strings.TrimSpace(uri), "/")
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}

func nodeText(n *html.Node) string {
	buf := new(strings.Builder)
	for c := range iterNodes(n) {
		if c.Type == html.TextNode {
			for s := range strings.FieldsSeq(c.Data) {
				buf.WriteString(s + " ")
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func iterNodes(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			if !yield(n) {
				return false
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		if root != nil {
			walk(root)
		}
	}
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, name string) bool {
	_, ok := getAttr(n, name)
	return ok
}
