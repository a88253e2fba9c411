// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"iter"
	"strings"
	"unicode"

	"github.com/antchfx/htmlquery"
	"github.com/go-shiori/dom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var headingAtoms = map[atom.Atom]struct{}{
	atom.H1: {}, atom.H2: {}, atom.H3: {}, atom.H4: {},
	atom.H5: {}, atom.H6: {}, atom.Strong: {}, atom.B: {},
}

// docOrder walks every element node in document order.
func docOrder(root *html.Node) iter.Seq[*html.Node] {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(n *html.Node) bool {
			if n.Type == html.ElementNode && !yield(n) {
				return false
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(root)
	}
}

func textOf(n *html.Node) string {
	return strings.Join(strings.Fields(dom.TextContent(n)), " ")
}

func isHeading(n *html.Node) bool {
	_, ok := headingAtoms[n.DataAtom]
	return ok
}

func headingMatches(n *html.Node, keywords []string) bool {
	if !isHeading(n) {
		return false
	}
	text := strings.ToLower(textOf(n))
	if text == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// childTexts returns the non-empty texts of every descendant with the
// given tag.
func childTexts(n *html.Node, tag string) []string {
	out := []string{}
	for _, child := range dom.GetElementsByTagName(n, tag) {
		if s := textOf(child); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func listItems(n *html.Node) []string {
	return childTexts(n, "li")
}

// listAfterHeading returns the items of the first ul/ol following a
// heading that names one of the keywords.
func listAfterHeading(root *html.Node, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	armed := false
	for n := range docOrder(root) {
		switch {
		case headingMatches(n, keywords):
			armed = true
		case armed && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol):
			if items := listItems(n); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

// stepsAfterHeading returns the list items following a matching
// heading, or the run of paragraphs up to the next heading when the
// section holds prose instead of a list.
func stepsAfterHeading(root *html.Node, keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	armed := false
	paragraphs := []string{}
	for n := range docOrder(root) {
		switch {
		case headingMatches(n, keywords):
			armed = true
		case !armed:
		case n.DataAtom == atom.Ol || n.DataAtom == atom.Ul:
			if items := listItems(n); len(items) > 0 {
				return items
			}
		case n.DataAtom == atom.P:
			if s := textOf(n); s != "" {
				paragraphs = append(paragraphs, s)
			}
		case isHeading(n) && len(paragraphs) > 0:
			return paragraphs
		}
	}
	return paragraphs
}

// digitDominatedList finds the first list that looks like quantities:
// at least 3 items, at least 60% of them carrying a digit.
func digitDominatedList(root *html.Node) []string {
	for _, ul := range htmlquery.Find(root, "//ul") {
		items := listItems(ul)
		if len(items) < 3 {
			continue
		}
		withDigit := 0
		for _, item := range items {
			if strings.IndexFunc(item, unicode.IsDigit) >= 0 {
				withDigit++
			}
		}
		if withDigit*10 >= len(items)*6 {
			return items
		}
	}
	return nil
}

// breadcrumbCategory takes the last linked crumb of a breadcrumb
// trail. The current page is usually not a link, so the last anchor is
// the category.
func breadcrumbCategory(root *html.Node) (string, bool) {
	for _, trail := range classNodes(root, []string{"breadcrumb"}) {
		anchors := dom.GetElementsByTagName(trail, "a")
		for i := len(anchors) - 1; i >= 0; i-- {
			if s := textOf(anchors[i]); s != "" && !strings.EqualFold(s, "home") {
				return s, true
			}
		}
	}
	return "", false
}

// classNodes returns elements whose class attribute contains any of
// the keywords, in document order.
func classNodes(root *html.Node, keywords []string) []*html.Node {
	if len(keywords) == 0 {
		return nil
	}
	out := []*html.Node{}
	for n := range docOrder(root) {
		class := strings.ToLower(dom.GetAttribute(n, "class"))
		if class == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(class, strings.ToLower(kw)) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// classText returns the text of the first element matching the class
// keywords. With preferP, a paragraph child is preferred over the
// container text.
func classText(root *html.Node, keywords []string, preferP bool) (string, bool) {
	for _, n := range classNodes(root, keywords) {
		if preferP {
			for _, p := range dom.GetElementsByTagName(n, "p") {
				if s := textOf(p); s != "" {
					return s, true
				}
			}
		}
		if s := textOf(n); s != "" {
			return s, true
		}
	}
	return "", false
}

func firstHeading(root *html.Node) (string, bool) {
	if h1 := htmlquery.FindOne(root, "//h1"); h1 != nil {
		if s := textOf(h1); s != "" {
			return s, true
		}
	}
	return "", false
}

func itempropNodes(root *html.Node, name string) []*html.Node {
	return htmlquery.Find(root, "//*[@itemprop='"+name+"']")
}

// itempropValues reads microdata property values by tag shape:
// meta content, image sources, link targets, time datetimes, else the
// node text.
func itempropValues(root *html.Node, name string) []string {
	out := []string{}
	for _, n := range itempropNodes(root, name) {
		v := ""
		switch n.DataAtom {
		case atom.Meta:
			v = dom.GetAttribute(n, "content")
		case atom.Img:
			v = dom.GetAttribute(n, "src")
			if v == "" {
				v = dom.GetAttribute(n, "data-src")
			}
		case atom.A, atom.Link:
			v = dom.GetAttribute(n, "href")
		case atom.Time:
			v = dom.GetAttribute(n, "datetime")
			if v == "" {
				v = textOf(n)
			}
		default:
			v = textOf(n)
		}
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// containerImages collects up to 3 image sources from recipe-looking
// containers, falling back to the article body.
func containerImages(root *html.Node) []string {
	containers := classNodes(root, []string{"recipe"})
	if len(containers) == 0 {
		containers = htmlquery.Find(root, "//article")
	}
	urls := []string{}
	for _, container := range containers {
		for _, img := range dom.GetElementsByTagName(container, "img") {
			src := dom.GetAttribute(img, "src")
			if src == "" {
				src = dom.GetAttribute(img, "data-src")
			}
			if src = strings.TrimSpace(src); src != "" {
				urls = append(urls, src)
			}
			if len(urls) == 3 {
				return urls
			}
		}
	}
	return urls
}
