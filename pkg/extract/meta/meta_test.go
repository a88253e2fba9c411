// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package meta_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"codeberg.org/plated/plated/pkg/extract/meta"
)

const testPage = `<html lang="en">
<head>
	<title>Walnut Baklava | Some Site</title>
	<meta name="description" content="A syrupy walnut pastry.">
	<meta name="keywords" content="dessert, walnuts">
	<meta property="og:title" content="Walnut Baklava">
	<meta property="og:image" content="https://example.com/a.jpg">
	<meta property="og:image" content="https://example.com/b.jpg">
	<meta name="twitter:title" content="Walnut Baklava on Twitter">
	<meta property="article:section" content="Desserts">
	<meta property="article:tag" content="baklava">
	<meta property="article:tag" content="walnuts">
	<meta property="article:published_time" content="2024-03-01T10:00:00Z">
</head>
<body></body>
</html>`

func parsePage(t *testing.T) meta.Meta {
	t.Helper()
	root, err := html.Parse(strings.NewReader(testPage))
	require.NoError(t, err)
	return meta.ParseMeta(root)
}

func TestParseMeta(t *testing.T) {
	assert := require.New(t)
	m := parsePage(t)

	assert.Equal("Walnut Baklava | Some Site", m.LookupGet("html.title"))
	assert.Equal("en", m.LookupGet("html.lang"))
	assert.Equal("A syrupy walnut pastry.", m.LookupGet("html.description"))
	assert.Equal("Walnut Baklava", m.LookupGet("graph.title"))
	assert.Equal("Desserts", m.LookupGet("article.section"))
	assert.Equal([]string{"baklava", "walnuts"}, m.Lookup("article.tag"))
	assert.Equal(
		[]string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
		m.Lookup("graph.image"),
	)
}

func TestLookupOrder(t *testing.T) {
	m := parsePage(t)

	// the first name with values wins
	require.Equal(t, "Walnut Baklava", m.LookupGet("graph.title", "twitter.title"))
	require.Equal(t, "Walnut Baklava on Twitter", m.LookupGet("missing", "twitter.title"))
	require.Empty(t, m.LookupGet("missing", "also.missing"))
}

func TestPublishedTime(t *testing.T) {
	m := parsePage(t)

	ts, ok := m.PublishedTime()
	require.True(t, ok)
	require.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), ts)

	none := meta.Meta{}
	_, ok = none.PublishedTime()
	require.False(t, ok)
}
