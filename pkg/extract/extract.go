// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package extract converts one pre-fetched HTML recipe page into a
normalized [Record]. For every output field an ordered list of
strategies is tried (structured data, document metadata, microdata,
heading heuristics, structural heuristics) and the first success wins.

The package never fetches anything: documents are handed in already
downloaded, parsed once, and processed in isolation.
*/
package extract

import (
	"io"

	"golang.org/x/net/html"
)

// Document is one pre-fetched HTML page. It is parsed once at
// construction; everything after that is a read-only traversal.
type Document struct {
	Root   *html.Node
	Source string
}

// NewDocument parses an HTML document. Source is an informational
// label (file name or URL) carried into the record and the logs.
func NewDocument(r io.Reader, source string) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, Source: source}, nil
}
