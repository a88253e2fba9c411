// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package profiles_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/plated/plated/internal/profiles"
)

func TestLoadEmbedded(t *testing.T) {
	assert := require.New(t)

	registry, err := profiles.Load()
	assert.NoError(err)
	assert.Equal([]string{"default", "nl", "sr"}, registry.Names())

	p, ok := registry.Get("default")
	assert.True(ok)
	assert.Equal(language.English, p.LanguageTag())

	sr, ok := registry.Get("sr")
	assert.True(ok)
	assert.Equal("sr", sr.LanguageTag().String())
	assert.NotNil(sr.Vocabulary)
}

func TestForSite(t *testing.T) {
	registry, err := profiles.Load()
	require.NoError(t, err)

	tests := []struct {
		name     string
		expected string
	}{
		{"leukerecepten_pasta.html", "nl"},
		{"www.oklagija.rs_sarma.html", "sr"},
		{"domacirecepti-page.html", "sr"},
		{"unknown-site.html", "default"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := registry.ForSite(test.name)
			require.NotNil(t, p)
			require.Equal(t, test.expected, p.Name)
		})
	}
}

func TestBuildAll(t *testing.T) {
	registry, err := profiles.Load()
	require.NoError(t, err)

	for _, name := range registry.Names() {
		t.Run(name, func(t *testing.T) {
			p, ok := registry.Get(name)
			require.True(t, ok)
			pipeline, err := p.Build(nil)
			require.NoError(t, err)
			require.NotNil(t, pipeline)
		})
	}
}

func TestLoadDir(t *testing.T) {
	assert := require.New(t)

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "mysite.yaml"), []byte(`
name: mysite
locale: en
sites: [mysite]
headings:
  ingredients: [ingredients]
`), 0o644)
	assert.NoError(err)

	registry, err := profiles.Load()
	assert.NoError(err)
	assert.NoError(registry.LoadDir(dir))

	p, ok := registry.Get("mysite")
	assert.True(ok)
	assert.Equal([]string{"mysite"}, p.Sites)
	assert.Equal("default", registry.ForSite("other.html").Name)
	assert.Equal("mysite", registry.ForSite("mysite_cake.html").Name)
}

func TestLoadDirRejectsBadProfile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "bad.yaml"), []byte("locale: en\n"), 0o644))

	registry, err := profiles.Load()
	require.NoError(t, err)
	require.Error(t, registry.LoadDir(dir))
}
