// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package batch_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codeberg.org/plated/plated/internal/batch"
	"codeberg.org/plated/plated/internal/profiles"
	"codeberg.org/plated/plated/pkg/extract"
)

const testRecipe = `<html><head>
<script type="application/ld+json">{
	"@type": "Recipe",
	"name": "Test Dish",
	"recipeIngredient": ["2 cups flour"]
}</script>
</head><body></body></html>`

func TestRun(t *testing.T) {
	assert := require.New(t)

	in := t.TempDir()
	out := t.TempDir()
	assert.NoError(os.WriteFile(filepath.Join(in, "dish.html"), []byte(testRecipe), 0o644))
	assert.NoError(os.WriteFile(filepath.Join(in, "noise.txt"), []byte("not a page"), 0o644))

	registry, err := profiles.Load()
	assert.NoError(err)

	stats, err := batch.New(registry, batch.Options{
		InputDir:  in,
		OutputDir: out,
		Workers:   2,
	}).Run(context.Background())
	assert.NoError(err)
	assert.Equal(1, stats.Processed)
	assert.Equal(1, stats.Skipped)
	assert.Equal(0, stats.Failed)

	data, err := os.ReadFile(filepath.Join(out, "dish.json"))
	assert.NoError(err)

	rec := extract.Record{}
	assert.NoError(json.Unmarshal(data, &rec))
	assert.Equal("Test Dish", rec.DishName.String())
	assert.Len(rec.Ingredients, 1)
	assert.Equal("flour", rec.Ingredients[0].Name)
}

func TestRunNestedDirs(t *testing.T) {
	assert := require.New(t)

	in := t.TempDir()
	out := t.TempDir()
	sub := filepath.Join(in, "site")
	assert.NoError(os.MkdirAll(sub, 0o755))
	assert.NoError(os.WriteFile(filepath.Join(sub, "nested.html"), []byte(testRecipe), 0o644))

	registry, err := profiles.Load()
	assert.NoError(err)

	stats, err := batch.New(registry, batch.Options{
		InputDir:  in,
		OutputDir: out,
	}).Run(context.Background())
	assert.NoError(err)
	assert.Equal(1, stats.Processed)

	_, err = os.Stat(filepath.Join(out, "site", "nested.json"))
	assert.NoError(err)
}

// Two inputs sharing a basename in different subdirectories must both
// end up in the output tree.
func TestRunSameBasename(t *testing.T) {
	assert := require.New(t)

	in := t.TempDir()
	out := t.TempDir()
	for _, site := range []string{"alpha", "beta"} {
		dir := filepath.Join(in, site)
		assert.NoError(os.MkdirAll(dir, 0o755))
		assert.NoError(os.WriteFile(filepath.Join(dir, "index.html"), []byte(testRecipe), 0o644))
	}

	registry, err := profiles.Load()
	assert.NoError(err)

	stats, err := batch.New(registry, batch.Options{
		InputDir:  in,
		OutputDir: out,
	}).Run(context.Background())
	assert.NoError(err)
	assert.Equal(2, stats.Processed)

	for _, site := range []string{"alpha", "beta"} {
		_, err = os.Stat(filepath.Join(out, site, "index.json"))
		assert.NoError(err)
	}
}

func TestRunUnknownProfile(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "dish.html"), []byte(testRecipe), 0o644))

	registry, err := profiles.Load()
	require.NoError(t, err)

	stats, err := batch.New(registry, batch.Options{
		InputDir:  in,
		OutputDir: out,
		Profile:   "nope",
	}).Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, stats.Failed)
}
