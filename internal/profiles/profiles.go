// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package profiles loads site and locale extraction profiles. A profile
// is plain YAML data: heading keywords, class hints, vocabularies and
// policies. The embedded defaults cover the stock locales, a directory
// of extra profiles can extend or override them at startup.
package profiles

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"codeberg.org/plated/plated/pkg/duration"
	"codeberg.org/plated/plated/pkg/extract"
	"codeberg.org/plated/plated/pkg/ingredient"
)

//go:embed data/*.yaml
var defaultFiles embed.FS

// Profile describes how one site or locale is extracted. Every field
// is data consumed by [extract.Pipeline]; adding a site never needs new
// code.
type Profile struct {
	Name      string   `yaml:"name"`
	Locale    string   `yaml:"locale"`
	Sites     []string `yaml:"sites"`
	TitleTrim []string `yaml:"title_trim"`

	Headings struct {
		Ingredients  []string `yaml:"ingredients"`
		Instructions []string `yaml:"instructions"`
	} `yaml:"headings"`

	Classes struct {
		Description []string `yaml:"description"`
		Notes       []string `yaml:"notes"`
		PrepTime    []string `yaml:"prep_time"`
		CookTime    []string `yaml:"cook_time"`
		TotalTime   []string `yaml:"total_time"`
	} `yaml:"classes"`

	Tags struct {
		Stopwords []string `yaml:"stopwords"`
		Delimiter string   `yaml:"delimiter"`
	} `yaml:"tags"`

	Images struct {
		Delimiter string `yaml:"delimiter"`
	} `yaml:"images"`

	Amounts struct {
		RangePolicy string `yaml:"range_policy"`
	} `yaml:"amounts"`

	Durations struct {
		RangePolicy string         `yaml:"range_policy"`
		Units       map[string]int `yaml:"units"`
		Phrases     map[string]int `yaml:"phrases"`
		PrepVerbs   []string       `yaml:"prep_verbs"`
		CookVerbs   []string       `yaml:"cook_verbs"`
	} `yaml:"durations"`

	// Vocabulary overrides the English ingredient baseline when set.
	Vocabulary *ingredient.Vocabulary `yaml:"vocabulary"`

	tag language.Tag
}

// LanguageTag returns the profile's BCP 47 locale tag.
func (p *Profile) LanguageTag() language.Tag {
	return p.tag
}

// Build compiles the profile into a ready extraction pipeline.
func (p *Profile) Build(logger *slog.Logger) (*extract.Pipeline, error) {
	vocab := ingredient.DefaultVocabulary()
	if p.Vocabulary != nil {
		vocab = *p.Vocabulary
	}

	amountPolicy, err := ingredient.ParseRangePolicy(p.Amounts.RangePolicy)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}
	parser, err := ingredient.NewParser(vocab, ingredient.WithRangePolicy(amountPolicy))
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}

	durationPolicy, err := duration.ParseRangePolicy(p.Durations.RangePolicy)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", p.Name, err)
	}

	var prepTimes, cookTimes *duration.Scanner
	if len(p.Durations.Units) > 0 {
		prepTimes = duration.NewScanner(
			p.Durations.PrepVerbs, p.Durations.Units, p.Durations.Phrases, durationPolicy)
		cookTimes = duration.NewScanner(
			p.Durations.CookVerbs, p.Durations.Units, p.Durations.Phrases, durationPolicy)
	}

	return extract.NewPipeline(extract.Options{
		Site:                p.Name,
		TitleTrim:           p.TitleTrim,
		IngredientHeadings:  p.Headings.Ingredients,
		InstructionHeadings: p.Headings.Instructions,
		NoteClasses:         p.Classes.Notes,
		DescriptionClasses:  p.Classes.Description,
		PrepClasses:         p.Classes.PrepTime,
		CookClasses:         p.Classes.CookTime,
		TotalClasses:        p.Classes.TotalTime,
		TagStopwords:        p.Tags.Stopwords,
		TagDelimiter:        p.Tags.Delimiter,
		ImageDelimiter:      p.Images.Delimiter,
		Ingredients:         parser,
		PrepTimes:           prepTimes,
		CookTimes:           cookTimes,
		Logger:              logger,
	})
}

// Registry holds the loaded profiles, keyed by name.
type Registry struct {
	profiles map[string]*Profile
}

// Load reads the embedded default profiles.
func Load() (*Registry, error) {
	r := &Registry{profiles: map[string]*Profile{}}
	if err := r.loadFS(defaultFiles, "data"); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadDir adds every *.yaml profile of a directory, overriding any
// embedded profile with the same name.
func (r *Registry) LoadDir(dir string) error {
	return r.loadFS(os.DirFS(dir), ".")
}

func (r *Registry) loadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		fd, err := fsys.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		p, err := readProfile(fd)
		fd.Close() // nolint:errcheck
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name(), err)
		}
		r.profiles[p.Name] = p
	}
	return nil
}

func readProfile(rd io.Reader) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("profile has no name")
	}

	p.tag = language.English
	if p.Locale != "" {
		tag, err := language.Parse(p.Locale)
		if err != nil {
			return nil, fmt.Errorf("profile %s: locale %q: %w", p.Name, p.Locale, err)
		}
		p.tag = tag
	}
	return p, nil
}

// Get returns a profile by name.
func (r *Registry) Get(name string) (*Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// ForSite returns the profile whose site list matches the hostname or
// file name, falling back to "default".
func (r *Registry) ForSite(name string) *Profile {
	name = strings.ToLower(name)
	for _, p := range r.sorted() {
		for _, site := range p.Sites {
			if site != "" && strings.Contains(name, strings.ToLower(site)) {
				return p
			}
		}
	}
	p, _ := r.Get("default")
	return p
}

// Names returns the loaded profile names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) sorted() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, name := range r.Names() {
		out = append(out, r.profiles[name])
	}
	return out
}
