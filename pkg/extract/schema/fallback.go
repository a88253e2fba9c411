// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package schema

import (
	"regexp"
	"strings"
)

// Degraded text fallback: when no JSON-LD payload decodes (sources
// occasionally deliver raw control characters inside strings), known
// fields are scraped straight out of the payload text with anchored
// patterns. The result is best-effort and may be partial.

var (
	rxRecipeMarker = regexp.MustCompile(`"@type"\s*:\s*"Recipe"`)
	rxAuthorBlock  = regexp.MustCompile(`"author"\s*:\s*\{[^}]*\}`)

	rxFallbackScalars = map[string]*regexp.Regexp{
		"name":           scalarField("name"),
		"description":    scalarField("description"),
		"prepTime":       scalarField("prepTime"),
		"cookTime":       scalarField("cookTime"),
		"totalTime":      scalarField("totalTime"),
		"recipeCategory": scalarField("recipeCategory"),
		"recipeCuisine":  scalarField("recipeCuisine"),
		"keywords":       scalarField("keywords"),
		"datePublished":  scalarField("datePublished"),
	}

	rxIngredientBlock   = regexp.MustCompile(`(?s)"recipeIngredient"\s*:\s*\[(.*?)\]`)
	rxInstructionsBlock = regexp.MustCompile(`(?s)"recipeInstructions"\s*:\s*\[(.*?)\]\s*[,}]`)
	rxImageBlock        = regexp.MustCompile(`(?s)"image"\s*:\s*\[(.*?)\]`)
	rxImageScalar       = regexp.MustCompile(`"image"\s*:\s*"(https?://[^"]+)"`)
	rxQuoted            = regexp.MustCompile(`"((?:[^"\\]|\\.)+)"`)
	rxStepText          = regexp.MustCompile(`"text"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	rxURL               = regexp.MustCompile(`"(https?://[^"]+)"`)
)

func scalarField(name string) *regexp.Regexp {
	return regexp.MustCompile(`"` + name + `"\s*:\s*"((?:[^"\\]|\\.)+)"`)
}

func textFallback(payloads []string) *Candidate {
	for _, raw := range payloads {
		if props := scrapeRecipeText(raw); props != nil {
			return newCandidate(props, SingleObject)
		}
	}
	return nil
}

func scrapeRecipeText(raw string) map[string]any {
	loc := rxRecipeMarker.FindStringIndex(raw)
	if loc == nil {
		return nil
	}
	// the payload is one script body, so the fragment runs from the
	// type marker to the end of the payload
	fragment := raw[loc[0]:]
	props := map[string]any{"@type": "Recipe"}

	for key, rx := range rxFallbackScalars {
		scope := fragment
		if key == "name" {
			// skip a nested author object so its name is not mistaken
			// for the dish name
			scope = rxAuthorBlock.ReplaceAllString(fragment, "")
		}
		if m := rx.FindStringSubmatch(scope); m != nil {
			props[key] = unescapeJSON(m[1])
		}
	}

	if m := rxIngredientBlock.FindStringSubmatch(fragment); m != nil {
		lines := []any{}
		for _, q := range rxQuoted.FindAllStringSubmatch(m[1], -1) {
			lines = append(lines, unescapeJSON(q[1]))
		}
		if len(lines) > 0 {
			props["recipeIngredient"] = lines
		}
	}

	if m := rxInstructionsBlock.FindStringSubmatch(fragment); m != nil {
		steps := []any{}
		for _, q := range rxStepText.FindAllStringSubmatch(m[1], -1) {
			if text := strings.TrimSpace(unescapeJSON(q[1])); text != "" {
				steps = append(steps, map[string]any{"@type": "HowToStep", "text": text})
			}
		}
		if len(steps) == 0 {
			// plain string steps
			for _, q := range rxQuoted.FindAllStringSubmatch(m[1], -1) {
				steps = append(steps, unescapeJSON(q[1]))
			}
		}
		if len(steps) > 0 {
			props["recipeInstructions"] = steps
		}
	}

	if m := rxImageBlock.FindStringSubmatch(fragment); m != nil {
		urls := []any{}
		for _, q := range rxURL.FindAllStringSubmatch(m[1], -1) {
			urls = append(urls, q[1])
		}
		if len(urls) > 0 {
			props["image"] = urls
		}
	} else if m := rxImageScalar.FindStringSubmatch(fragment); m != nil {
		props["image"] = m[1]
	}

	if len(props) < 2 {
		return nil
	}
	return props
}

// unescapeJSON resolves the escape sequences the fallback regexes leave
// in place.
func unescapeJSON(s string) string {
	r := strings.NewReplacer(
		`\"`, `"`,
		`\\`, `\`,
		`\/`, `/`,
		`\n`, " ",
		`\r`, " ",
		`\t`, " ",
	)
	return strings.Join(strings.Fields(r.Replace(s)), " ")
}
