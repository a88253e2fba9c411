// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package extract

import (
	"encoding/json"

	"codeberg.org/plated/plated/pkg/ingredient"
)

// OptText is a string field that serializes to null when empty.
type OptText string

// MarshalJSON implements [json.Marshaler].
func (s OptText) MarshalJSON() ([]byte, error) {
	if s == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s OptText) String() string {
	return string(s)
}

// Record is the normalized result for one document. It is assembled
// once and never mutated afterwards; missing fields are null, which is
// not an error condition.
type Record struct {
	DishName     OptText            `json:"dish_name"`
	Description  OptText            `json:"description"`
	Ingredients  []ingredient.Entry `json:"ingredients"`
	Instructions OptText            `json:"instructions"`
	Category     OptText            `json:"category"`
	PrepTime     OptText            `json:"prep_time"`
	CookTime     OptText            `json:"cook_time"`
	TotalTime    OptText            `json:"total_time"`
	Notes        OptText            `json:"notes"`
	Tags         OptText            `json:"tags"`
	ImageURLs    OptText            `json:"image_urls"`
	Published    OptText            `json:"published"`
	Source       string             `json:"source,omitempty"`
}

// IsEmpty reports whether no field at all could be resolved.
func (r *Record) IsEmpty() bool {
	return r.DishName == "" &&
		r.Description == "" &&
		len(r.Ingredients) == 0 &&
		r.Instructions == "" &&
		r.Category == "" &&
		r.PrepTime == "" &&
		r.CookTime == "" &&
		r.TotalTime == "" &&
		r.Notes == "" &&
		r.Tags == "" &&
		r.ImageURLs == ""
}
