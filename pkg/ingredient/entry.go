// SPDX-FileCopyrightText: © 2025 The Plated contributors
//
// SPDX-License-Identifier: AGPL-3.0-only

package ingredient

import "encoding/json"

// Entry is one parsed ingredient line.
// Amount is an int, a float64, a string (when the source value could not
// be reduced to a number, e.g. a preserved range) or nil.
// Unit is a canonical label, empty when the line carries a bare count.
type Entry struct {
	Name     string
	Amount   any
	Unit     string
	Modifier string
}

// MarshalJSON renders the entry as a {name, amount, unit} record,
// with null for a missing amount or unit.
func (e Entry) MarshalJSON() ([]byte, error) {
	rec := struct {
		Name     string `json:"name"`
		Amount   any    `json:"amount"`
		Unit     any    `json:"unit"`
		Modifier string `json:"modifier,omitempty"`
	}{
		Name:     e.Name,
		Amount:   e.Amount,
		Modifier: e.Modifier,
	}
	if e.Unit != "" {
		rec.Unit = e.Unit
	}
	return json.Marshal(rec)
}
