// Package merge combines two normalized records that share an identifier.
package merge

import (
	"math"

	"github.com/StinkyLord/food-normalizer/internal/model"
)

// NoteSeparator joins the provenance notes of merged records.
const NoteSeparator = " | Merged with: "

// Records returns a new record combining existing and incoming:
//   - headline columns present in both are averaged and rounded to two
//     decimals; a column present in one record keeps that value;
//   - nutrients are the union of both mappings, with shared keys averaged
//     (unrounded);
//   - notes are joined existing first.
//
// Identity, category, units and source stay those of existing. If either
// nutrient mapping failed to decode, existing is returned unchanged with
// ok == false. Neither input is modified.
//
// Averages are not weighted by how many records were folded in before, so a
// third record counts as much as the first two together.
func Records(existing, incoming *model.FoodRecord) (merged *model.FoodRecord, ok bool) {
	if existing.NutrientsErr != nil || incoming.NutrientsErr != nil {
		return existing, false
	}

	out := existing.Clone()
	for _, col := range model.HeadlineColumns {
		a, inA := existing.Headline[col]
		b, inB := incoming.Headline[col]
		switch {
		case inA && inB:
			out.Headline[col] = round2((a + b) / 2)
		case inB:
			out.Headline[col] = b
		}
	}

	for k, b := range incoming.Nutrients {
		if a, inA := existing.Nutrients[k]; inA {
			out.Nutrients[k] = (a + b) / 2
		} else {
			out.Nutrients[k] = b
		}
	}

	out.Provenance.Notes = existing.Provenance.Notes + NoteSeparator + incoming.Provenance.Notes
	return out, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
