// Package nutrients reads nutrient values out of raw source rows.
package nutrients

import (
	"math"
	"strconv"
	"strings"

	"github.com/StinkyLord/food-normalizer/internal/model"
)

// Null is written in place of an absent numeric value.
const Null = "NULL"

// Field maps a raw source column onto a nutrient key.
type Field struct {
	Key    string
	Column string
}

// Fields lists the nutrient columns read from a source row, in model.NutrientKeys order.
var Fields = []Field{
	{model.Calories, "energy_kcal"},
	{model.EnergyKJ, "energy_kj"},
	{model.Protein, "protein_g"},
	{model.Fat, "lipids_g"},
	{model.Carbs, "carbohydrate_g"},
	{model.Fiber, "fiber_g"},
	{model.Cholesterol, "cholesterol_mg"},
	{model.Moisture, "moisture_pct"},
	{model.Ash, "ash_g"},
	{model.Calcium, "calcium_mg"},
	{model.Magnesium, "magnesium_mg"},
	{model.Manganese, "manganese_mg"},
	{model.Phosphorus, "phosphorus_mg"},
	{model.Iron, "iron_mg"},
	{model.Sodium, "sodium_mg"},
	{model.Potassium, "potassium_mg"},
	{model.Copper, "copper_mg"},
	{model.Zinc, "zinc_mg"},
	{model.Retinol, "retinol_mcg"},
	{model.RE, "re_mcg"},
	{model.RAE, "rae_mcg"},
	{model.Thiamine, "thiamine_mg"},
	{model.Riboflavin, "riboflavin_mg"},
	{model.Pyridoxine, "pyridoxine_mg"},
	{model.Niacin, "niacin_mg"},
	{model.VitaminC, "vitamin_c_mg"},
}

// HeadlineFields maps each flat output column to the raw column it is read from.
var HeadlineFields = []Field{
	{"energy_kcal", "energy_kcal"},
	{"protein_g", "protein_g"},
	{"fat_g", "lipids_g"},
	{"carbs_g", "carbohydrate_g"},
	{"fiber_g", "fiber_g"},
	{"calcium_mg", "calcium_mg"},
	{"iron_mg", "iron_mg"},
	{"sodium_mg", "sodium_mg"},
}

// ParseValue converts raw cell text to a number. Empty cells, "NA" and "TR"
// (trace) in any case, and text that is not a number all report ok == false.
func ParseValue(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "NA") || strings.EqualFold(s, "TR") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Extract returns the nutrients present in row. Absent values are omitted.
func Extract(row map[string]string) model.Nutrients {
	return model.Nutrients(extract(row, Fields))
}

// Headline returns the flat output columns present in row.
func Headline(row map[string]string) model.Headline {
	return model.Headline(extract(row, HeadlineFields))
}

func extract(row map[string]string, fields []Field) map[string]float64 {
	out := make(map[string]float64, len(fields))
	for _, f := range fields {
		raw, ok := row[f.Column]
		if !ok {
			continue
		}
		if v, ok := ParseValue(raw); ok {
			out[f.Key] = v
		}
	}
	return out
}

// FormatValue renders v as the shortest decimal text that parses back to it,
// or Null when ok is false.
func FormatValue(v float64, ok bool) string {
	if !ok {
		return Null
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Lookup formats key from m, or Null when the key is absent.
func Lookup(m map[string]float64, key string) string {
	v, ok := m[key]
	return FormatValue(v, ok)
}
