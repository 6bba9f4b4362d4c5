// Package classify assigns a food group to a food name and picks the portion
// unit table for it.
package classify

import (
	"strings"

	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/reference"
)

// riceKeyword selects the dedicated rice unit table regardless of category.
const riceKeyword = "arroz"

// Categorizer evaluates an ordered rule list against food names.
type Categorizer struct {
	Rules    []reference.Rule
	Fallback string // label returned when no rule matches
}

// New returns a Categorizer over reference.CategoryRules. An empty fallback
// selects reference.DefaultCategory.
func New(fallback string) *Categorizer {
	if fallback == "" {
		fallback = reference.DefaultCategory
	}
	return &Categorizer{Rules: reference.CategoryRules, Fallback: fallback}
}

// Categorize returns the label of the first rule with a keyword contained in
// the lowercased name.
func (c *Categorizer) Categorize(name string) string {
	lower := strings.ToLower(name)
	for _, r := range c.Rules {
		if r.Matches(lower) {
			return r.Label
		}
	}
	return c.Fallback
}

var std = New("")

// Categorize classifies name with the built-in rules and default fallback.
func Categorize(name string) string {
	return std.Categorize(name)
}

// ResolveUnits returns the unit table for a food. Rice gets its own table;
// everything else goes through the category mapping. The result points into
// the reference tables and must not be modified.
func ResolveUnits(name, category string) *model.UnitConfig {
	if strings.Contains(strings.ToLower(name), riceKeyword) {
		return reference.Table(reference.KeyArroz)
	}
	return reference.Table(reference.TableKeyFor(category))
}
