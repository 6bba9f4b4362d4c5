// Package model defines the data structures shared by the normalization pipeline.
package model

// PortionG is the reference portion every normalized record is expressed in.
const PortionG = 100

// Nutrient keys of the nutritionPer100g blob, in serialization order.
const (
	Calories    = "calories"
	EnergyKJ    = "energy_kj"
	Protein     = "protein"
	Fat         = "fat"
	Carbs       = "carbs"
	Fiber       = "fiber"
	Cholesterol = "cholesterol"
	Moisture    = "moisture"
	Ash         = "ash"
	Calcium     = "calcium"
	Magnesium   = "magnesium"
	Manganese   = "manganese"
	Phosphorus  = "phosphorus"
	Iron        = "iron"
	Sodium      = "sodium"
	Potassium   = "potassium"
	Copper      = "copper"
	Zinc        = "zinc"
	Retinol     = "retinol"
	RE          = "re"
	RAE         = "rae"
	Thiamine    = "thiamine"
	Riboflavin  = "riboflavin"
	Pyridoxine  = "pyridoxine"
	Niacin      = "niacin"
	VitaminC    = "vitamin_c"
)

// NutrientKeys lists every nutrient key in serialization order:
// macronutrients, then minerals, then vitamins.
var NutrientKeys = []string{
	Calories, EnergyKJ, Protein, Fat, Carbs, Fiber, Cholesterol, Moisture, Ash,
	Calcium, Magnesium, Manganese, Phosphorus, Iron, Sodium, Potassium, Copper, Zinc,
	Retinol, RE, RAE, Thiamine, Riboflavin, Pyridoxine, Niacin, VitaminC,
}

// HeadlineColumns are the flat numeric output columns, in output order.
var HeadlineColumns = []string{
	"energy_kcal", "protein_g", "fat_g", "carbs_g", "fiber_g", "calcium_mg", "iron_mg", "sodium_mg",
}

// Nutrients is a sparse per-100g nutrient mapping. A missing key means the
// value is unknown, never zero.
type Nutrients map[string]float64

// Headline holds the flat numeric output columns that have a value.
type Headline map[string]float64

// UnitConfig describes the portion units accepted for a food and their gram
// (or millilitre, for liquids) equivalents.
type UnitConfig struct {
	DefaultUnit string             `json:"defaultUnit" yaml:"defaultUnit"`
	Units       []string           `json:"units" yaml:"units"`
	Conversions map[string]float64 `json:"conversions" yaml:"conversions"`
}

// Provenance records where a record came from.
type Provenance struct {
	SourcePDF string // Source document label (e.g. "#1food-moz.pdf")
	Page      string
	Notes     string // e.g. "Dataset 2, Entry 14"
	Dataset   int    // 1-based dataset index; 0 for records not read from a dataset
	Row       int    // 1-based row number within the dataset
}

// FoodRecord is one normalized food entry.
type FoodRecord struct {
	ID         string
	Name       string
	Category   string
	PortionG   float64
	Headline   Headline
	Nutrients  Nutrients
	Units      *UnitConfig // shared with the reference tables, never mutated
	Provenance Provenance

	// NutrientsErr is set when a record decoded from a normalized file carried
	// a nutrient blob that could not be parsed. RawNutrients then holds the
	// cell text, which is written back unchanged.
	NutrientsErr error
	RawNutrients string
}

// Clone returns a copy of r whose maps can be modified without touching r.
// Units is shared.
func (r *FoodRecord) Clone() *FoodRecord {
	c := *r
	c.Headline = make(Headline, len(r.Headline))
	for k, v := range r.Headline {
		c.Headline[k] = v
	}
	c.Nutrients = make(Nutrients, len(r.Nutrients))
	for k, v := range r.Nutrients {
		c.Nutrients[k] = v
	}
	return &c
}
