package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/StinkyLord/food-normalizer/internal/model"
)

// recordNamespace seeds the name-based UUIDs derived from record ids, so the
// same id always maps to the same UUID across runs.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("food-normalizer/records"))

// RecordUUID returns the stable UUID for a record id.
func RecordUUID(id string) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte(id))
}

type jsonRecord struct {
	ID               string            `json:"id"`
	UUID             string            `json:"uuid"`
	Name             string            `json:"name"`
	PortionG         float64           `json:"portion_g"`
	EnergyKcal       *float64          `json:"energy_kcal"`
	ProteinG         *float64          `json:"protein_g"`
	FatG             *float64          `json:"fat_g"`
	CarbsG           *float64          `json:"carbs_g"`
	FiberG           *float64          `json:"fiber_g"`
	CalciumMg        *float64          `json:"calcium_mg"`
	IronMg           *float64          `json:"iron_mg"`
	SodiumMg         *float64          `json:"sodium_mg"`
	Units            *model.UnitConfig `json:"unitConfig"`
	NutritionPer100g model.Nutrients   `json:"nutritionPer100g"`
	NutritionRaw     string            `json:"nutritionPer100gRaw,omitempty"`
	Category         string            `json:"category"`
	SourcePDF        string            `json:"source_pdf"`
	Page             string            `json:"page"`
	Notes            string            `json:"notes"`
}

func toJSONRecord(r *model.FoodRecord) jsonRecord {
	opt := func(col string) *float64 {
		if v, ok := r.Headline[col]; ok {
			return &v
		}
		return nil
	}
	n := r.Nutrients
	if n == nil {
		n = model.Nutrients{}
	}
	return jsonRecord{
		ID:               r.ID,
		UUID:             RecordUUID(r.ID).String(),
		Name:             r.Name,
		PortionG:         r.PortionG,
		EnergyKcal:       opt("energy_kcal"),
		ProteinG:         opt("protein_g"),
		FatG:             opt("fat_g"),
		CarbsG:           opt("carbs_g"),
		FiberG:           opt("fiber_g"),
		CalciumMg:        opt("calcium_mg"),
		IronMg:           opt("iron_mg"),
		SodiumMg:         opt("sodium_mg"),
		Units:            r.Units,
		NutritionPer100g: n,
		NutritionRaw:     r.RawNutrients,
		Category:         r.Category,
		SourcePDF:        r.Provenance.SourcePDF,
		Page:             r.Provenance.Page,
		Notes:            r.Provenance.Notes,
	}
}

// WriteJSON writes the records as an indented JSON array to path, or to
// stdout when path is "-". An empty slice is written as [] rather than null.
func WriteJSON(records []*model.FoodRecord, path string) error {
	return withOutput(path, func(w io.Writer) error {
		return EncodeJSON(w, records)
	})
}

// EncodeJSON writes the records as an indented JSON array to w.
func EncodeJSON(w io.Writer, records []*model.FoodRecord) error {
	out := make([]jsonRecord, 0, len(records))
	for _, r := range records {
		out = append(out, toJSONRecord(r))
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to marshal records JSON: %w", err)
	}
	return nil
}
