// Package output serialises normalized food records.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/StinkyLord/food-normalizer/internal/classify"
	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/nutrients"
	"github.com/StinkyLord/food-normalizer/internal/reference"
)

// Columns is the fixed column order of the normalized schema.
var Columns = []string{
	"id", "name", "portion_g",
	"energy_kcal", "protein_g", "fat_g", "carbs_g", "fiber_g", "calcium_mg", "iron_mg", "sodium_mg",
	"defaultUnit", "units", "unitConversions", "nutritionPer100g",
	"category", "source_pdf", "page", "notes",
}

// Encode renders r as one row in Columns order. Absent numbers are written
// as NULL.
func Encode(r *model.FoodRecord) ([]string, error) {
	units := r.Units
	if units == nil {
		units = reference.Table(reference.KeyDefault)
	}
	unitsJSON, err := units.UnitsJSON()
	if err != nil {
		return nil, fmt.Errorf("%s: encoding units: %w", r.ID, err)
	}
	convJSON, err := units.ConversionsJSON()
	if err != nil {
		return nil, fmt.Errorf("%s: encoding unit conversions: %w", r.ID, err)
	}
	nutrJSON, err := r.Nutrients.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%s: encoding nutrients: %w", r.ID, err)
	}
	if r.NutrientsErr != nil {
		nutrJSON = []byte(r.RawNutrients)
	}

	row := make([]string, 0, len(Columns))
	row = append(row, r.ID, r.Name, nutrients.FormatValue(r.PortionG, true))
	for _, col := range model.HeadlineColumns {
		row = append(row, nutrients.Lookup(r.Headline, col))
	}
	row = append(row,
		units.DefaultUnit, unitsJSON, convJSON, string(nutrJSON),
		r.Category, r.Provenance.SourcePDF, r.Provenance.Page, r.Provenance.Notes,
	)
	return row, nil
}

// WriteCSV writes the header and one row per record to path, or to stdout
// when path is "-".
func WriteCSV(records []*model.FoodRecord, path string) error {
	return withOutput(path, func(w io.Writer) error {
		return EncodeCSV(w, records)
	})
}

// EncodeCSV writes the header and records to w.
func EncodeCSV(w io.Writer, records []*model.FoodRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		row, err := Encode(r)
		if err != nil {
			return err
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a file previously written by WriteCSV. A record whose
// nutritionPer100g cell cannot be decoded is still returned, with
// NutrientsErr set.
func ReadCSV(path string) ([]*model.FoodRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// DecodeCSV parses normalized rows from r.
func DecodeCSV(r io.Reader) ([]*model.FoodRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[h] = i
	}
	if _, ok := idx["id"]; !ok {
		return nil, fmt.Errorf("not a normalized file: no id column")
	}

	var out []*model.FoodRecord
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		get := func(col string) string {
			if i, ok := idx[col]; ok && i < len(rec) {
				return rec[i]
			}
			return ""
		}
		out = append(out, decodeRow(get))
	}
	return out, nil
}

func decodeRow(get func(string) string) *model.FoodRecord {
	r := &model.FoodRecord{
		ID:       get("id"),
		Name:     get("name"),
		Category: get("category"),
		PortionG: model.PortionG,
		Headline: model.Headline{},
		Provenance: model.Provenance{
			SourcePDF: get("source_pdf"),
			Page:      get("page"),
			Notes:     get("notes"),
		},
	}
	if v, ok := nutrients.ParseValue(get("portion_g")); ok {
		r.PortionG = v
	}
	for _, col := range model.HeadlineColumns {
		if v, ok := nutrients.ParseValue(get(col)); ok {
			r.Headline[col] = v
		}
	}

	raw := get("nutritionPer100g")
	if n, err := decodeNutrients(raw); err != nil {
		r.NutrientsErr = err
		r.RawNutrients = raw
	} else {
		r.Nutrients = n
	}

	r.Units = decodeUnits(get("defaultUnit"), get("units"), get("unitConversions"))
	if r.Units == nil {
		r.Units = classify.ResolveUnits(r.Name, r.Category)
	}
	return r
}

// decodeNutrients parses a nutritionPer100g blob. Null values are unknown and
// dropped; an empty cell is an empty set.
func decodeNutrients(cell string) (model.Nutrients, error) {
	n := model.Nutrients{}
	if cell == "" {
		return n, nil
	}
	var vals map[string]*float64
	if err := json.Unmarshal([]byte(cell), &vals); err != nil {
		return nil, err
	}
	for k, v := range vals {
		if v != nil {
			n[k] = *v
		}
	}
	return n, nil
}

// decodeUnits rebuilds a unit configuration from its three cells, or returns
// nil if they do not form a consistent one.
func decodeUnits(def, unitsJSON, convJSON string) *model.UnitConfig {
	u := &model.UnitConfig{DefaultUnit: def}
	if err := json.Unmarshal([]byte(unitsJSON), &u.Units); err != nil {
		return nil
	}
	if err := json.Unmarshal([]byte(convJSON), &u.Conversions); err != nil {
		return nil
	}
	if def == "" {
		return nil
	}
	for _, unit := range u.Units {
		if _, ok := u.Conversions[unit]; !ok {
			return nil
		}
	}
	if _, ok := u.Conversions[def]; !ok {
		return nil
	}
	return u
}

// withOutput runs write against stdout when path is "-", or against a newly
// created file at path (creating parent directories).
func withOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
