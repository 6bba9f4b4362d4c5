package output

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/food-normalizer/internal/classify"
	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/nutrients"
	"github.com/StinkyLord/food-normalizer/internal/reference"
)

func makeRecord(id, name string, raw map[string]string) *model.FoodRecord {
	category := classify.Categorize(name)
	return &model.FoodRecord{
		ID:        id,
		Name:      name,
		Category:  category,
		PortionG:  model.PortionG,
		Headline:  nutrients.Headline(raw),
		Nutrients: nutrients.Extract(raw),
		Units:     classify.ResolveUnits(name, category),
		Provenance: model.Provenance{
			SourcePDF: "#1food-moz.pdf",
			Page:      "1",
			Notes:     "Dataset 1, Entry 1",
			Dataset:   1,
			Row:       1,
		},
	}
}

func arroz() *model.FoodRecord {
	return makeRecord("arroz_branco", "Arroz branco", map[string]string{
		"energy_kcal": "130", "lipids_g": "NA", "protein_g": "2.5", "fiber_g": "Tr",
	})
}

func column(row []string, name string) string {
	for i, c := range Columns {
		if c == name {
			return row[i]
		}
	}
	return ""
}

func TestEncode_ArrozBranco(t *testing.T) {
	row, err := Encode(arroz())
	require.NoError(t, err)
	require.Len(t, row, len(Columns))

	assert.Equal(t, "arroz_branco", column(row, "id"))
	assert.Equal(t, "100", column(row, "portion_g"))
	assert.Equal(t, "130", column(row, "energy_kcal"))
	assert.Equal(t, "NULL", column(row, "fat_g"))
	assert.Equal(t, "NULL", column(row, "fiber_g"))
	assert.Equal(t, "Cereais", column(row, "category"))
	assert.Equal(t, "100g", column(row, "defaultUnit"))
	assert.Equal(t, `{"calories":130,"protein":2.5}`, column(row, "nutritionPer100g"))
	assert.NotContains(t, column(row, "nutritionPer100g"), `"fat"`)

	// Accents stay unescaped and conversions follow the unit order.
	assert.True(t, strings.HasPrefix(column(row, "units"), `["100g","gramas","g","xícara"`), column(row, "units"))
	assert.Contains(t, column(row, "unitConversions"), `"concha":120`)
	assert.True(t, strings.HasPrefix(column(row, "unitConversions"), `{"100g":100,"gramas":1,"g":1,"xícara":200`))
}

func TestEncode_LiquidUnits(t *testing.T) {
	r := makeRecord("leite", "Leite integral", nil)
	row, err := Encode(r)
	require.NoError(t, err)
	assert.Contains(t, column(row, "unitConversions"), `"ml":1.03`)
	assert.Equal(t, "{}", column(row, "nutritionPer100g"))
}

func TestCSV_RoundTrip(t *testing.T) {
	in := []*model.FoodRecord{
		arroz(),
		makeRecord("feijao_preto", "Feijão preto", map[string]string{
			"energy_kcal": "77", "lipids_g": "0.5", "iron_mg": "1.5", "vitamin_c_mg": "0", "zinc_mg": "x",
		}),
	}
	path := filepath.Join(t.TempDir(), "out", "combined.csv")
	require.NoError(t, WriteCSV(in, path))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, got[i].ID)
		assert.Equal(t, in[i].Name, got[i].Name)
		assert.Equal(t, in[i].Category, got[i].Category)
		assert.Equal(t, in[i].Headline, got[i].Headline)
		assert.Equal(t, in[i].Nutrients, got[i].Nutrients)
		assert.Equal(t, in[i].Units, got[i].Units)
		assert.Equal(t, in[i].Provenance.Notes, got[i].Provenance.Notes)
		assert.NoError(t, got[i].NutrientsErr)
	}
	assert.NotContains(t, got[1].Nutrients, model.Zinc)
	assert.Contains(t, got[1].Nutrients, model.VitaminC)
}

func TestDecodeCSV_CorruptNutrients(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []*model.FoodRecord{arroz()}))
	broken := strings.Replace(buf.String(), `{""calories"":130,""protein"":2.5}`, `{calories:`, 1)
	require.NotEqual(t, buf.String(), broken)

	got, err := DecodeCSV(strings.NewReader(broken))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Error(t, got[0].NutrientsErr)
	assert.Equal(t, 130.0, got[0].Headline["energy_kcal"])
}

func TestDecodeCSV_CorruptNutrientsWrittenBack(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, []*model.FoodRecord{arroz()}))
	broken := strings.Replace(buf.String(), `{""calories"":130,""protein"":2.5}`, `{calories:`, 1)

	got, err := DecodeCSV(strings.NewReader(broken))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "{calories:", got[0].RawNutrients)

	row, err := Encode(got[0])
	require.NoError(t, err)
	assert.Equal(t, "{calories:", column(row, "nutritionPer100g"))

	buf.Reset()
	require.NoError(t, EncodeJSON(&buf, got))
	assert.Contains(t, buf.String(), `"nutritionPer100gRaw": "{calories:"`)
}

func TestDecodeCSV_NullNutrientIsAbsent(t *testing.T) {
	in := "id,name,category,nutritionPer100g\n" +
		"arroz_branco,Arroz branco,Cereais,\"{\"\"fat\"\":null,\"\"calories\"\":5}\"\n" +
		"agua,Água,Bebidas,\n"
	got, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.NoError(t, got[0].NutrientsErr)
	assert.NotContains(t, got[0].Nutrients, model.Fat)
	assert.Equal(t, model.Nutrients{model.Calories: 5}, got[0].Nutrients)

	row, err := Encode(got[0])
	require.NoError(t, err)
	assert.Equal(t, `{"calories":5}`, column(row, "nutritionPer100g"))

	require.NoError(t, got[1].NutrientsErr)
	assert.Empty(t, got[1].Nutrients)
}

func TestDecodeCSV_NonNumericNutrient(t *testing.T) {
	in := "id,name,nutritionPer100g\n" +
		"ovo,Ovo,\"{\"\"fat\"\":\"\"x\"\"}\"\n"
	got, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Error(t, got[0].NutrientsErr)
}

func TestDecodeCSV_BadUnitsFallBack(t *testing.T) {
	in := "id,name,category,defaultUnit,units,unitConversions,nutritionPer100g\n" +
		"ovo,Ovo cozido,Ovos,dúzia,\"[\"\"dúzia\"\"]\",{},{}\n"
	got, err := DecodeCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, reference.UnitTables[reference.KeyOvos], got[0].Units)
	assert.Equal(t, model.Nutrients{}, got[0].Nutrients)
}

func TestDecodeCSV_NotNormalized(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("description,energy_kcal\nArroz,130\n"))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.json")
	require.NoError(t, WriteJSON([]*model.FoodRecord{arroz()}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "arroz_branco", got[0]["id"])
	assert.Equal(t, RecordUUID("arroz_branco").String(), got[0]["uuid"])
	assert.Equal(t, 130.0, got[0]["energy_kcal"])
	assert.Nil(t, got[0]["fat_g"])
	assert.Contains(t, string(data), "xícara")
}

func TestWriteJSON_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, WriteJSON(nil, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestRecordUUID_Stable(t *testing.T) {
	assert.Equal(t, RecordUUID("arroz_branco"), RecordUUID("arroz_branco"))
	assert.NotEqual(t, RecordUUID("arroz_branco"), RecordUUID("arroz_branco_ds2"))
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.sqlite")
	recs := []*model.FoodRecord{arroz(), makeRecord("ovo", "Ovo cozido", map[string]string{"energy_kcal": "146"})}
	require.NoError(t, WriteSQLite(recs, path))
	// A second write replaces the table rather than failing on the primary key.
	require.NoError(t, WriteSQLite(recs, path))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM foods`).Scan(&n))
	assert.Equal(t, 2, n)

	var kcal sql.NullFloat64
	var fat sql.NullFloat64
	var category, id string
	require.NoError(t, db.QueryRow(`SELECT energy_kcal, fat_g, category, uuid FROM foods WHERE id = ?`, "arroz_branco").
		Scan(&kcal, &fat, &category, &id))
	assert.True(t, kcal.Valid)
	assert.Equal(t, 130.0, kcal.Float64)
	assert.False(t, fat.Valid)
	assert.Equal(t, reference.Cereais, category)
	assert.Equal(t, RecordUUID("arroz_branco").String(), id)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": CSV, "CSV": CSV, "json": JSON, " sqlite ": SQLite} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("cyclonedx")
	assert.Error(t, err)
	assert.Equal(t, ".sqlite", SQLite.Ext())
	assert.Equal(t, ".csv", CSV.Ext())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "combined_food_data.csv", DefaultPath("combined_food_data.csv", CSV))
	assert.Equal(t, "combined_food_data.sqlite", DefaultPath("combined_food_data.csv", SQLite))
	assert.Equal(t, "out/foods.json", DefaultPath("out/foods.csv", JSON))
	assert.Equal(t, "foods.json", DefaultPath("foods", JSON))
}
