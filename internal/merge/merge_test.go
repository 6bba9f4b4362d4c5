package merge

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/reference"
)

func record(notes string, headline model.Headline, n model.Nutrients) *model.FoodRecord {
	return &model.FoodRecord{
		ID:         "feijao_preto",
		Name:       "Feijão preto",
		Category:   reference.Leguminosas,
		PortionG:   model.PortionG,
		Headline:   headline,
		Nutrients:  n,
		Units:      reference.Table(reference.KeyLeguminosas),
		Provenance: model.Provenance{SourcePDF: "#1.pdf", Page: "1", Notes: notes, Dataset: 1, Row: 3},
	}
}

func TestRecords_Averages(t *testing.T) {
	a := record("Dataset 1, Entry 3", model.Headline{"fat_g": 10}, model.Nutrients{model.Fat: 10})
	b := record("Dataset 2, Entry 7", model.Headline{"fat_g": 20}, model.Nutrients{model.Fat: 20})

	got, ok := Records(a, b)
	require.True(t, ok)
	assert.Equal(t, 15.0, got.Headline["fat_g"])
	assert.Equal(t, model.Nutrients{model.Fat: 15}, got.Nutrients)
	assert.Equal(t, "Dataset 1, Entry 3 | Merged with: Dataset 2, Entry 7", got.Provenance.Notes)
}

func TestRecords_OneSided(t *testing.T) {
	a := record("a", model.Headline{"fat_g": 10}, model.Nutrients{model.Fat: 10})
	b := record("b", model.Headline{}, model.Nutrients{})

	got, ok := Records(a, b)
	require.True(t, ok)
	assert.Equal(t, model.Headline{"fat_g": 10}, got.Headline)
	assert.Equal(t, model.Nutrients{model.Fat: 10}, got.Nutrients)

	got, ok = Records(b, a)
	require.True(t, ok)
	assert.Equal(t, model.Headline{"fat_g": 10}, got.Headline)
	assert.Equal(t, model.Nutrients{model.Fat: 10}, got.Nutrients)
	assert.Equal(t, "b | Merged with: a", got.Provenance.Notes)
}

func TestRecords_RoundingOnlyOnHeadline(t *testing.T) {
	a := record("a", model.Headline{"energy_kcal": 10.005}, model.Nutrients{model.Calories: 10.005, model.Iron: 1})
	b := record("b", model.Headline{"energy_kcal": 10.0}, model.Nutrients{model.Calories: 10.0, model.Zinc: 2})

	got, ok := Records(a, b)
	require.True(t, ok, spew.Sdump(got))
	assert.Equal(t, 10.0, got.Headline["energy_kcal"])
	assert.InDelta(t, 10.0025, got.Nutrients[model.Calories], 1e-12)
	assert.Equal(t, 1.0, got.Nutrients[model.Iron])
	assert.Equal(t, 2.0, got.Nutrients[model.Zinc])
}

func TestRecords_DoesNotMutateInputs(t *testing.T) {
	a := record("a", model.Headline{"fat_g": 10}, model.Nutrients{model.Fat: 10})
	b := record("b", model.Headline{"fat_g": 20, "iron_mg": 3}, model.Nutrients{model.Fat: 20, model.Iron: 3})

	got, ok := Records(a, b)
	require.True(t, ok)
	assert.NotSame(t, a, got)
	assert.Equal(t, model.Headline{"fat_g": 10}, a.Headline)
	assert.Equal(t, model.Nutrients{model.Fat: 10}, a.Nutrients)
	assert.Equal(t, "a", a.Provenance.Notes)
	assert.Equal(t, model.Nutrients{model.Fat: 20, model.Iron: 3}, b.Nutrients)
	assert.Same(t, a.Units, got.Units)
}

func TestRecords_KeepsExistingIdentity(t *testing.T) {
	a := record("a", nil, nil)
	b := record("b", nil, nil)
	b.Name = "FEIJÃO, PRETO"
	b.Category = reference.DefaultCategory
	b.Provenance.SourcePDF = "#2.pdf"

	got, ok := Records(a, b)
	require.True(t, ok)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, a.Name, got.Name)
	assert.Equal(t, a.Category, got.Category)
	assert.Equal(t, "#1.pdf", got.Provenance.SourcePDF)
}

func TestRecords_CorruptNutrientsLeavesExisting(t *testing.T) {
	a := record("a", model.Headline{"fat_g": 10}, nil)
	a.NutrientsErr = errors.New("invalid character")
	b := record("b", model.Headline{"fat_g": 20}, model.Nutrients{model.Fat: 20})

	got, ok := Records(a, b)
	assert.False(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, "a", got.Provenance.Notes)

	got, ok = Records(b, a)
	assert.False(t, ok)
	assert.Same(t, b, got)
}

// Later records are not weighted by how many were folded in before them.
func TestRecords_UnweightedChain(t *testing.T) {
	a := record("a", nil, model.Nutrients{model.Fat: 10})
	b := record("b", nil, model.Nutrients{model.Fat: 20})
	c := record("c", nil, model.Nutrients{model.Fat: 30})

	ab, _ := Records(a, b)
	abc, _ := Records(ab, c)
	assert.Equal(t, 22.5, abc.Nutrients[model.Fat])
	assert.Equal(t, "a | Merged with: b | Merged with: c", abc.Provenance.Notes)
}
