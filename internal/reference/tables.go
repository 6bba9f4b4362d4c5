// Package reference holds the static tables the normalizer is driven by:
// portion-unit conversions per food group and the ordered keyword rules used
// to assign a food group from a name. The tables are declared once and must
// be treated as read-only by callers.
package reference

import "github.com/StinkyLord/food-normalizer/internal/model"

// Version identifies the revision of the tables in this package. Bump it when
// a keyword, unit or conversion changes.
const Version = "2024.2"

// Table keys. Category labels map onto these through TableKeyFor.
const (
	KeyCereais     = "cereais"
	KeyArroz       = "arroz"
	KeyLeguminosas = "leguminosas"
	KeyCarnes      = "carnes"
	KeyPeixes      = "peixes"
	KeyLaticinios  = "laticínios"
	KeyFrutas      = "frutas"
	KeyVegetais    = "vegetais"
	KeyTuberculos  = "tubérculos"
	KeyOleos       = "óleos"
	KeyAcucares    = "açúcares"
	KeyBebidas     = "bebidas"
	KeyOvos        = "ovos"
	KeyPaes        = "pães"
	KeyNozes       = "nozes"
	KeyDefault     = "default"
)

// UnitTables maps a table key to its unit configuration. Liquids (bebidas)
// are expressed in millilitres, everything else in grams.
var UnitTables = map[string]*model.UnitConfig{
	KeyCereais: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "xícara", "xícara de chá", "colher de sopa", "colher de chá", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "xícara": 200,
			"xícara de chá": 200, "colher de sopa": 15, "colher de chá": 5, "kg": 1000,
		},
	},
	KeyArroz: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "xícara", "xícara de chá", "colher de sopa", "colher de chá", "prato fundo", "prato raso", "concha", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "xícara": 200, "xícara de chá": 200,
			"colher de sopa": 15, "colher de chá": 5, "prato fundo": 300, "prato raso": 150, "concha": 120, "kg": 1000,
		},
	},
	KeyLeguminosas: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "xícara", "colher de sopa", "concha", "prato fundo", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "xícara": 180,
			"colher de sopa": 12, "concha": 100, "prato fundo": 250, "kg": 1000,
		},
	},
	KeyCarnes: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "bife", "filé", "peito", "coxa", "sobrecoxa", "fatia", "porção", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "bife": 120, "filé": 150,
			"peito": 200, "coxa": 150, "sobrecoxa": 180, "fatia": 30, "porção": 150, "kg": 1000,
		},
	},
	KeyPeixes: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "filé", "posta", "unidade", "porção", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "filé": 150,
			"posta": 200, "unidade": 180, "porção": 150, "kg": 1000,
		},
	},
	KeyLaticinios: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "ml", "litro", "copo", "xícara", "colher de sopa", "colher de chá", "fatia"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "ml": 1.03, "litro": 1030,
			"copo": 240, "xícara": 240, "colher de sopa": 15, "colher de chá": 5, "fatia": 20,
		},
	},
	KeyFrutas: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "unidade pequena", "unidade média", "unidade grande", "fatia", "rodela", "xícara", "colher de sopa", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 150, "unidade pequena": 100,
			"unidade média": 150, "unidade grande": 200, "fatia": 50, "rodela": 30, "xícara": 120, "colher de sopa": 15, "kg": 1000,
		},
	},
	KeyVegetais: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "xícara", "colher de sopa", "colher de chá", "prato fundo", "prato raso", "folha", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 120, "xícara": 100,
			"colher de sopa": 10, "colher de chá": 3, "prato fundo": 200, "prato raso": 100, "folha": 10, "kg": 1000,
		},
	},
	KeyTuberculos: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "unidade pequena", "unidade média", "unidade grande", "fatia", "pedaço", "xícara", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 180, "unidade pequena": 120,
			"unidade média": 180, "unidade grande": 250, "fatia": 40, "pedaço": 50, "xícara": 150, "kg": 1000,
		},
	},
	KeyOleos: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "ml", "litro", "colher de sopa", "colher de chá", "fio"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "ml": 0.92, "litro": 920,
			"colher de sopa": 13, "colher de chá": 4, "fio": 2,
		},
	},
	KeyAcucares: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "colher de sopa", "colher de chá", "xícara", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "colher de sopa": 12,
			"colher de chá": 4, "xícara": 180, "kg": 1000,
		},
	},
	KeyBebidas: {
		DefaultUnit: "100ml",
		Units:       []string{"100ml", "ml", "litro", "copo", "xícara", "colher de sopa", "colher de chá"},
		Conversions: map[string]float64{
			"100ml": 100, "ml": 1, "litro": 1000, "copo": 240,
			"xícara": 240, "colher de sopa": 15, "colher de chá": 5,
		},
	},
	KeyOvos: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "unidade pequena", "unidade média", "unidade grande", "clara", "gema"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 50, "unidade pequena": 40,
			"unidade média": 50, "unidade grande": 60, "clara": 30, "gema": 20,
		},
	},
	KeyPaes: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "fatia", "fatia fina", "fatia grossa", "pão francês", "pãozinho", "xícara", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 50, "fatia": 25,
			"fatia fina": 20, "fatia grossa": 35, "pão francês": 50, "pãozinho": 50, "xícara": 100, "kg": 1000,
		},
	},
	KeyNozes: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "xícara", "colher de sopa", "colher de chá", "punhado", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 5, "xícara": 140,
			"colher de sopa": 10, "colher de chá": 3, "punhado": 30, "kg": 1000,
		},
	},
	KeyDefault: {
		DefaultUnit: "100g",
		Units:       []string{"100g", "gramas", "g", "unidade", "porção", "colher de sopa", "colher de chá", "xícara", "kg"},
		Conversions: map[string]float64{
			"100g": 100, "gramas": 1, "g": 1, "unidade": 100, "porção": 150,
			"colher de sopa": 15, "colher de chá": 5, "xícara": 150, "kg": 1000,
		},
	},
}

// Table returns the unit configuration for key, or the default table when
// key is unknown.
func Table(key string) *model.UnitConfig {
	if t, ok := UnitTables[key]; ok {
		return t
	}
	return UnitTables[KeyDefault]
}
