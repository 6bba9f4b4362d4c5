package reference

import "strings"

// DefaultCategory is the label given to foods no rule matches.
const DefaultCategory = "Alimentos"

// Category labels.
const (
	Cereais     = "Cereais"
	Leguminosas = "Leguminosas"
	Carnes      = "Carnes"
	Peixes      = "Peixes"
	Laticinios  = "Laticínios"
	Frutas      = "Frutas"
	Vegetais    = "Vegetais"
	Tuberculos  = "Tubérculos"
	Oleos       = "Óleos"
	Acucares    = "Açúcares"
	Bebidas     = "Bebidas"
	Ovos        = "Ovos"
	Paes        = "Pães"
	Nozes       = "Nozes"
)

// Rule assigns Label to any name containing one of Keywords.
type Rule struct {
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Matches reports whether the lowercased name contains any keyword.
func (r Rule) Matches(lowerName string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

// CategoryRules is evaluated top to bottom and the first match wins, so a
// keyword shared by two groups (or one keyword contained in another, such as
// "mel" in "melancia") belongs to whichever rule is listed first.
var CategoryRules = []Rule{
	{Label: Cereais, Keywords: []string{"arroz", "trigo", "aveia", "milho", "centeio", "cevada", "quinoa"}},
	{Label: Leguminosas, Keywords: []string{"feijão", "ervilha", "lentilha", "grão", "soja", "amendoim"}},
	{Label: Carnes, Keywords: []string{"boi", "vaca", "frango", "galinha", "porco", "peru", "pato", "carne", "vitela"}},
	{Label: Peixes, Keywords: []string{"peixe", "salmão", "atum", "sardinha", "bacalhau", "camarão", "lula"}},
	{Label: Laticinios, Keywords: []string{"leite", "queijo", "iogurte", "manteiga", "nata", "requeijão"}},
	{Label: Frutas, Keywords: []string{"maçã", "banana", "laranja", "uva", "manga", "mamão", "abacaxi", "melancia", "morango"}},
	{Label: Vegetais, Keywords: []string{"tomate", "alface", "couve", "espinafre", "brócolis", "repolho", "pimentão"}},
	{Label: Tuberculos, Keywords: []string{"batata", "mandioca", "inhame", "cará", "batata-doce"}},
	{Label: Oleos, Keywords: []string{"óleo", "azeite", "gordura", "banha"}},
	{Label: Acucares, Keywords: []string{"açúcar", "mel", "doce", "melado", "rapadura"}},
	{Label: Bebidas, Keywords: []string{"suco", "refrigerante", "café", "chá", "água", "vinho", "cerveja"}},
	{Label: Ovos, Keywords: []string{"ovo"}},
	{Label: Paes, Keywords: []string{"pão", "biscoito", "bolacha", "massa", "macarrão", "espaguete"}},
	{Label: Nozes, Keywords: []string{"noz", "castanha", "amêndoa", "avelã", "pistache", "semente"}},
}

// categoryTableKeys is the one-to-one mapping from category label to unit
// table key.
var categoryTableKeys = map[string]string{
	Cereais:     KeyCereais,
	Leguminosas: KeyLeguminosas,
	Carnes:      KeyCarnes,
	Peixes:      KeyPeixes,
	Laticinios:  KeyLaticinios,
	Frutas:      KeyFrutas,
	Vegetais:    KeyVegetais,
	Tuberculos:  KeyTuberculos,
	Oleos:       KeyOleos,
	Acucares:    KeyAcucares,
	Bebidas:     KeyBebidas,
	Ovos:        KeyOvos,
	Paes:        KeyPaes,
	Nozes:       KeyNozes,
}

// TableKeyFor returns the unit table key for a category label, or KeyDefault.
func TableKeyFor(category string) string {
	if k, ok := categoryTableKeys[category]; ok {
		return k
	}
	return KeyDefault
}

// Labels returns the category labels in rule order.
func Labels() []string {
	out := make([]string, len(CategoryRules))
	for i, r := range CategoryRules {
		out[i] = r.Label
	}
	return out
}
