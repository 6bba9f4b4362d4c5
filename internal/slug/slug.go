// Package slug derives stable identifiers from food names.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Placeholder is used when a name has no usable characters.
const Placeholder = "food_item"

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Generate returns the identifier for name: lowercase ASCII letters and
// digits, with each run of whitespace or underscores turned into a single
// underscore and no underscore at either end. Accented letters are folded
// ("Feijão" -> "feijao"); punctuation and letters with no ASCII form are dropped.
func Generate(name string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(name))
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '_' || unicode.IsSpace(r):
			pendingSep = true
		}
	}
	if b.Len() == 0 {
		return Placeholder
	}
	return b.String()
}

// Registry hands out identifiers that are unique within one run.
type Registry struct {
	taken map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{taken: map[string]bool{}}
}

// Unique returns Generate(name), or the first of name_1, name_2, … not yet
// handed out, and reserves it.
func (r *Registry) Unique(name string) string {
	base := Generate(name)
	id := base
	for n := 1; r.taken[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	r.taken[id] = true
	return id
}

// Taken reports whether id has been handed out.
func (r *Registry) Taken(id string) bool {
	return r.taken[id]
}

// Len is the number of identifiers handed out.
func (r *Registry) Len() int { return len(r.taken) }
