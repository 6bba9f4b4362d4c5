package model

import (
	"bytes"
	"encoding/json"
	"sort"
)

// MarshalJSON writes the nutrients in NutrientKeys order. Keys outside the
// known set follow in lexical order.
func (n Nutrients) MarshalJSON() ([]byte, error) {
	return marshalOrdered(NutrientKeys, n)
}

// UnitsJSON renders the ordered unit list as a JSON array.
func (u *UnitConfig) UnitsJSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	units := u.Units
	if units == nil {
		units = []string{}
	}
	if err := enc.Encode(units); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// ConversionsJSON renders the unit conversions as a JSON object keyed in the
// order of the unit list.
func (u *UnitConfig) ConversionsJSON() (string, error) {
	b, err := marshalOrdered(u.Units, u.Conversions)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalOrdered(order []string, values map[string]float64) ([]byte, error) {
	keys := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, k := range order {
		if _, ok := values[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range values {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s without HTML escaping so accented unit names and
// labels stay readable.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
