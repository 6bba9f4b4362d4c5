// Package source reads raw food-composition datasets.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// NameColumn is the required column carrying the food name.
const NameColumn = "description"

// ErrNoNameColumn is returned for a dataset whose header lacks NameColumn.
var ErrNoNameColumn = errors.New("missing required column " + NameColumn)

// Spec configures one input dataset.
type Spec struct {
	Path             string `yaml:"path"`
	Label            string `yaml:"source"`            // source document reference, e.g. "#1food-moz.pdf"
	CategoryOverride string `yaml:"category_override"` // empty = categorize by name
	Enabled          bool   `yaml:"enabled"`
}

// UnmarshalYAML treats a missing enabled key as true.
func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	type plain Spec
	p := plain{Enabled: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = Spec(p)
	return nil
}

// Stem returns the file name of the dataset without directory and extension.
func (s Spec) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Row is one data record keyed by header name.
type Row struct {
	Num    int // 1-based, header excluded
	Fields map[string]string
}

// Name returns the food name with surrounding whitespace and double quotes removed.
func (r Row) Name() string {
	return strings.Trim(strings.TrimSpace(r.Fields[NameColumn]), `"`)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads every row of the CSV dataset at path.
func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := Read(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses a header row followed by data records. Short records leave the
// missing columns out of the row; extra fields are ignored.
func Read(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if !contains(header, NameColumn) {
		return nil, ErrNoNameColumn
	}

	var rows []Row
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", n, err)
		}
		fields := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				fields[h] = rec[i]
			}
		}
		rows = append(rows, Row{Num: n, Fields: fields})
	}
	return rows, nil
}

// Discover returns one enabled Spec per *.csv file directly inside dir,
// sorted by file name. Each is labelled "#<stem>.pdf".
func Discover(dir string) ([]Spec, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot list %q: %w", dir, err)
	}
	var specs []Spec
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		s := Spec{Path: filepath.Join(dir, e.Name()), Enabled: true}
		s.Label = "#" + s.Stem() + ".pdf"
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return specs, nil
}

// Enabled returns the specs with Enabled set, in order.
func Enabled(specs []Spec) []Spec {
	var out []Spec
	for _, s := range specs {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
