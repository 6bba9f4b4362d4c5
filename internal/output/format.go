package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/StinkyLord/food-normalizer/internal/model"
)

// Format selects a serializer.
type Format string

const (
	CSV    Format = "csv"
	JSON   Format = "json"
	SQLite Format = "sqlite"
)

// ParseFormat accepts a format name in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, SQLite:
		return f, nil
	case "":
		return CSV, nil
	}
	return "", fmt.Errorf("unsupported format %q (supported: csv, json, sqlite)", s)
}

// Ext returns the file extension conventionally used for f.
func (f Format) Ext() string {
	if f == SQLite {
		return ".sqlite"
	}
	return "." + string(f)
}

// DefaultPath gives a default file name the extension of f, so a JSON or
// SQLite run does not land in a file named .csv.
func DefaultPath(name string, f Format) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + f.Ext()
}

// Write serialises records to path in format f.
func Write(f Format, records []*model.FoodRecord, path string) error {
	switch f {
	case CSV, "":
		return WriteCSV(records, path)
	case JSON:
		return WriteJSON(records, path)
	case SQLite:
		return WriteSQLite(records, path)
	}
	return fmt.Errorf("unsupported format %q", f)
}
