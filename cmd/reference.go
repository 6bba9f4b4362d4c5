package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/reference"
)

type referenceDump struct {
	Version    string                       `json:"version" yaml:"version"`
	Fallback   string                       `json:"fallback_category" yaml:"fallback_category"`
	Categories []categoryDump               `json:"categories" yaml:"categories"`
	Units      map[string]*model.UnitConfig `json:"unit_tables" yaml:"unit_tables"`
}

type categoryDump struct {
	Label    string   `json:"label" yaml:"label"`
	Table    string   `json:"unit_table" yaml:"unit_table"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

func buildReferenceDump() referenceDump {
	d := referenceDump{
		Version:  reference.Version,
		Fallback: reference.DefaultCategory,
		Units:    reference.UnitTables,
	}
	for _, r := range reference.CategoryRules {
		d.Categories = append(d.Categories, categoryDump{
			Label:    r.Label,
			Table:    reference.TableKeyFor(r.Label),
			Keywords: r.Keywords,
		})
	}
	return d
}

func runReference(cmd *cobra.Command, args []string) error {
	return writeReference(os.Stdout, flagFormat)
}

func writeReference(w io.Writer, format string) error {
	d := buildReferenceDump()
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("failed to encode reference tables: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown reference format %q (want yaml or json)", format)
	}
}
