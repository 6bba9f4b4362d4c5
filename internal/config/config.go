// Package config loads the run configuration of the normalizer.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/StinkyLord/food-normalizer/internal/conflict"
	"github.com/StinkyLord/food-normalizer/internal/output"
	"github.com/StinkyLord/food-normalizer/internal/reference"
	"github.com/StinkyLord/food-normalizer/internal/source"
)

// Defaults applied to keys left empty.
const (
	DefaultInputDirectory  = "input_datasets"
	DefaultOutputDirectory = "output_datasets"
	DefaultOutputFile      = "combined_food_data.csv"
	DefaultSingleOutput    = "output_food_data.csv"
	DefaultSource          = "#1food-moz.pdf"
	DefaultPage            = "1"
)

// Config is the full run configuration. Every key is optional in the file.
type Config struct {
	Sources []source.Spec `yaml:"sources"`

	// DirectoryMode replaces Sources with every *.csv in InputDirectory.
	DirectoryMode   bool   `yaml:"directory_mode"`
	InputDirectory  string `yaml:"input_directory"`
	OutputDirectory string `yaml:"output_directory"`

	// MergeOutput writes one combined file; otherwise one file per dataset.
	MergeOutput *bool  `yaml:"merge_output"`
	OutputFile  string `yaml:"output_file"`

	ConflictResolution string `yaml:"conflict_resolution"`
	DefaultCategory    string `yaml:"default_category"`
	DefaultPage        string `yaml:"default_page"`
	Format             string `yaml:"format"`

	// Baseline is a previously normalized file to fold new datasets into.
	Baseline string `yaml:"baseline"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)
	return c
}

// LoadFile reads and parses the YAML configuration at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(&c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.InputDirectory == "" {
		c.InputDirectory = DefaultInputDirectory
	}
	if c.OutputDirectory == "" {
		c.OutputDirectory = DefaultOutputDirectory
	}
	if c.MergeOutput == nil {
		t := true
		c.MergeOutput = &t
	}
	if c.ConflictResolution == "" {
		c.ConflictResolution = string(conflict.Suffix)
	}
	if c.DefaultCategory == "" {
		c.DefaultCategory = reference.DefaultCategory
	}
	if c.DefaultPage == "" {
		c.DefaultPage = DefaultPage
	}
	if c.Format == "" {
		c.Format = string(output.CSV)
	}
}

// Validate checks the policy and format names.
func (c *Config) Validate() error {
	if _, err := conflict.ParsePolicy(c.ConflictResolution); err != nil {
		return err
	}
	if _, err := output.ParseFormat(c.Format); err != nil {
		return err
	}
	for i, s := range c.Sources {
		if s.Path == "" {
			return fmt.Errorf("sources[%d]: path is required", i)
		}
	}
	return nil
}

// Policy returns the parsed conflict policy. Call after Validate.
func (c *Config) Policy() conflict.Policy {
	p, _ := conflict.ParsePolicy(c.ConflictResolution)
	return p
}

// OutputFormat returns the parsed output format. Call after Validate.
func (c *Config) OutputFormat() output.Format {
	f, _ := output.ParseFormat(c.Format)
	return f
}

// OutputPath is the combined output file: OutputFile when set, otherwise
// DefaultOutputFile with the extension of the output format.
func (c *Config) OutputPath() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return output.DefaultPath(DefaultOutputFile, c.OutputFormat())
}

// Merged reports whether a single combined output is requested.
func (c *Config) Merged() bool {
	return c.MergeOutput == nil || *c.MergeOutput
}

// Inputs returns the datasets to process: the discovered files in directory
// mode, otherwise the enabled configured sources. Sources without a label
// get "#<stem>.pdf".
func (c *Config) Inputs() ([]source.Spec, error) {
	if c.DirectoryMode {
		return source.Discover(c.InputDirectory)
	}
	specs := source.Enabled(c.Sources)
	for i := range specs {
		if specs[i].Label == "" {
			specs[i].Label = "#" + specs[i].Stem() + ".pdf"
		}
	}
	return specs, nil
}
