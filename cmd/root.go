package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/StinkyLord/food-normalizer/internal/config"
	"github.com/StinkyLord/food-normalizer/internal/logging"
	"github.com/StinkyLord/food-normalizer/internal/output"
	"github.com/StinkyLord/food-normalizer/internal/pipeline"
	"github.com/StinkyLord/food-normalizer/internal/reference"
	"github.com/StinkyLord/food-normalizer/internal/source"
)

const toolVersion = "1.0.0"

var (
	flagVerbose bool
	flagFormat  string

	// convert
	flagInput    string
	flagOutput   string
	flagSource   string
	flagPage     string
	flagCategory string

	// merge
	flagConfig   string
	flagCombined string
	flagDir      string
	flagOutDir   string
	flagPolicy   string
	flagSeparate bool
	flagBaseline string
)

var rootCmd = &cobra.Command{
	Use:   "food-normalizer",
	Short: "Food composition table normalizer",
	Long: `food-normalizer converts raw food-composition CSV tables into the
normalized food schema. Every record gets:
  • a stable identifier derived from the food name
  • a food group assigned from Portuguese keywords
  • the portion units and gram equivalents for that group
  • a compact JSON blob with the nutrients present per 100g`,
	SilenceUsage: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Normalize a single dataset",
	Long: `Normalize one raw CSV dataset. Repeated names get _1, _2, … suffixes.

Examples:
  food-normalizer convert --input input_food_data.csv --output output_food_data.csv
  food-normalizer convert -i taco.csv -o - --source "#taco.pdf"`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

var mergeCmd = &cobra.Command{
	Use:   "merge [dataset.csv ...]",
	Short: "Normalize several datasets into one catalog",
	Long: `Normalize several raw CSV datasets into one catalog, resolving identifier
collisions between datasets with a conflict policy:
  • suffix: keep both, renaming the later one to <id>_ds<N>
  • skip  : keep the first, drop later duplicates
  • overwrite : later datasets replace earlier records
  • merge : average the nutrient values of both records

Datasets come from positional arguments, the sources list of --config, or
every *.csv in --dir.

Examples:
  food-normalizer merge a.csv b.csv --policy skip
  food-normalizer merge --config normalizer.yaml
  food-normalizer merge --dir input_datasets --separate --out-dir output_datasets`,
	RunE: runMerge,
}

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Print the food group rules and unit tables",
	Args:  cobra.NoArgs,
	RunE:  runReference,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-row conflict decisions")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Output format: csv, json, sqlite (reference: yaml, json)")

	convertCmd.Flags().StringVarP(&flagInput, "input", "i", "input_food_data.csv", "Raw dataset to convert")
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", config.DefaultSingleOutput, "Output file path (use '-' for stdout)")
	convertCmd.Flags().StringVar(&flagSource, "source", config.DefaultSource, "Source document label written to source_pdf")
	convertCmd.Flags().StringVar(&flagPage, "page", config.DefaultPage, "Page label written to page")
	convertCmd.Flags().StringVar(&flagCategory, "default-category", reference.DefaultCategory, "Category for foods no keyword matches")

	mergeCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML run configuration")
	mergeCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "Process every *.csv in this directory")
	mergeCmd.Flags().StringVar(&flagOutDir, "out-dir", "", "Directory for per-dataset outputs in directory mode")
	mergeCmd.Flags().StringVarP(&flagCombined, "output", "o", "", "Combined output file path (use '-' for stdout)")
	mergeCmd.Flags().StringVarP(&flagPolicy, "policy", "p", "", "Conflict policy: suffix, skip, overwrite, merge")
	mergeCmd.Flags().BoolVar(&flagSeparate, "separate", false, "Write one output file per dataset instead of a combined file")
	mergeCmd.Flags().StringVar(&flagBaseline, "baseline", "", "Previously normalized CSV to fold the datasets into")

	rootCmd.AddCommand(convertCmd, mergeCmd, referenceCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	log, err := logging.New(flagVerbose)
	if err != nil {
		return fmt.Errorf("cannot set up logging: %w", err)
	}
	defer log.Sync()

	fmt.Fprintf(os.Stderr, "food-normalizer v%s (reference tables %s)\n", toolVersion, reference.Version)

	p := pipeline.New(pipeline.Options{
		DefaultCategory: flagCategory,
		DefaultPage:     flagPage,
		Logger:          log,
	})
	res, err := p.RunSingle(source.Spec{Path: flagInput, Label: flagSource, Enabled: true})
	if errors.Is(err, pipeline.ErrNoRecords) {
		return fmt.Errorf("no data found in input file %q", flagInput)
	}
	if err != nil {
		return err
	}

	out := flagOutput
	if !cmd.Flags().Changed("output") {
		out = output.DefaultPath(config.DefaultSingleOutput, format)
	}
	if err := output.Write(format, res.Records.Records(), out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Processed %d food item(s)\n", res.Records.Len())
	if out != "-" {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", out)
	}
	return nil
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, err := loadMergeConfig(cmd, args)
	if err != nil {
		return err
	}
	log, err := logging.New(flagVerbose)
	if err != nil {
		return fmt.Errorf("cannot set up logging: %w", err)
	}
	defer log.Sync()

	fmt.Fprintf(os.Stderr, "food-normalizer v%s (reference tables %s)\n", toolVersion, reference.Version)

	inputs, err := cfg.Inputs()
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no input files configured or found")
	}
	if cfg.DirectoryMode {
		log.Info("discovered datasets", zap.Int("files", len(inputs)), zap.String("dir", cfg.InputDirectory))
	}

	opts := pipeline.Options{
		Policy:          cfg.Policy(),
		DefaultCategory: cfg.DefaultCategory,
		DefaultPage:     cfg.DefaultPage,
		Logger:          log,
	}
	if cfg.Baseline != "" {
		opts.Baseline, err = output.ReadCSV(cfg.Baseline)
		if err != nil {
			return fmt.Errorf("cannot load baseline: %w", err)
		}
	}

	res, err := pipeline.New(opts).Run(inputs)
	if errors.Is(err, pipeline.ErrNoRecords) {
		printSummary(res)
		return fmt.Errorf("no data was successfully processed: %w", err)
	}
	if err != nil {
		return err
	}

	if err := writeMergeOutputs(cfg, res); err != nil {
		return err
	}
	printSummary(res)
	return nil
}

// loadMergeConfig reads --config (or the defaults) and applies the flags the
// user set on top of it.
func loadMergeConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if flagConfig != "" {
		var err error
		if cfg, err = config.LoadFile(flagConfig); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Sources = cfg.Sources[:0]
		for _, a := range args {
			s := source.Spec{Path: a, Enabled: true}
			s.Label = "#" + s.Stem() + ".pdf"
			cfg.Sources = append(cfg.Sources, s)
		}
		cfg.DirectoryMode = false
	}
	if flags.Changed("dir") {
		cfg.DirectoryMode = true
		cfg.InputDirectory = flagDir
	}
	if flags.Changed("out-dir") {
		cfg.OutputDirectory = flagOutDir
	}
	if flags.Changed("output") {
		cfg.OutputFile = flagCombined
	}
	if flags.Changed("policy") {
		cfg.ConflictResolution = flagPolicy
	}
	if flags.Changed("separate") {
		merged := !flagSeparate
		cfg.MergeOutput = &merged
	}
	if flags.Changed("baseline") {
		cfg.Baseline = flagBaseline
	}
	if flagFormat != "" {
		cfg.Format = flagFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeMergeOutputs(cfg *config.Config, res *pipeline.Result) error {
	format := cfg.OutputFormat()
	if cfg.Merged() {
		out := cfg.OutputPath()
		if err := output.Write(format, res.Records.Records(), out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if out != "-" {
			fmt.Fprintf(os.Stderr, "Combined output saved to: %s (%d entries)\n", out, res.Records.Len())
		}
		return nil
	}

	for _, st := range res.Stats {
		stem := source.Spec{Path: st.File}.Stem()
		path := "output_" + stem + format.Ext()
		if cfg.DirectoryMode {
			path = filepath.Join(cfg.OutputDirectory, stem+"_processed"+format.Ext())
		}
		records := res.Dataset(st.Dataset)
		if err := output.Write(format, records, path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Output saved: %s (%d entries)\n", path, len(records))
	}
	return nil
}

func printSummary(res *pipeline.Result) {
	if res == nil {
		return
	}
	t := res.Totals()
	fmt.Fprintf(os.Stderr, "Total items processed: %d\n", t.Total)
	fmt.Fprintf(os.Stderr, "Total items added: %d\n", t.Added)
	if t.Skipped > 0 {
		fmt.Fprintf(os.Stderr, "Total items skipped: %d\n", t.Skipped)
		for _, c := range t.Conflicts {
			fmt.Fprintf(os.Stderr, "  - %s\n", c)
		}
	}
	if t.Merged > 0 {
		fmt.Fprintf(os.Stderr, "Total items merged: %d\n", t.Merged)
	}
	if t.Overwritten > 0 {
		fmt.Fprintf(os.Stderr, "Total items overwritten: %d\n", t.Overwritten)
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "Datasets not read: %v\n", res.Failed)
	}
	fmt.Fprintf(os.Stderr, "Final dataset size: %d\n", res.Records.Len())
}
