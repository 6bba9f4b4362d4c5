// Package pipeline turns raw dataset rows into normalized food records and
// accumulates them into a single keyed result set.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/StinkyLord/food-normalizer/internal/classify"
	"github.com/StinkyLord/food-normalizer/internal/conflict"
	"github.com/StinkyLord/food-normalizer/internal/merge"
	"github.com/StinkyLord/food-normalizer/internal/model"
	"github.com/StinkyLord/food-normalizer/internal/nutrients"
	"github.com/StinkyLord/food-normalizer/internal/slug"
	"github.com/StinkyLord/food-normalizer/internal/source"
)

// ErrNoRecords is returned when no source produced a single record.
var ErrNoRecords = errors.New("no data was successfully processed")

// DefaultPage is used when Options.DefaultPage is empty.
const DefaultPage = "1"

// Options configures a Pipeline. The zero value is usable: suffix policy,
// default category and page, no logging.
type Options struct {
	Policy          conflict.Policy
	DefaultCategory string
	DefaultPage     string
	Logger          *zap.Logger

	// Baseline records are loaded into the result set before any source is
	// read, so new datasets are resolved against them.
	Baseline []*model.FoodRecord
}

// Stats counts what happened to the rows of one source.
type Stats struct {
	File        string
	Label       string
	Dataset     int
	Total       int // rows with a non-empty name
	Blank       int // rows skipped for an empty name
	Added       int
	Skipped     int
	Merged      int
	Overwritten int
	Conflicts   []string // skipped rows, as "name (ID: base)"
}

// Result is the outcome of a run.
type Result struct {
	Records *model.ResultSet
	Stats   []Stats
	Failed  []string // sources that could not be read
}

// Totals sums the per-source counters.
func (r *Result) Totals() Stats {
	var t Stats
	for _, s := range r.Stats {
		t.Total += s.Total
		t.Blank += s.Blank
		t.Added += s.Added
		t.Skipped += s.Skipped
		t.Merged += s.Merged
		t.Overwritten += s.Overwritten
		t.Conflicts = append(t.Conflicts, s.Conflicts...)
	}
	return t
}

// Dataset returns the final records attributed to the 1-based dataset index,
// in insertion order. A merged record belongs to the dataset it was first
// read from.
func (r *Result) Dataset(index int) []*model.FoodRecord {
	return r.Records.Filter(func(rec *model.FoodRecord) bool {
		return rec.Provenance.Dataset == index
	})
}

// Pipeline turns source rows into normalized records.
type Pipeline struct {
	opts        Options
	categorizer *classify.Categorizer
	log         *zap.Logger
}

// New returns a pipeline for opts, filling in the default policy, page and
// a no-op logger.
func New(opts Options) *Pipeline {
	if opts.Policy == "" {
		opts.Policy = conflict.Suffix
	}
	if opts.DefaultPage == "" {
		opts.DefaultPage = DefaultPage
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		opts:        opts,
		categorizer: classify.New(opts.DefaultCategory),
		log:         log,
	}
}

// RunSingle converts one dataset on its own. Identifiers that repeat within
// the dataset get _1, _2, … suffixes. A source that cannot be read fails the run.
func (p *Pipeline) RunSingle(src source.Spec) (*Result, error) {
	rows, err := source.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file %q: %w", src.Path, err)
	}
	p.log.Info("processing dataset", zap.String("file", src.Path), zap.Int("rows", len(rows)))

	res := &Result{Records: model.NewResultSet()}
	st := Stats{File: src.Path, Label: src.Label, Dataset: 1}
	ids := slug.NewRegistry()
	for _, row := range rows {
		name := row.Name()
		if name == "" {
			st.Blank++
			continue
		}
		st.Total++
		id := ids.Unique(name)
		notes := fmt.Sprintf("Entry %d from source table", row.Num)
		res.Records.Put(p.buildRecord(id, name, row, src, 1, notes))
		st.Added++
	}
	res.Stats = append(res.Stats, st)
	p.logStats(st)

	if res.Records.Len() == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

// Run processes the sources in order into one result set, resolving
// identifier collisions with the configured policy. A source that cannot be
// read is logged, listed in Result.Failed and skipped.
func (p *Pipeline) Run(srcs []source.Spec) (*Result, error) {
	res := &Result{Records: model.NewResultSet()}
	for _, rec := range p.opts.Baseline {
		res.Records.Put(rec)
	}
	if n := len(p.opts.Baseline); n > 0 {
		p.log.Info("loaded baseline", zap.Int("records", n))
	}

	for i, src := range srcs {
		dataset := i + 1
		p.log.Info("processing dataset",
			zap.Int("dataset", dataset), zap.Int("of", len(srcs)), zap.String("file", src.Path))

		rows, err := source.ReadFile(src.Path)
		if err != nil {
			p.log.Warn("skipping dataset", zap.String("file", src.Path), zap.Error(err))
			res.Failed = append(res.Failed, src.Path)
			continue
		}
		st := p.runDataset(res.Records, src, dataset, rows)
		res.Stats = append(res.Stats, st)
		p.logStats(st)
	}

	if res.Records.Len() == 0 {
		return res, ErrNoRecords
	}
	return res, nil
}

func (p *Pipeline) runDataset(set *model.ResultSet, src source.Spec, dataset int, rows []source.Row) Stats {
	st := Stats{File: src.Path, Label: src.Label, Dataset: dataset}
	for _, row := range rows {
		name := row.Name()
		if name == "" {
			st.Blank++
			continue
		}
		st.Total++

		base := slug.Generate(name)
		id, action := conflict.Resolve(base, set, dataset, p.opts.Policy)
		if action == conflict.Skipped {
			st.Skipped++
			st.Conflicts = append(st.Conflicts, fmt.Sprintf("%s (ID: %s)", name, base))
			p.log.Debug("duplicate skipped", zap.String("name", name), zap.String("id", base))
			continue
		}
		if id != base {
			p.log.Debug("duplicate renamed", zap.String("id", base), zap.String("as", id))
		}

		notes := fmt.Sprintf("Dataset %d, Entry %d", dataset, row.Num)
		rec := p.buildRecord(id, name, row, src, dataset, notes)

		switch action {
		case conflict.Merged:
			st.Merged++
			merged, ok := merge.Records(set.Get(id), rec)
			if !ok {
				p.log.Warn("merge target has unreadable nutrients, keeping stored record",
					zap.String("id", id), zap.Int("dataset", dataset), zap.Int("row", row.Num))
			}
			set.Put(merged)
		case conflict.Overwritten:
			st.Overwritten++
			set.Put(rec)
		default:
			st.Added++
			set.Put(rec)
		}
	}
	return st
}

// buildRecord assembles the normalized record for one source row.
func (p *Pipeline) buildRecord(id, name string, row source.Row, src source.Spec, dataset int, notes string) *model.FoodRecord {
	category := src.CategoryOverride
	if category == "" {
		category = p.categorizer.Categorize(name)
	}
	return &model.FoodRecord{
		ID:        id,
		Name:      name,
		Category:  category,
		PortionG:  model.PortionG,
		Headline:  nutrients.Headline(row.Fields),
		Nutrients: nutrients.Extract(row.Fields),
		Units:     classify.ResolveUnits(name, category),
		Provenance: model.Provenance{
			SourcePDF: src.Label,
			Page:      p.opts.DefaultPage,
			Notes:     notes,
			Dataset:   dataset,
			Row:       row.Num,
		},
	}
}

func (p *Pipeline) logStats(st Stats) {
	fields := []zap.Field{
		zap.String("file", st.File),
		zap.Int("items", st.Total),
		zap.Int("added", st.Added),
	}
	if st.Skipped > 0 {
		fields = append(fields, zap.Int("skipped", st.Skipped))
	}
	if st.Merged > 0 {
		fields = append(fields, zap.Int("merged", st.Merged))
	}
	if st.Overwritten > 0 {
		fields = append(fields, zap.Int("overwritten", st.Overwritten))
	}
	if st.Blank > 0 {
		fields = append(fields, zap.Int("blank", st.Blank))
	}
	p.log.Info("dataset processed", fields...)
}
