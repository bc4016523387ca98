// Package config loads the pipeline configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukita/tradesum-go/pkg/tradesum"
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// DefaultFile is the config file consulted when no path is given.
const DefaultFile = "tradesum.yml"

// envPrefix namespaces the environment overrides (TRADESUM_INPUT_DIR, ...).
const envPrefix = "TRADESUM"

// PivotSpec describes one pivot view in the configuration file.
type PivotSpec struct {
	Name            string `yaml:"name"`
	RowKey          string `yaml:"row_key"`
	ColKey          string `yaml:"col_key"`
	ValueKey        string `yaml:"value_key"`
	Fn              string `yaml:"fn"`
	ShowTotals      bool   `yaml:"show_totals"`
	SortByValueDesc bool   `yaml:"sort_by_value_desc"`
	MinRows         int    `yaml:"min_rows"`
}

// Config is the single structured input of a pipeline run.
type Config struct {
	// InputDir is the directory of input workbooks.
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	// OutputDir is where the output workbook is written.
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	// SummaryName is the name of the summary table.
	SummaryName string `yaml:"summary_name" envconfig:"SUMMARY_NAME"`
	// SearchLabel is the label the extractor looks for.
	SearchLabel string `yaml:"search_label" envconfig:"SEARCH_LABEL"`
	// DataStartRow is the 1-based first row of the summary body.
	DataStartRow int `yaml:"data_start_row" envconfig:"DATA_START_ROW"`
	// SortSheets orders sheets alphabetically instead of declared order.
	SortSheets bool `yaml:"sort_sheets" envconfig:"SORT_SHEETS"`
	// Statistics is the ordered summary header block, by label.
	Statistics []string `yaml:"statistics" ignored:"true"`
	// Pivots is the ordered set of pivot views to build.
	Pivots []PivotSpec `yaml:"pivots" ignored:"true"`
}

// Default returns the built-in pipeline: default extraction options, one
// pivot per summarize function over the source column, and one source-by-
// tab cross-tabulation ranked by total value.
func Default() *Config {
	opts := tradesum.DefaultOptions()
	labels := make([]string, 0, len(opts.Statistics))
	for _, s := range opts.Statistics {
		labels = append(labels, s.Label)
	}
	return &Config{
		OutputDir:    ".",
		SummaryName:  opts.SummaryName,
		SearchLabel:  opts.SearchLabel,
		DataStartRow: opts.DataStartRow,
		Statistics:   labels,
		Pivots:       DefaultPivots(),
	}
}

// DefaultPivots returns the built-in pivot set.
func DefaultPivots() []PivotSpec {
	fns := []models.SummarizeFunc{
		models.FnSum, models.FnCount, models.FnCountAny,
		models.FnMin, models.FnMax, models.FnAverage, models.FnStdDev,
	}
	specs := make([]PivotSpec, 0, len(fns)+1)
	for _, fn := range fns {
		specs = append(specs, PivotSpec{
			Name:       fmt.Sprintf("BY SOURCE %s", fn),
			RowKey:     "Source",
			ValueKey:   "Value",
			Fn:         fn.String(),
			ShowTotals: true,
		})
	}
	specs = append(specs, PivotSpec{
		Name:            "VALUE BY SOURCE AND TAB",
		RowKey:          "Source",
		ColKey:          "Tab",
		ValueKey:        "Value",
		Fn:              models.FnSum.String(),
		ShowTotals:      true,
		SortByValueDesc: true,
	})
	return specs
}

// Load builds the configuration: defaults, then the YAML file (the given
// path, or DefaultFile when present), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if _, err := cfg.Options(); err != nil {
		return nil, err
	}
	if _, err := cfg.PivotDefinitions(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the configuration into run options.
func (c *Config) Options() (tradesum.Options, error) {
	opts := tradesum.DefaultOptions()
	opts.SearchLabel = c.SearchLabel
	opts.SummaryName = c.SummaryName
	opts.DataStartRow = c.DataStartRow
	opts.SortSheets = c.SortSheets

	if len(c.Statistics) > 0 {
		stats := make([]tradesum.Statistic, 0, len(c.Statistics))
		for _, label := range c.Statistics {
			st, err := tradesum.ParseStatistic(label)
			if err != nil {
				return tradesum.Options{}, fmt.Errorf("statistics: %w", err)
			}
			stats = append(stats, st)
		}
		opts.Statistics = stats
	}

	if err := opts.Validate(); err != nil {
		return tradesum.Options{}, err
	}
	return opts, nil
}

// PivotDefinitions converts the configured pivot specs into definitions,
// preserving their order.
func (c *Config) PivotDefinitions() ([]models.PivotDefinition, error) {
	defs := make([]models.PivotDefinition, 0, len(c.Pivots))
	for i, spec := range c.Pivots {
		if spec.Name == "" {
			return nil, fmt.Errorf("pivot %d: name must not be empty", i+1)
		}
		if spec.RowKey == "" || spec.ValueKey == "" {
			return nil, fmt.Errorf("pivot %q: row_key and value_key are required", spec.Name)
		}
		fn, err := models.ParseSummarizeFunc(spec.Fn)
		if err != nil {
			return nil, fmt.Errorf("pivot %q: %w", spec.Name, err)
		}
		minRows := spec.MinRows
		if minRows <= 0 {
			minRows = 1
		}
		defs = append(defs, models.PivotDefinition{
			Name:            spec.Name,
			RowKey:          spec.RowKey,
			ColKey:          spec.ColKey,
			ValueKey:        spec.ValueKey,
			Fn:              fn,
			ShowTotals:      spec.ShowTotals,
			SortByValueDesc: spec.SortByValueDesc,
			MinRows:         minRows,
		})
	}
	return defs, nil
}
