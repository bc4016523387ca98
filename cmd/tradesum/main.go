// Package main provides the CLI entry point for tradesum-go.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ukita/tradesum-go/pkg/tradesum"
	"github.com/ukita/tradesum-go/pkg/tradesum/config"
	"github.com/ukita/tradesum-go/pkg/tradesum/gateway"
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

var (
	configPath string
	outputDir  string
	label      string
	sortSheets bool
	verbose    bool
)

// output is the run result printed to stdout as JSON.
type output struct {
	Success     bool                `json:"success"`
	OutputFile  string              `json:"output_file,omitempty"`
	RunID       string              `json:"run_id,omitempty"`
	Processed   int                 `json:"processed"`
	Skipped     int                 `json:"skipped"`
	Diagnostics []models.Diagnostic `json:"diagnostics,omitempty"`
	Error       string              `json:"error,omitempty"`
	Duration    string              `json:"duration"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradesum [input-dir]",
		Short: "Consolidate workbook figures into a summary table with pivot views",
		Long: `tradesum scans every sheet of every xlsx file in a directory for a value
next to a search label, consolidates the findings into one summary table,
and renders the configured pivot views into a single output workbook.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Pipeline config file (default: tradesum.yml if present)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (default: current directory)")
	rootCmd.Flags().StringVar(&label, "label", "", "Search label (default: Total)")
	rootCmd.Flags().BoolVar(&sortSheets, "sort-sheets", false, "Process sheets in alphabetical order instead of declared order")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cmd.SilenceUsage = true

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		return fail(start, err)
	}
	if len(args) > 0 {
		cfg.InputDir = args[0]
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = outputDir
	}
	if cmd.Flags().Changed("label") {
		cfg.SearchLabel = label
	}
	if cmd.Flags().Changed("sort-sheets") {
		cfg.SortSheets = sortSheets
	}
	if cfg.InputDir == "" {
		return fail(start, fmt.Errorf("no input directory: pass one as argument or set input_dir in the config"))
	}

	opts, err := cfg.Options()
	if err != nil {
		return fail(start, err)
	}
	defs, err := cfg.PivotDefinitions()
	if err != nil {
		return fail(start, err)
	}

	src := gateway.NewDirSource(cfg.InputDir)
	outPath := filepath.Join(cfg.OutputDir, gateway.OutputFilename(src.Name(), time.Now()))
	dest := gateway.NewWorkbookWriter(outPath)

	report, err := tradesum.Run(opts, defs, src, dest, logger)
	if err != nil {
		emitJSON(output{
			Success:     false,
			RunID:       report.RunID,
			Processed:   report.Processed,
			Skipped:     report.Skipped,
			Diagnostics: report.Diagnostics,
			Error:       err.Error(),
			Duration:    time.Since(start).String(),
		})
		return err
	}

	emitJSON(output{
		Success:     true,
		OutputFile:  outPath,
		RunID:       report.RunID,
		Processed:   report.Processed,
		Skipped:     report.Skipped,
		Diagnostics: report.Diagnostics,
		Duration:    time.Since(start).String(),
	})
	return nil
}

func fail(start time.Time, err error) error {
	emitJSON(output{
		Success:  false,
		Error:    err.Error(),
		Duration: time.Since(start).String(),
	})
	return err
}

func emitJSON(out output) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
	}
}
