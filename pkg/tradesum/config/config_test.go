package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tradesum.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Total", cfg.SearchLabel)
	assert.Equal(t, "TRADE SUMMARY", cfg.SummaryName)
	assert.Equal(t, 8, cfg.DataStartRow)
	assert.False(t, cfg.SortSheets)
	assert.Equal(t, []string{"NUM", "SUM", "AVG", "MIN", "MAX", "DEV"}, cfg.Statistics)

	defs, err := cfg.PivotDefinitions()
	require.NoError(t, err)
	// One view per summarize function plus the ranked cross-tabulation.
	require.Len(t, defs, 8)
	last := defs[len(defs)-1]
	assert.Equal(t, "VALUE BY SOURCE AND TAB", last.Name)
	assert.Equal(t, "Tab", last.ColKey)
	assert.True(t, last.SortByValueDesc)
	assert.True(t, last.ShowTotals)
	assert.Equal(t, models.FnSum, last.Fn)
	// MinRows defaults to 1 so empty runs skip the view.
	assert.Equal(t, 1, last.MinRows)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
input_dir: /data/reports
search_label: Grand Total
data_start_row: 10
sort_sheets: true
pivots:
  - name: BY TAB count
    row_key: Tab
    value_key: Value
    fn: count
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/reports", cfg.InputDir)
	assert.Equal(t, "Grand Total", cfg.SearchLabel)
	assert.Equal(t, 10, cfg.DataStartRow)
	assert.True(t, cfg.SortSheets)

	defs, err := cfg.PivotDefinitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, models.PivotDefinition{
		Name:     "BY TAB count",
		RowKey:   "Tab",
		ValueKey: "Value",
		Fn:       models.FnCount,
		MinRows:  1,
	}, defs[0])
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "search_label: File Label\n")
	t.Setenv("TRADESUM_SEARCH_LABEL", "Env Label")
	t.Setenv("TRADESUM_DATA_START_ROW", "9")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Env Label", cfg.SearchLabel)
	assert.Equal(t, 9, cfg.DataStartRow)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	// Run from a directory without a tradesum.yml.
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(origDir)) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().SearchLabel, cfg.SearchLabel)
	assert.Len(t, cfg.Pivots, len(DefaultPivots()))
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown fn", `
pivots:
  - name: bad
    row_key: Source
    value_key: Value
    fn: median
`},
		{"missing keys", `
pivots:
  - name: bad
    fn: sum
`},
		{"unknown statistic", "statistics: [NUM, VARIANCE]\n"},
		{"data start row without room", "data_start_row: 3\n"},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestOptionsConversion(t *testing.T) {
	cfg := Default()
	cfg.Statistics = []string{"SUM", "NUM"}
	cfg.DataStartRow = 4

	opts, err := cfg.Options()
	require.NoError(t, err)
	require.Len(t, opts.Statistics, 2)
	assert.Equal(t, "SUM", opts.Statistics[0].Label)
	assert.Equal(t, models.FnSum, opts.Statistics[0].Fn)
	assert.Equal(t, "NUM", opts.Statistics[1].Label)
	assert.Equal(t, 4, opts.DataStartRow)
}
