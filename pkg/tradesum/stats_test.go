package tradesum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

func TestSampleStdDev(t *testing.T) {
	assert.InDelta(t, 10.0, sampleStdDev([]float64{10, 20, 30}), 1e-9)
	// Sample standard deviation is undefined below two values; the guard
	// floors it at 0.
	assert.Equal(t, 0.0, sampleStdDev([]float64{42}))
	assert.Equal(t, 0.0, sampleStdDev(nil))
}

func TestSummarize(t *testing.T) {
	mixed := []models.Cell{num(10), txt("note"), num(20), empty(), num(30)}
	noNums := []models.Cell{txt("a"), empty()}

	tests := []struct {
		name   string
		fn     models.SummarizeFunc
		cells  []models.Cell
		want   float64
		wantOK bool
	}{
		{"sum numeric only", models.FnSum, mixed, 60, true},
		{"sum empty group", models.FnSum, nil, 0, true},
		{"count numeric only", models.FnCount, mixed, 3, true},
		{"countAny counts non-empty", models.FnCountAny, mixed, 4, true},
		{"min", models.FnMin, mixed, 10, true},
		{"max", models.FnMax, mixed, 30, true},
		{"average", models.FnAverage, mixed, 20, true},
		{"stdev", models.FnStdDev, mixed, 10, true},
		{"stdev single value", models.FnStdDev, []models.Cell{num(5)}, 0, true},
		{"min undefined without numbers", models.FnMin, noNums, 0, false},
		{"max undefined without numbers", models.FnMax, noNums, 0, false},
		{"average undefined without numbers", models.FnAverage, noNums, 0, false},
		{"count without numbers", models.FnCount, noNums, 0, true},
		{"countAny without numbers", models.FnCountAny, noNums, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Summarize(tt.fn, tt.cells)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
