package models

import "fmt"

// SummarizeFunc identifies an aggregate function applied to a group of
// cells.
type SummarizeFunc int

const (
	// FnSum adds the numeric values of a group.
	FnSum SummarizeFunc = iota
	// FnCount counts the numeric values of a group.
	FnCount
	// FnCountAny counts the non-empty values of a group, numeric or not.
	FnCountAny
	// FnMin takes the smallest numeric value of a group.
	FnMin
	// FnMax takes the largest numeric value of a group.
	FnMax
	// FnAverage takes the mean of the numeric values of a group.
	FnAverage
	// FnStdDev takes the sample standard deviation of the numeric values
	// of a group.
	FnStdDev
)

// String returns the configuration name of the function.
func (f SummarizeFunc) String() string {
	switch f {
	case FnSum:
		return "sum"
	case FnCount:
		return "count"
	case FnCountAny:
		return "countAny"
	case FnMin:
		return "min"
	case FnMax:
		return "max"
	case FnAverage:
		return "average"
	case FnStdDev:
		return "stdev"
	default:
		return fmt.Sprintf("SummarizeFunc(%d)", int(f))
	}
}

// ParseSummarizeFunc maps a configuration name to a SummarizeFunc.
func ParseSummarizeFunc(name string) (SummarizeFunc, error) {
	switch name {
	case "sum":
		return FnSum, nil
	case "count":
		return FnCount, nil
	case "countAny":
		return FnCountAny, nil
	case "min":
		return FnMin, nil
	case "max":
		return FnMax, nil
	case "average":
		return FnAverage, nil
	case "stdev":
		return FnStdDev, nil
	default:
		return 0, fmt.Errorf("unknown summarize function %q", name)
	}
}

// PivotDefinition describes one desired group-by/summarize view over a
// source table. Keys refer to header column names of the source.
type PivotDefinition struct {
	// Name is the name of the rendered view.
	Name string `json:"name"`
	// RowKey is the column whose distinct values become row groups.
	RowKey string `json:"row_key"`
	// ColKey is the optional column whose distinct values become columns;
	// empty for a one-dimensional pivot.
	ColKey string `json:"col_key,omitempty"`
	// ValueKey is the column the summarize function is applied to.
	ValueKey string `json:"value_key"`
	// Fn is the summarize function.
	Fn SummarizeFunc `json:"fn"`
	// ShowTotals appends a synthetic totals row (and column, for
	// cross-tabulations) aggregated with the same function.
	ShowTotals bool `json:"show_totals"`
	// SortByValueDesc orders row groups by their aggregate value,
	// descending, ties broken by first-seen order. The default is
	// first-seen order.
	SortByValueDesc bool `json:"sort_by_value_desc"`
	// MinRows is the minimum number of source rows required to build the
	// view; fewer rows skip the view.
	MinRows int `json:"min_rows"`
}
