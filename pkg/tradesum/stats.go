package tradesum

import (
	"math"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// Summarize applies fn to a multiset of cells. The boolean result is
// false when the function is undefined for the group: min, max and
// average over a group with no numeric values. Counting and summing
// functions always return a defined value (0 for an empty group), and
// stdev of fewer than two numeric values is 0.
func Summarize(fn models.SummarizeFunc, cells []models.Cell) (float64, bool) {
	switch fn {
	case models.FnCountAny:
		n := 0
		for _, c := range cells {
			if !c.IsEmpty() {
				n++
			}
		}
		return float64(n), true
	case models.FnCount:
		return float64(len(numbersOf(cells))), true
	}

	nums := numbersOf(cells)
	switch fn {
	case models.FnSum:
		return sum(nums), true
	case models.FnMin:
		if len(nums) == 0 {
			return 0, false
		}
		m := nums[0]
		for _, v := range nums[1:] {
			if v < m {
				m = v
			}
		}
		return m, true
	case models.FnMax:
		if len(nums) == 0 {
			return 0, false
		}
		m := nums[0]
		for _, v := range nums[1:] {
			if v > m {
				m = v
			}
		}
		return m, true
	case models.FnAverage:
		if len(nums) == 0 {
			return 0, false
		}
		return sum(nums) / float64(len(nums)), true
	case models.FnStdDev:
		return sampleStdDev(nums), true
	}
	return 0, false
}

func numbersOf(cells []models.Cell) []float64 {
	nums := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.IsNumber() {
			nums = append(nums, c.Number)
		}
	}
	return nums
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// sampleStdDev returns the sample standard deviation (n-1 denominator),
// or 0 when fewer than two values are present.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := sum(values) / float64(n)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
