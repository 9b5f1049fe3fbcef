package stats

import (
	"fmt"
	"math"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// StdRangeIndex names the row key of NormalMetrics results.
const StdRangeIndex = "std range"

// PercentageBetween returns the percentage (0-100) of non-missing values of col
// that lie between a and b. includeA and includeB choose closed or open ends.
// The result is NaN when col has no non-missing values.
func PercentageBetween(col *core.Column, a, b float64, includeA, includeB bool) (float64, error) {
	x, err := col.Float64s()
	if err != nil {
		return 0, err
	}
	if a > b {
		return 0, fmt.Errorf("%w: lower bound %v is greater than upper bound %v", core.ErrRange, a, b)
	}
	total, inside := 0, 0
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		total++
		lo := v > a || (includeA && v == a)
		hi := v < b || (includeB && v == b)
		if lo && hi {
			inside++
		}
	}
	if total == 0 {
		return math.NaN(), nil
	}
	return float64(inside) / float64(total) * 100, nil
}

// NormalMetrics reports, for every numeric column and k = 1..n, the percentage
// of values within k sample standard deviations of the mean. Comparing the
// result with 68/95/99.7 gives a quick read on normality. Non-numeric columns
// are NaN throughout.
func NormalMetrics(t *core.Table, n int) (*core.Table, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: std range count must be at least 1, got %d", core.ErrRange, n)
	}
	labels := make([]string, n)
	for k := 1; k <= n; k++ {
		labels[k-1] = fmt.Sprintf("±%d std", k)
	}

	cols := make([]*core.Column, 0, t.NumCols())
	for _, c := range t.Columns() {
		out := make([]float64, n)
		if !c.IsNumeric() {
			for i := range out {
				out[i] = math.NaN()
			}
			cols = append(cols, core.NewFloat(c.Name(), out))
			continue
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		mean, std := Mean(x), SampleStd(x)
		for k := 1; k <= n; k++ {
			a, b := mean-float64(k)*std, mean+float64(k)*std
			if math.IsNaN(a) || math.IsNaN(b) {
				out[k-1] = math.NaN()
				continue
			}
			p, err := PercentageBetween(c, a, b, true, true)
			if err != nil {
				return nil, err
			}
			out[k-1] = p
		}
		cols = append(cols, core.NewFloat(c.Name(), out))
	}

	res, err := core.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return res.WithIndex(core.NewString(StdRangeIndex, labels))
}
