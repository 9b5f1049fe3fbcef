package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DropMissing returns the non-NaN values of x in order.
func DropMissing(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean computes the average of the non-missing values, NaN when there are none.
func Mean(x []float64) float64 {
	v := DropMissing(x)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// SampleStd computes the N-1 standard deviation of the non-missing values.
// It is NaN for fewer than two values.
func SampleStd(x []float64) float64 {
	v := DropMissing(x)
	if len(v) < 2 {
		return math.NaN()
	}
	return stat.StdDev(v, nil)
}

// PopStd computes the N standard deviation of the non-missing values.
func PopStd(x []float64) float64 {
	v := DropMissing(x)
	n := float64(len(v))
	switch len(v) {
	case 0:
		return math.NaN()
	case 1:
		return 0
	}
	return math.Sqrt(stat.Variance(v, nil) * (n - 1) / n)
}

// MinMax returns the minimum and maximum of the non-missing values.
func MinMax(x []float64) (float64, float64) {
	v := DropMissing(x)
	if len(v) == 0 {
		return math.NaN(), math.NaN()
	}
	return floats.Min(v), floats.Max(v)
}

// Quantile returns the q-th quantile (0 <= q <= 1) of the non-missing values,
// interpolating linearly between closest ranks: rank = q*(n-1).
func Quantile(x []float64, q float64) float64 {
	cp := DropMissing(x)
	n := len(cp)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(cp)
	if q <= 0 {
		return cp[0]
	}
	if q >= 1 {
		return cp[n-1]
	}
	rank := q * float64(n-1)
	lower := int(rank)
	upper := lower + 1
	weight := rank - float64(lower)
	if upper >= n {
		return cp[lower]
	}
	return cp[lower]*(1-weight) + cp[upper]*weight
}
