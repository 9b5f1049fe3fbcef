package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanAndStdSkipMissing(t *testing.T) {
	x := []float64{1, 2, math.NaN(), 3}
	assert.InDelta(t, 2.0, Mean(x), 1e-12)
	assert.InDelta(t, 1.0, SampleStd(x), 1e-12)
	assert.InDelta(t, math.Sqrt(2.0/3.0), PopStd(x), 1e-12)
}

func TestStdEdgeCases(t *testing.T) {
	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(SampleStd([]float64{4})))
	assert.Equal(t, 0.0, PopStd([]float64{4}))
	assert.Equal(t, 0.0, PopStd([]float64{7, 7, 7}))
}

func TestQuantileLinearInterpolation(t *testing.T) {
	x := []float64{4, 1, 3, 2}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 1},
		{0.25, 1.75},
		{0.5, 2.5},
		{0.75, 3.25},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Quantile(x, tt.q), 1e-12, "q=%v", tt.q)
	}
	assert.True(t, math.IsNaN(Quantile([]float64{math.NaN()}, 0.5)))
}

func TestMinMax(t *testing.T) {
	lo, hi := MinMax([]float64{3, math.NaN(), -1, 8})
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 8.0, hi)
}
