package dataprep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

func TestMissingValueFiller(t *testing.T) {
	laundry, err := core.NewStringNull("laundry", []string{"in unit", ""}, []bool{false, true})
	require.NoError(t, err)
	tbl := core.MustTable(
		core.NewFloat("A", []float64{1, 5}),
		core.NewFloat("B", []float64{1, math.NaN()}),
		laundry,
	)
	f := NewMissingValueFiller(map[string]any{"A": 0, "B": 0, "laundry": "none"})
	out, err := f.Transform(tbl, nil)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 5}, floats(t, out, "A"))
	assert.Equal(t, []float64{1, 0}, floats(t, out, "B"))
	l, _ := out.Column("laundry")
	assert.Equal(t, "none", l.Value(1))

	b, _ := tbl.Column("B")
	assert.True(t, b.IsMissing(1), "input must not change")
}

func TestMissingValueFiller_Errors(t *testing.T) {
	tbl := core.MustTable(core.NewFloat("A", []float64{math.NaN()}))

	_, err := NewMissingValueFiller(map[string]any{"A": 0, "Z": 1}).Transform(tbl, nil)
	require.ErrorIs(t, err, core.ErrKey)

	_, err = NewMissingValueFiller(map[string]any{"A": "zero"}).Transform(tbl, nil)
	require.ErrorIs(t, err, core.ErrType)

	out, err := NewMissingValueFiller(nil).Transform(tbl, nil)
	require.NoError(t, err)
	assert.Same(t, tbl, out)
}
