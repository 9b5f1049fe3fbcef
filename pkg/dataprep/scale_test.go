package dataprep

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/stats"
)

func TestStandardizer_UnitScale(t *testing.T) {
	tbl := core.MustTable(
		core.NewFloat("price", []float64{1, 2, 3, 4, 10}),
		core.NewInt("beds", []int64{7, 7, 7, 7, 7}),
		core.NewString("type", []string{"a", "b", "c", "d", "e"}),
	)
	var buf bytes.Buffer
	s := NewStandardizer()
	s.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	state, err := s.Fit(tbl)
	require.NoError(t, err)
	st := state.(*StandardizerState)
	assert.Equal(t, []string{"price", "beds"}, st.Columns)
	assert.Equal(t, []string{"beds"}, st.ZeroVariance)
	assert.Contains(t, buf.String(), "zero-variance")

	out, err := s.Transform(tbl, state)
	require.NoError(t, err)

	price, _ := out.Column("price")
	x, _ := price.Float64s()
	assert.InDelta(t, 0, stats.Mean(x), 1e-12)
	assert.InDelta(t, 1, stats.PopStd(x), 1e-12)

	beds, _ := out.Column("beds")
	assert.Equal(t, core.Int, beds.Kind(), "zero-variance column passes through")
	assert.Equal(t, int64(7), beds.Value(0))

	orig, _ := tbl.Column("price")
	assert.Equal(t, 1.0, orig.Value(0))
}

func TestStandardizer_ReusesFittedState(t *testing.T) {
	train := core.MustTable(core.NewFloat("x", []float64{0, 2}))
	test := core.MustTable(core.NewFloat("x", []float64{4}))

	s := NewStandardizer("x")
	state, err := s.Fit(train)
	require.NoError(t, err)

	out, err := s.Transform(test, state)
	require.NoError(t, err)
	c, _ := out.Column("x")
	assert.InDelta(t, 3.0, c.Value(0), 1e-12)
}

func TestStandardizer_Errors(t *testing.T) {
	tbl := core.MustTable(core.NewString("type", []string{"a"}))

	_, err := NewStandardizer("type").Fit(tbl)
	require.ErrorIs(t, err, core.ErrType)

	_, err = NewStandardizer("price").Fit(tbl)
	require.ErrorIs(t, err, core.ErrKey)

	_, err = NewStandardizer().Transform(tbl, nil)
	require.ErrorIs(t, err, core.ErrNotFitted)
}
