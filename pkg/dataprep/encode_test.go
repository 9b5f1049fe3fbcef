package dataprep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

func pets(values ...string) *core.Table {
	return core.MustTable(
		core.NewFloat("price", make([]float64, len(values))),
		core.NewString("pet", values),
	)
}

func ints(t *testing.T, tbl *core.Table, name string) []int64 {
	t.Helper()
	c, err := tbl.Column(name)
	require.NoError(t, err)
	require.Equal(t, core.Int, c.Kind())
	out := make([]int64, c.Len())
	for i := range out {
		out[i] = c.Value(i).(int64)
	}
	return out
}

func TestOneHotEncoder_UnseenCategoryIsAllZero(t *testing.T) {
	enc := NewOneHotEncoder("pet", false)
	state, err := enc.Fit(pets("dog", "cat"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, state.(*OneHotState).Labels)

	out, err := enc.Transform(pets("bird", "dog"), state)
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "pet", "pet_cat", "pet_dog"}, out.Names())
	assert.Equal(t, []int64{0, 0}, ints(t, out, "pet_cat"))
	assert.Equal(t, []int64{0, 1}, ints(t, out, "pet_dog"))
}

func TestOneHotEncoder_Drop(t *testing.T) {
	enc := NewOneHotEncoder("pet", true)
	state, err := enc.Fit(pets("cat", "dog"))
	require.NoError(t, err)

	out, err := enc.Transform(pets("cat", "dog", "cat"), state)
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "pet_cat", "pet_dog"}, out.Names())
	assert.Equal(t, []int64{1, 0, 1}, ints(t, out, "pet_cat"))
	assert.Equal(t, []int64{0, 1, 0}, ints(t, out, "pet_dog"))
}

func TestOneHotEncoder_SkipsMissing(t *testing.T) {
	col, err := core.NewStringNull("pet", []string{"cat", "", "dog"}, []bool{false, true, false})
	require.NoError(t, err)
	tbl := core.MustTable(col)

	enc := NewOneHotEncoder("pet", true)
	state, err := enc.Fit(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, state.(*OneHotState).Labels)

	out, err := enc.Transform(tbl, state)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 0, 0}, ints(t, out, "pet_cat"))
}

func TestOneHotEncoder_Numeric(t *testing.T) {
	tbl := core.MustTable(core.NewInt("beds", []int64{2, 1, 2}))
	enc := NewOneHotEncoder("beds", false)
	state, err := enc.Fit(tbl)
	require.NoError(t, err)

	out, err := enc.Transform(tbl, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"beds", "beds_1", "beds_2"}, out.Names())
	assert.Equal(t, []int64{0, 1, 0}, ints(t, out, "beds_1"))
}

func TestOneHotEncoder_Errors(t *testing.T) {
	enc := NewOneHotEncoder("pet", false)

	_, err := enc.Fit(core.MustTable(core.NewFloat("price", []float64{1})))
	require.ErrorIs(t, err, core.ErrKey)

	_, err = enc.Transform(pets("cat"), nil)
	require.ErrorIs(t, err, core.ErrNotFitted)

	clash := core.MustTable(
		core.NewString("pet", []string{"cat"}),
		core.NewInt("pet_cat", []int64{9}),
	)
	state, err := enc.Fit(clash)
	require.NoError(t, err)
	_, err = enc.Transform(clash, state)
	require.ErrorIs(t, err, core.ErrConflict)
}
