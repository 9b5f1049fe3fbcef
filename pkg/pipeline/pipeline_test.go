package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/dataprep"
)

func listings() *core.Table {
	return core.MustTable(
		core.NewInt("id", []int64{1, 2, 3, 4}),
		core.NewFloat("price", []float64{900, 1200, math.NaN(), 1500}),
		core.NewFloat("sqfeet", []float64{450, 600, 800, 1000}),
		core.NewString("type", []string{"apartment", "house", "apartment", "condo"}),
	)
}

func housingSteps(t *testing.T) []Step {
	t.Helper()
	logStage, err := dataprep.NewLogTransform([]string{"sqfeet"}, dataprep.WithBase(10), dataprep.WithNewColumn())
	require.NoError(t, err)
	ratio, err := dataprep.NewArithmeticCombiner(dataprep.Divide, "price_per_sqft", []string{"price", "sqfeet"})
	require.NoError(t, err)
	return []Step{
		{Name: "choose", Stage: dataprep.NewColumnSelector("price", "sqfeet", "type")},
		{Name: "fill", Stage: dataprep.NewMissingValueFiller(map[string]any{"price": 1000.0})},
		{Name: "ratio", Stage: ratio},
		{Name: "log", Stage: logStage},
		{Name: "scale", Stage: dataprep.NewStandardizer("price", "sqfeet")},
		{Name: "onehot", Stage: dataprep.NewOneHotEncoder("type", true)},
	}
}

func TestPipeline_ChoosesThenFills(t *testing.T) {
	x := core.MustTable(
		core.NewFloat("A", []float64{1, 5, 3}),
		core.NewFloat("B", []float64{1, math.NaN(), 1}),
	)
	p, err := New([]Step{
		{Name: "choose_columns", Stage: dataprep.NewColumnSelector("A", "B")},
		{Name: "replace_na", Stage: dataprep.NewMissingValueFiller(map[string]any{"A": 0, "B": 0})},
	})
	require.NoError(t, err)

	_, out, err := p.FitTransform(x)
	require.NoError(t, err)
	b, _ := out.Column("B")
	v, _ := b.Float64s()
	assert.Equal(t, []float64{1, 0, 1}, v)

	src, _ := x.Column("B")
	assert.True(t, src.IsMissing(1))
}

func TestPipeline_FitTransformIsDeterministic(t *testing.T) {
	p1, err := New(housingSteps(t))
	require.NoError(t, err)
	p2, err := New(housingSteps(t))
	require.NoError(t, err)

	_, out1, err := p1.FitTransform(listings())
	require.NoError(t, err)
	_, out2, err := p2.FitTransform(listings())
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Equal(t, []string{"price", "sqfeet", "price_per_sqft", "log_10(sqfeet)", "type_apartment", "type_condo", "type_house"}, out1.Names())
}

func TestPipeline_FittedTransformReusesState(t *testing.T) {
	p, err := New(housingSteps(t))
	require.NoError(t, err)
	fitted, trained, err := p.FitTransform(listings())
	require.NoError(t, err)

	again, err := fitted.Transform(listings())
	require.NoError(t, err)
	assert.Equal(t, trained, again)

	fresh := core.MustTable(
		core.NewInt("id", []int64{9}),
		core.NewFloat("price", []float64{1200}),
		core.NewFloat("sqfeet", []float64{600}),
		core.NewString("type", []string{"townhouse"}),
	)
	out, err := fitted.Transform(fresh)
	require.NoError(t, err)
	for _, name := range []string{"type_apartment", "type_condo", "type_house"} {
		c, err := out.Column(name)
		require.NoError(t, err)
		assert.Equal(t, int64(0), c.Value(0), name)
	}

	state, ok := fitted.State("scale")
	require.True(t, ok)
	assert.Equal(t, []string{"price", "sqfeet"}, state.(*dataprep.StandardizerState).Columns)
	state, ok = fitted.State("choose")
	require.True(t, ok)
	assert.Nil(t, state)
}

type recorder struct {
	calls []string
}

func (r *recorder) ObserveStage(step, phase string, _ int, _ time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.calls = append(r.calls, step+"/"+phase+"/"+outcome)
}

func TestPipeline_FirstFailureAborts(t *testing.T) {
	zero := core.MustTable(
		core.NewFloat("a", []float64{1, 2}),
		core.NewFloat("b", []float64{1, 0}),
	)
	div, err := dataprep.NewArithmeticCombiner(dataprep.Divide, "q", []string{"a", "b"})
	require.NoError(t, err)

	rec := &recorder{}
	p, err := New([]Step{
		{Name: "scale", Stage: dataprep.NewScalarScaler("a", 2)},
		{Name: "divide", Stage: div},
		{Name: "never", Stage: dataprep.NewScalarScaler("a", 3)},
	}, WithMetrics(rec))
	require.NoError(t, err)

	_, _, err = p.FitTransform(zero)
	require.ErrorIs(t, err, core.ErrArithmetic)
	assert.Contains(t, err.Error(), `step "divide"`)
	assert.Equal(t, []string{"scale/fit_transform/ok", "divide/fit_transform/error"}, rec.calls)
}

func TestNew_RejectsInvalidSteps(t *testing.T) {
	sel := dataprep.NewColumnSelector("a")
	_, err := New([]Step{{Name: "a", Stage: sel}, {Name: "a", Stage: sel}})
	require.ErrorIs(t, err, ErrInvalidStep)

	_, err = New([]Step{{Name: "", Stage: sel}})
	require.ErrorIs(t, err, ErrInvalidStep)

	_, err = New([]Step{{Name: "x"}})
	require.ErrorIs(t, err, ErrInvalidStep)
}
