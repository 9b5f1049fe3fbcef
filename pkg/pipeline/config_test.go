package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

const housingConfig = `
steps:
  - name: choose
    type: select
    columns: [price, sqfeet, beds, type]
  - name: fill
    type: fillna
    replacements:
      price: 1000
  - name: rooms
    type: arithmetic
    op: multiply
    new_column: sqfeet_beds
    columns: [sqfeet, beds]
  - name: price_log
    type: log
    columns: [price]
    base: 10
    offset: 0
  - name: thousands
    type: scale
    column: sqfeet
    factor: 0.001
  - name: standardize
    type: standardize
    columns: [beds]
    verbose: true
  - name: types
    type: onehot
    column: type
    drop: true
`

func TestLoadConfig_Build(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(housingConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Steps, 7)
	assert.Equal(t, "arithmetic", cfg.Steps[2].Type)
	assert.Equal(t, "sqfeet_beds", cfg.Steps[2].Params["new_column"])

	p, err := cfg.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"choose", "fill", "rooms", "price_log", "thousands", "standardize", "types"}, p.Steps())

	tbl := core.MustTable(
		core.NewFloat("price", []float64{100, 1000}),
		core.NewFloat("sqfeet", []float64{500, 1000}),
		core.NewInt("beds", []int64{2, 2}),
		core.NewString("type", []string{"house", "condo"}),
		core.NewString("region", []string{"x", "y"}),
	)
	_, out, err := p.FitTransform(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "sqfeet", "beds", "sqfeet_beds", "type_condo", "type_house"}, out.Names())

	price, _ := out.Column("price")
	v, _ := price.Float64s()
	assert.InDeltaSlice(t, []float64{2, 3}, v, 1e-12)

	sq, _ := out.Column("sqfeet")
	v, _ = sq.Float64s()
	assert.InDeltaSlice(t, []float64{0.5, 1}, v, 1e-12)

	beds, _ := out.Column("beds")
	assert.Equal(t, core.Int, beds.Kind(), "zero variance passes through")
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
steps:
  - {name: l, type: log, columns: [x]}
  - {name: s, type: scale, column: x}
`))
	require.NoError(t, err)
	p, err := cfg.Build()
	require.NoError(t, err)

	_, out, err := p.FitTransform(core.MustTable(core.NewFloat("x", []float64{0})))
	require.NoError(t, err)
	x, _ := out.Column("x")
	assert.Equal(t, 0.0, x.Value(0), "log(0+1) scaled by 1")
}

func TestConfig_ScaleWithoutFactorKeepsValues(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
steps:
  - {name: s, type: scale, column: x}
`))
	require.NoError(t, err)
	p, err := cfg.Build()
	require.NoError(t, err)

	_, out, err := p.FitTransform(core.MustTable(core.NewFloat("x", []float64{5, -2})))
	require.NoError(t, err)
	x, _ := out.Column("x")
	v, _ := x.Float64s()
	assert.Equal(t, []float64{5, -2}, v)
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		is   error
	}{
		{"unknown type", "steps: [{name: a, type: pca}]", ErrInvalidStep},
		{"columns not a list", "steps: [{name: a, type: select, columns: price}]", core.ErrType},
		{"unknown param", "steps: [{name: a, type: scale, column: x, by: 2}]", core.ErrType},
		{"bad operator", "steps: [{name: a, type: arithmetic, op: pow, new_column: z}]", core.ErrRange},
		{"minus arity", "steps: [{name: a, type: arithmetic, op: minus, new_column: z, columns: [a]}]", core.ErrRange},
		{"duplicate", "steps: [{name: a, type: select}, {name: a, type: select}]", ErrInvalidStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(strings.NewReader(tt.yaml))
			require.NoError(t, err)
			_, err = cfg.Build()
			require.ErrorIs(t, err, tt.is)
		})
	}
}

func TestLoadConfig_RejectsMalformedYAML(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("steps: {"))
	require.Error(t, err)
}
