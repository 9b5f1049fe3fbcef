package stats

import (
	"fmt"
	"math"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

const (
	// ZScorePrefix prefixes the columns produced by ZScoreMetrics.
	ZScorePrefix = "zscore_"

	// FailsBound replaces values rejected by ZScoreFilter.
	FailsBound = "Fails Z-score bound"
)

// ZScoreMetrics computes (x - mean) / std for every numeric column, using the
// sample standard deviation. Columns with zero deviation are filled with the
// zero-std fallback and non-numeric columns with NaN. Output columns are named
// ZScorePrefix + source name.
func ZScoreMetrics(t *core.Table, opts ...ZScoreOption) (*core.Table, error) {
	o := newZScoreOptions(opts)
	var id *core.Column
	if o.idColumn != "" {
		c, err := t.Column(o.idColumn)
		if err != nil {
			return nil, err
		}
		id = c
	}

	var cols []*core.Column
	if id != nil && !o.indexByID {
		cols = append(cols, id)
	}
	for _, c := range t.Columns() {
		if id != nil && c.Name() == id.Name() {
			continue
		}
		name := ZScorePrefix + c.Name()
		if !c.IsNumeric() {
			cols = append(cols, core.NewFloat(name, constant(c.Len(), math.NaN())))
			continue
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		mean, std := Mean(x), SampleStd(x)
		if std == 0 {
			cols = append(cols, core.NewFloat(name, constant(len(x), o.fallback)))
			continue
		}
		z := make([]float64, len(x))
		for i, v := range x {
			z[i] = (v - mean) / std
		}
		cols = append(cols, core.NewFloat(name, z))
	}

	out, err := core.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	if id != nil && o.indexByID {
		return out.WithIndex(id)
	}
	if idx := t.Index(); idx != nil {
		return out.WithIndex(idx)
	}
	return out, nil
}

// ZScoreFilter replaces every numeric value whose absolute z-score is at
// least the bound with the FailsBound sentinel, turning numeric columns into
// Mixed ones. Values under the bound and missing values are kept. Columns
// with zero deviation are replaced wholesale by the zero-std fallback.
func ZScoreFilter(t *core.Table, opts ...ZScoreOption) (*core.Table, error) {
	o := newZScoreOptions(opts)
	if o.column != "" && !t.Has(o.column) {
		return nil, fmt.Errorf("%w: column %q not found", core.ErrKey, o.column)
	}
	if !(o.bound > 0) {
		return nil, fmt.Errorf("%w: z-score bound must be positive, got %v", core.ErrRange, o.bound)
	}

	out := t
	for _, name := range t.NumericNames() {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		mean, std := Mean(x), SampleStd(x)
		var repl *core.Column
		if std == 0 {
			repl = core.NewFloat(name, constant(len(x), o.fallback))
		} else {
			vals := make([]any, len(x))
			for i, v := range x {
				switch {
				case math.IsNaN(v):
					vals[i] = nil
				case math.Abs((v-mean)/std) < o.bound:
					vals[i] = v
				default:
					vals[i] = FailsBound
				}
			}
			if repl, err = core.NewMixed(name, vals); err != nil {
				return nil, err
			}
		}
		if out, err = out.WithColumn(repl); err != nil {
			return nil, err
		}
	}

	if o.column != "" {
		return out.Select(o.column)
	}
	return out, nil
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
