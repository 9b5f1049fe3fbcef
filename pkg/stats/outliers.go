package stats

import (
	"fmt"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

const (
	// IQRPrefix prefixes the columns produced by IQRMetrics.
	IQRPrefix = "iqr_"

	// IQRFlagPrefix prefixes the flag columns appended by IQRFlag.
	IQRFlagPrefix = "iqr_flag_"

	// IQRMetricIndex names the row key of IQRMetrics results.
	IQRMetricIndex = "metric"
)

// Bounds holds the interquartile range of a column and the Tukey fences
// Q1 - 1.5*IQR and Q3 + 1.5*IQR.
type Bounds struct {
	IQR   float64
	Lower float64
	Upper float64
}

// Outside reports whether v lies beyond either fence. NaN is never outside.
func (b Bounds) Outside(v float64) bool {
	return v < b.Lower || v > b.Upper
}

// IQRBounds computes the quartiles of a numeric column, skipping missing values.
func IQRBounds(col *core.Column) (Bounds, error) {
	x, err := col.Float64s()
	if err != nil {
		return Bounds{}, err
	}
	q1, q3 := Quantile(x, 0.25), Quantile(x, 0.75)
	iqr := q3 - q1
	return Bounds{IQR: iqr, Lower: q1 - 1.5*iqr, Upper: q3 + 1.5*iqr}, nil
}

// IQRMetrics tabulates IQR, lower and upper fence per numeric column.
func IQRMetrics(t *core.Table) (*core.Table, error) {
	names := t.NumericNames()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: table has no numeric columns", core.ErrRange)
	}
	cols := make([]*core.Column, 0, len(names))
	for _, name := range names {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		b, err := IQRBounds(c)
		if err != nil {
			return nil, err
		}
		cols = append(cols, core.NewFloat(IQRPrefix+name, []float64{b.IQR, b.Lower, b.Upper}))
	}
	out, err := core.NewTable(cols...)
	if err != nil {
		return nil, err
	}
	return out.WithIndex(core.NewString(IQRMetricIndex, []string{"IQR", "Lower Bound", "Upper Bound"}))
}

// IQRFlag marks values outside the IQR fences of each numeric column not
// excluded. By default a Bool column IQRFlagPrefix+name is appended per
// column. WithFilter drops flagged rows instead; columns are processed in
// order and each column's fences are computed on the rows that survived the
// previous ones.
func IQRFlag(t *core.Table, opts ...IQROption) (*core.Table, error) {
	var o iqrOptions
	for _, opt := range opts {
		opt(&o)
	}
	skip := make(map[string]bool, len(o.excluded))
	for _, n := range o.excluded {
		if !t.Has(n) {
			return nil, fmt.Errorf("%w: excluded column %q not found", core.ErrKey, n)
		}
		skip[n] = true
	}

	out := t
	for _, name := range t.NumericNames() {
		if skip[name] {
			continue
		}
		if !o.filter && t.Has(IQRFlagPrefix+name) {
			return nil, fmt.Errorf("%w: column %q already exists; rename it before flagging %q", core.ErrConflict, IQRFlagPrefix+name, name)
		}
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		b, err := IQRBounds(c)
		if err != nil {
			return nil, err
		}
		x, _ := c.Float64s()
		flags := make([]bool, len(x))
		for i, v := range x {
			flags[i] = b.Outside(v) != o.invert
		}

		if o.filter {
			keep := make([]bool, len(flags))
			for i, f := range flags {
				keep[i] = !f
			}
			out, err = out.Filter(keep)
		} else {
			out, err = out.WithColumn(core.NewBool(IQRFlagPrefix+name, flags))
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
