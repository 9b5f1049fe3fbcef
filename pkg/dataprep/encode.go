package dataprep

import (
	"fmt"
	"sort"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// OneHotEncoder expands one column into a 0/1 Int column per category seen at
// fit, named <col>_<category>. The vocabulary is frozen at fit: values that
// were not seen then produce a row of zeros rather than an error.
type OneHotEncoder struct {
	Column string
	// Drop removes the source column from the result.
	Drop bool
}

// OneHotState is the sorted category vocabulary learned at fit.
type OneHotState struct {
	Numeric bool      `msgpack:"numeric"`
	Labels  []string  `msgpack:"labels"`
	Values  []float64 `msgpack:"values,omitempty"`
}

// NewOneHotEncoder creates an encoder for col.
func NewOneHotEncoder(col string, drop bool) *OneHotEncoder {
	return &OneHotEncoder{Column: col, Drop: drop}
}

// NewState returns an empty state for decoding.
func (e *OneHotEncoder) NewState() any { return &OneHotState{} }

// Fit records the sorted distinct non-missing values of the column.
func (e *OneHotEncoder) Fit(t *core.Table) (any, error) {
	c, err := t.Column(e.Column)
	if err != nil {
		return nil, err
	}
	st := &OneHotState{Numeric: c.IsNumeric()}
	switch {
	case c.IsNumeric():
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		seen := make(map[float64]bool)
		for i, v := range x {
			if c.IsMissing(i) || seen[v] {
				continue
			}
			seen[v] = true
			st.Values = append(st.Values, v)
		}
		sort.Float64s(st.Values)
		for _, v := range st.Values {
			st.Labels = append(st.Labels, core.FormatFloat(v))
		}
	case c.Kind() == core.String:
		seen := make(map[string]bool)
		for i := range c.Len() {
			if c.IsMissing(i) {
				continue
			}
			s := c.Format(i)
			if !seen[s] {
				seen[s] = true
				st.Labels = append(st.Labels, s)
			}
		}
		sort.Strings(st.Labels)
	default:
		return nil, fmt.Errorf("%w: cannot one-hot encode %s column %q", core.ErrType, c.Kind(), e.Column)
	}
	return st, nil
}

// Transform appends one indicator column per category.
func (e *OneHotEncoder) Transform(t *core.Table, state any) (*core.Table, error) {
	st, ok := state.(*OneHotState)
	if !ok || st == nil {
		return nil, fmt.Errorf("one-hot %q: %w", e.Column, core.ErrNotFitted)
	}
	c, err := t.Column(e.Column)
	if err != nil {
		return nil, err
	}
	if c.IsNumeric() != st.Numeric {
		return nil, fmt.Errorf("%w: column %q changed kind since fit", core.ErrType, e.Column)
	}
	var x []float64
	if st.Numeric {
		if x, err = c.Float64s(); err != nil {
			return nil, err
		}
	}

	out := t
	for k, label := range st.Labels {
		name := e.Column + "_" + label
		if out.Has(name) {
			return nil, fmt.Errorf("%w: column %q already exists; rename it before encoding %q", core.ErrConflict, name, e.Column)
		}
		ind := make([]int64, c.Len())
		for i := range ind {
			if c.IsMissing(i) {
				continue
			}
			if st.Numeric {
				if x[i] == st.Values[k] {
					ind[i] = 1
				}
			} else if c.Format(i) == label {
				ind[i] = 1
			}
		}
		if out, err = out.WithColumn(core.NewInt(name, ind)); err != nil {
			return nil, err
		}
	}
	if e.Drop {
		return out.Drop(e.Column)
	}
	return out, nil
}
