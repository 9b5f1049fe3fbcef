package dataprep

import (
	"fmt"
	"log/slog"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/stats"
)

// Standardizer rescales columns to zero mean and unit variance using the
// population standard deviation. Columns with zero variance pass through.
type Standardizer struct {
	// Columns to standardize. Empty means every numeric column seen at fit.
	Columns []string
	// Logger receives a notice listing skipped zero-variance columns. Nil is silent.
	Logger *slog.Logger `msgpack:"-"`
}

// StandardizerState is what Standardizer learns at fit.
type StandardizerState struct {
	Columns      []string  `msgpack:"columns"`
	Means        []float64 `msgpack:"means"`
	Stds         []float64 `msgpack:"stds"`
	ZeroVariance []string  `msgpack:"zero_variance"`
}

// NewStandardizer creates a standardizer for the given columns, or for all
// numeric columns when none are given.
func NewStandardizer(columns ...string) *Standardizer {
	return &Standardizer{Columns: columns}
}

// NewState returns an empty state for decoding.
func (s *Standardizer) NewState() any { return &StandardizerState{} }

// Fit records the mean and population standard deviation of each column.
func (s *Standardizer) Fit(t *core.Table) (any, error) {
	cols := s.Columns
	if len(cols) == 0 {
		cols = t.NumericNames()
	}
	st := &StandardizerState{
		Columns: append([]string(nil), cols...),
		Means:   make([]float64, len(cols)),
		Stds:    make([]float64, len(cols)),
	}
	for i, name := range cols {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		st.Means[i] = stats.Mean(x)
		st.Stds[i] = stats.PopStd(x)
		if st.Stds[i] == 0 {
			st.ZeroVariance = append(st.ZeroVariance, name)
		}
	}
	if len(st.ZeroVariance) > 0 {
		notice(s.Logger, "skipping zero-variance columns", "columns", st.ZeroVariance)
	}
	return st, nil
}

// Transform applies the learned mean and deviation.
func (s *Standardizer) Transform(t *core.Table, state any) (*core.Table, error) {
	st, ok := state.(*StandardizerState)
	if !ok || st == nil {
		return nil, fmt.Errorf("standardize: %w", core.ErrNotFitted)
	}
	out := t
	for i, name := range st.Columns {
		if st.Stds[i] == 0 {
			continue
		}
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		for j, v := range x {
			x[j] = (v - st.Means[i]) / st.Stds[i]
		}
		if out, err = out.WithColumn(core.NewFloat(name, x)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
