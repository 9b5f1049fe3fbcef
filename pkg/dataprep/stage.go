// Package dataprep holds the column transformations that make up a
// preprocessing pipeline. Every stage follows the same contract:
//
//	state, err := stage.Fit(table)
//	out, err := stage.Transform(table, state)
//
// Fit learns whatever the stage needs from the table and returns it as an
// immutable state value; Transform applies the stage using that state and
// returns a new table, leaving its input untouched. Stages that learn nothing
// return a nil state from Fit and ignore the state passed to Transform.
package dataprep

import (
	"log/slog"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// stateless supplies the no-op Fit of stages that learn nothing from data.
type stateless struct{}

// Fit returns a nil state.
func (stateless) Fit(*core.Table) (any, error) { return nil, nil }

// notice emits an advisory message when the stage has a logger attached.
func notice(l *slog.Logger, msg string, args ...any) {
	if l != nil {
		l.Info(msg, args...)
	}
}
