// Package metrics records pipeline stage executions.
package metrics

import "time"

// Collector observes one stage execution. phase is "fit_transform" or
// "transform"; err is the stage's error, nil on success.
type Collector interface {
	ObserveStage(step, phase string, rows int, elapsed time.Duration, err error)
}

// Nop discards all observations.
type Nop struct{}

// NewNop returns a collector that records nothing.
func NewNop() *Nop { return &Nop{} }

// ObserveStage implements Collector.
func (*Nop) ObserveStage(string, string, int, time.Duration, error) {}

var _ Collector = (*Nop)(nil)
