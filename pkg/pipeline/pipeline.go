// Package pipeline chains dataprep stages into a fit/transform sequence.
//
// A Pipeline is an immutable description of named steps. Fitting it yields a
// Fitted value holding the state each step learned; the Fitted value is what
// transforms new data, so learned parameters are never attached to the
// stages themselves and a Fitted pipeline is safe to share between goroutines.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/internal/logging"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/internal/metrics"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// ErrInvalidStep is returned for steps with an empty, duplicate or nil definition.
var ErrInvalidStep = errors.New("invalid pipeline step")

// Stage is the fit/transform contract every step implements.
type Stage interface {
	Fit(t *core.Table) (any, error)
	Transform(t *core.Table, state any) (*core.Table, error)
}

// Step is a named stage.
type Step struct {
	Name  string
	Stage Stage
}

// Pipeline chains multiple stages.
type Pipeline struct {
	steps   []Step
	logger  *slog.Logger
	metrics metrics.Collector
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for step progress. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics sets the stage metrics collector. Defaults to metrics.NewNop().
func WithMetrics(m metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New builds a pipeline. Step names must be non-empty and unique.
func New(steps []Step, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{logger: logging.NewNop(), metrics: metrics.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	seen := make(map[string]bool, len(steps))
	for i, s := range steps {
		switch {
		case s.Name == "":
			return nil, fmt.Errorf("%w: step %d has no name", ErrInvalidStep, i)
		case seen[s.Name]:
			return nil, fmt.Errorf("%w: duplicate step name %q", ErrInvalidStep, s.Name)
		case s.Stage == nil:
			return nil, fmt.Errorf("%w: step %q has no stage", ErrInvalidStep, s.Name)
		}
		seen[s.Name] = true
	}
	p.steps = append([]Step(nil), steps...)
	return p, nil
}

// Steps returns the step names in order.
func (p *Pipeline) Steps() []string {
	out := make([]string, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Name
	}
	return out
}

// FitTransform fits every step on the output of the previous one and returns
// the learned states together with the final table. The first failing step
// aborts the run.
func (p *Pipeline) FitTransform(t *core.Table) (*Fitted, *core.Table, error) {
	states := make([]any, len(p.steps))
	cur := t
	for i, s := range p.steps {
		start := time.Now()
		state, err := s.Stage.Fit(cur)
		var next *core.Table
		if err == nil {
			next, err = s.Stage.Transform(cur, state)
		}
		if err := p.observe(s.Name, "fit_transform", next, start, err); err != nil {
			return nil, nil, err
		}
		states[i] = state
		cur = next
	}
	return &Fitted{p: p, states: states}, cur, nil
}

// Fit is FitTransform without the final table.
func (p *Pipeline) Fit(t *core.Table) (*Fitted, error) {
	f, _, err := p.FitTransform(t)
	return f, err
}

func (p *Pipeline) observe(step, phase string, out *core.Table, start time.Time, err error) error {
	rows := 0
	if out != nil {
		rows = out.NumRows()
	}
	elapsed := time.Since(start)
	p.metrics.ObserveStage(step, phase, rows, elapsed, err)
	if err != nil {
		p.logger.Error("pipeline step failed", "step", step, "phase", phase, "error", err)
		return fmt.Errorf("step %q: %w", step, err)
	}
	p.logger.Debug("pipeline step done", "step", step, "phase", phase, "rows", rows, "cols", out.NumCols(), "elapsed", elapsed)
	return nil
}

// Fitted is a pipeline together with the state each of its steps learned.
type Fitted struct {
	p      *Pipeline
	states []any
}

// Pipeline returns the pipeline the states belong to.
func (f *Fitted) Pipeline() *Pipeline { return f.p }

// State returns a copy of the state learned by the named step. Stateless
// steps have a nil state. Changing the copy does not affect f.
func (f *Fitted) State(step string) (any, bool) {
	for i, s := range f.p.steps {
		if s.Name != step {
			continue
		}
		sd, ok := s.Stage.(stateDecoder)
		if !ok || f.states[i] == nil {
			return f.states[i], true
		}
		raw, err := msgpack.Marshal(f.states[i])
		if err != nil {
			return nil, false
		}
		v, err := decodeState(sd, raw)
		if err != nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

// Transform runs every step's Transform in order with the learned states.
func (f *Fitted) Transform(t *core.Table) (*core.Table, error) {
	cur := t
	for i, s := range f.p.steps {
		start := time.Now()
		next, err := s.Stage.Transform(cur, f.states[i])
		if err := f.p.observe(s.Name, "transform", next, start, err); err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
