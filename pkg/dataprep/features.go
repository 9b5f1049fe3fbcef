package dataprep

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
)

// ColumnSelector keeps only the configured columns, in the configured order.
type ColumnSelector struct {
	stateless
	Columns []string
}

// NewColumnSelector creates a selector for the given columns.
func NewColumnSelector(columns ...string) *ColumnSelector {
	return &ColumnSelector{Columns: columns}
}

// Transform selects the columns. Every column must be present.
func (s *ColumnSelector) Transform(t *core.Table, _ any) (*core.Table, error) {
	return t.Select(s.Columns...)
}

// LogTransform applies log(x + offset) / log(base) to each configured column.
// A column holding any value with x + offset <= 0 is skipped entirely.
// Create it with NewLogTransform.
type LogTransform struct {
	stateless
	columns []string
	// replace overwrites the source column; otherwise a log_<base>(<col>) column is added.
	replace bool
	// base of the logarithm. Zero means natural log.
	base   float64
	offset float64
	logger *slog.Logger
}

// LogOption configures a LogTransform.
type LogOption func(*LogTransform)

// WithBase sets the logarithm base.
func WithBase(base float64) LogOption {
	return func(l *LogTransform) { l.base = base }
}

// WithOffset sets the additive offset. Defaults to 1.
func WithOffset(offset float64) LogOption {
	return func(l *LogTransform) { l.offset = offset }
}

// WithNewColumn writes results to a new column instead of replacing the source.
func WithNewColumn() LogOption {
	return func(l *LogTransform) { l.replace = false }
}

// WithLogLogger attaches a logger for skipped-column notices. Nil is silent.
func WithLogLogger(logger *slog.Logger) LogOption {
	return func(l *LogTransform) { l.logger = logger }
}

// NewLogTransform creates a natural log transform with offset 1 that replaces
// its columns in place.
func NewLogTransform(columns []string, opts ...LogOption) (*LogTransform, error) {
	l := &LogTransform{columns: append([]string(nil), columns...), replace: true, offset: 1}
	for _, opt := range opts {
		opt(l)
	}
	if l.base < 0 || l.base == 1 {
		return nil, fmt.Errorf("%w: invalid logarithm base %v", core.ErrRange, l.base)
	}
	return l, nil
}

// NewColumnName returns the name of the column written when Replace is false.
func (l *LogTransform) NewColumnName(col string) string {
	base := "e"
	if l.base != 0 {
		base = core.FormatFloat(l.base)
	}
	return fmt.Sprintf("log_%s(%s)", base, col)
}

// Transform applies the logarithm to every eligible column.
func (l *LogTransform) Transform(t *core.Table, _ any) (*core.Table, error) {
	div := 1.0
	if l.base != 0 {
		div = math.Log(l.base)
	}
	out := t
	for _, name := range l.columns {
		c, err := out.Column(name)
		if err != nil {
			return nil, err
		}
		x, err := c.Float64s()
		if err != nil {
			return nil, err
		}
		bad := false
		for _, v := range x {
			if v+l.offset <= 0 {
				bad = true
				break
			}
		}
		if bad {
			notice(l.logger, "skipping log transform of column with non-positive shifted values", "column", name, "offset", l.offset)
			continue
		}
		for i, v := range x {
			x[i] = math.Log(v+l.offset) / div
		}
		target := name
		if !l.replace {
			target = l.NewColumnName(name)
		}
		if out, err = out.WithColumn(core.NewFloat(target, x)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Operator is an arithmetic operation of ArithmeticCombiner.
type Operator string

const (
	Plus     Operator = "plus"
	Minus    Operator = "minus"
	Multiply Operator = "multiply"
	Divide   Operator = "divide"
)

// ArithmeticCombiner derives a new column from existing ones. Plus and
// Multiply fold over all columns; Minus and Divide take exactly two, in order.
type ArithmeticCombiner struct {
	stateless
	Op        Operator
	NewColumn string
	Columns   []string
}

// NewArithmeticCombiner validates the operator and operand count.
func NewArithmeticCombiner(op Operator, newColumn string, columns []string) (*ArithmeticCombiner, error) {
	switch op {
	case Plus, Multiply:
	case Minus, Divide:
		if len(columns) > 0 && len(columns) != 2 {
			return nil, fmt.Errorf("%w: operator %s takes exactly two columns, got %d", core.ErrRange, op, len(columns))
		}
	default:
		return nil, fmt.Errorf("%w: operator %q must be one of plus, minus, multiply, divide", core.ErrRange, op)
	}
	return &ArithmeticCombiner{Op: op, NewColumn: newColumn, Columns: columns}, nil
}

// Transform computes the new column. Fewer than two configured columns leave
// the table unchanged.
func (a *ArithmeticCombiner) Transform(t *core.Table, _ any) (*core.Table, error) {
	if len(a.Columns) < 2 {
		return t, nil
	}
	operands := make([][]float64, len(a.Columns))
	for i, name := range a.Columns {
		c, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if operands[i], err = c.Float64s(); err != nil {
			return nil, err
		}
	}

	n := t.NumRows()
	res := make([]float64, n)
	switch a.Op {
	case Plus:
		for _, x := range operands {
			for i, v := range x {
				res[i] += v
			}
		}
	case Minus:
		for i := range res {
			res[i] = operands[0][i] - operands[1][i]
		}
	case Multiply:
		for i := range res {
			res[i] = 1
		}
		for _, x := range operands {
			for i, v := range x {
				res[i] *= v
			}
		}
	case Divide:
		for _, v := range operands[1] {
			if v == 0 {
				return nil, fmt.Errorf("%w: column %q has a value of 0", core.ErrArithmetic, a.Columns[1])
			}
		}
		for i := range res {
			res[i] = operands[0][i] / operands[1][i]
		}
	default:
		return nil, fmt.Errorf("%w: invalid operator %q", core.ErrRange, a.Op)
	}
	return t.WithColumn(core.NewFloat(a.NewColumn, res))
}

// ScalarScaler multiplies one column by a constant factor in place.
// Create it with NewScalarScaler.
type ScalarScaler struct {
	stateless
	column string
	factor float64
}

// NewScalarScaler creates a scaler for col.
func NewScalarScaler(col string, factor float64) *ScalarScaler {
	return &ScalarScaler{column: col, factor: factor}
}

// Transform scales the column.
func (s *ScalarScaler) Transform(t *core.Table, _ any) (*core.Table, error) {
	c, err := t.Column(s.column)
	if err != nil {
		return nil, err
	}
	x, err := c.Float64s()
	if err != nil {
		return nil, err
	}
	for i := range x {
		x[i] *= s.factor
	}
	return t.WithColumn(core.NewFloat(s.column, x))
}
