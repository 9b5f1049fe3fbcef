package core

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the declared value kind of a column.
type Kind uint8

const (
	// Float columns hold float64 values; NaN marks a missing entry.
	Float Kind = iota
	// Int columns hold int64 values and are never missing.
	Int
	// String columns hold categorical text with a per-row missing mask.
	String
	// Bool columns hold flags and are never missing.
	Bool
	// Mixed columns hold float64, string or nil (missing) values.
	Mixed
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Mixed:
		return "mixed"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsNumeric reports whether values of this kind take part in numeric operations.
func (k Kind) IsNumeric() bool { return k == Float || k == Int }

// Column is an immutable named sequence of values of a single kind.
// Operations that change values return a new Column.
type Column struct {
	name string
	kind Kind

	floats []float64
	ints   []int64
	strs   []string
	null   []bool // String only, nil when nothing is missing
	bools  []bool
	mixed  []any
}

// NewFloat creates a Float column. The slice is copied.
func NewFloat(name string, values []float64) *Column {
	return &Column{name: name, kind: Float, floats: append([]float64(nil), values...)}
}

// NewInt creates an Int column. The slice is copied.
func NewInt(name string, values []int64) *Column {
	return &Column{name: name, kind: Int, ints: append([]int64(nil), values...)}
}

// NewString creates a String column with no missing entries.
func NewString(name string, values []string) *Column {
	return &Column{name: name, kind: String, strs: append([]string(nil), values...)}
}

// NewStringNull creates a String column where null[i] marks row i as missing.
func NewStringNull(name string, values []string, null []bool) (*Column, error) {
	if len(null) != len(values) {
		return nil, fmt.Errorf("%w: column %q has %d values but %d null flags", ErrRange, name, len(values), len(null))
	}
	c := NewString(name, values)
	for _, n := range null {
		if n {
			c.null = append([]bool(nil), null...)
			break
		}
	}
	return c, nil
}

// NewBool creates a Bool column.
func NewBool(name string, values []bool) *Column {
	return &Column{name: name, kind: Bool, bools: append([]bool(nil), values...)}
}

// NewMixed creates a Mixed column. Accepted values are float64, string and nil.
func NewMixed(name string, values []any) (*Column, error) {
	out := make([]any, len(values))
	for i, v := range values {
		switch v := v.(type) {
		case nil, string:
			out[i] = v
		case float64:
			if math.IsNaN(v) {
				out[i] = nil
			} else {
				out[i] = v
			}
		default:
			return nil, fmt.Errorf("%w: column %q row %d holds unsupported value of type %T", ErrType, name, i, v)
		}
	}
	return &Column{name: name, kind: Mixed, mixed: out}, nil
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the declared kind.
func (c *Column) Kind() Kind { return c.kind }

// IsNumeric reports whether the column is Float or Int.
func (c *Column) IsNumeric() bool { return c.kind.IsNumeric() }

// Len returns the number of rows.
func (c *Column) Len() int {
	switch c.kind {
	case Float:
		return len(c.floats)
	case Int:
		return len(c.ints)
	case String:
		return len(c.strs)
	case Bool:
		return len(c.bools)
	default:
		return len(c.mixed)
	}
}

// IsMissing reports whether row i holds no value.
func (c *Column) IsMissing(i int) bool {
	switch c.kind {
	case Float:
		return math.IsNaN(c.floats[i])
	case String:
		return c.null != nil && c.null[i]
	case Mixed:
		return c.mixed[i] == nil
	default:
		return false
	}
}

// Count returns the number of non-missing rows.
func (c *Column) Count() int {
	n := 0
	for i := range c.Len() {
		if !c.IsMissing(i) {
			n++
		}
	}
	return n
}

// Value returns row i as float64, int64, string, bool, or nil when missing.
func (c *Column) Value(i int) any {
	if c.IsMissing(i) {
		return nil
	}
	switch c.kind {
	case Float:
		return c.floats[i]
	case Int:
		return c.ints[i]
	case String:
		return c.strs[i]
	case Bool:
		return c.bools[i]
	default:
		return c.mixed[i]
	}
}

// Float64s returns a copy of a numeric column as float64 values, NaN for missing.
func (c *Column) Float64s() ([]float64, error) {
	switch c.kind {
	case Float:
		return append([]float64(nil), c.floats...), nil
	case Int:
		out := make([]float64, len(c.ints))
		for i, v := range c.ints {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: column %q is %s, not numeric", ErrType, c.name, c.kind)
	}
}

// Bools returns a copy of a Bool column.
func (c *Column) Bools() ([]bool, error) {
	if c.kind != Bool {
		return nil, fmt.Errorf("%w: column %q is %s, not bool", ErrType, c.name, c.kind)
	}
	return append([]bool(nil), c.bools...), nil
}

// Format renders row i as text. Missing rows render as the empty string.
func (c *Column) Format(i int) string {
	switch v := c.Value(i).(type) {
	case nil:
		return ""
	case float64:
		return FormatFloat(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Rename returns the same values under a new name.
func (c *Column) Rename(name string) *Column {
	out := c.Clone()
	out.name = name
	return out
}

// Clone returns a deep copy.
func (c *Column) Clone() *Column {
	return &Column{
		name:   c.name,
		kind:   c.kind,
		floats: cloneSlice(c.floats),
		ints:   cloneSlice(c.ints),
		strs:   cloneSlice(c.strs),
		null:   cloneSlice(c.null),
		bools:  cloneSlice(c.bools),
		mixed:  cloneSlice(c.mixed),
	}
}

// Take returns the rows at the given positions, in order.
func (c *Column) Take(rows []int) *Column {
	out := &Column{name: c.name, kind: c.kind}
	switch c.kind {
	case Float:
		out.floats = takeSlice(c.floats, rows)
	case Int:
		out.ints = takeSlice(c.ints, rows)
	case String:
		out.strs = takeSlice(c.strs, rows)
		if c.null != nil {
			out.null = takeSlice(c.null, rows)
		}
	case Bool:
		out.bools = takeSlice(c.bools, rows)
	default:
		out.mixed = takeSlice(c.mixed, rows)
	}
	return out
}

// FillMissing replaces missing rows with v. Float and Mixed columns accept a
// numeric v, String and Mixed columns accept a string v. Columns that cannot
// be missing are returned unchanged.
func (c *Column) FillMissing(v any) (*Column, error) {
	out := c.Clone()
	switch c.kind {
	case Float:
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: cannot fill float column %q with %T", ErrType, c.name, v)
		}
		for i, x := range out.floats {
			if math.IsNaN(x) {
				out.floats[i] = f
			}
		}
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: cannot fill string column %q with %T", ErrType, c.name, v)
		}
		for i := range out.strs {
			if out.null != nil && out.null[i] {
				out.strs[i] = s
			}
		}
		out.null = nil
	case Mixed:
		fill := v
		if f, ok := toFloat(v); ok {
			fill = f
		} else if _, ok := v.(string); !ok {
			return nil, fmt.Errorf("%w: cannot fill mixed column %q with %T", ErrType, c.name, v)
		}
		for i, x := range out.mixed {
			if x == nil {
				out.mixed[i] = fill
			}
		}
	}
	return out, nil
}

// FormatFloat renders integral values without a fraction and everything else
// in the shortest decimal form.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toFloat(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}

func takeSlice[T any](s []T, rows []int) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = s[r]
	}
	return out
}
