package core

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Table is an ordered set of equally long, uniquely named columns with an
// optional row key column. Tables are never modified in place: every
// operation returns a new Table that may share unchanged columns with its
// source, which is safe because columns are immutable.
type Table struct {
	cols  []*Column
	pos   map[string]int
	index *Column
	rows  int
}

// NewTable builds a table from columns. Names must be unique and lengths equal.
func NewTable(cols ...*Column) (*Table, error) {
	t := &Table{pos: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := t.pos[c.Name()]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrConflict, c.Name())
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrRange, c.Name(), c.Len(), t.rows)
		}
		t.pos[c.Name()] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// MustTable is NewTable that panics on error. Intended for fixtures.
func MustTable(cols ...*Column) *Table {
	t, err := NewTable(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of data columns. The index is not counted.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the data column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name()
	}
	return out
}

// Columns returns the data columns in order.
func (t *Table) Columns() []*Column { return append([]*Column(nil), t.cols...) }

// Has reports whether a data column with this name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.pos[name]
	return ok
}

// Column resolves a data column by name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.pos[name]
	if !ok {
		return nil, fmt.Errorf("%w: column %q not found", ErrKey, name)
	}
	return t.cols[i], nil
}

// NumericNames returns the names of Float and Int columns in order.
func (t *Table) NumericNames() []string {
	var out []string
	for _, c := range t.cols {
		if c.IsNumeric() {
			out = append(out, c.Name())
		}
	}
	return out
}

// Index returns the row key column, or nil when rows are keyed by position.
func (t *Table) Index() *Column { return t.index }

// SetIndex moves a data column into the row key.
func (t *Table) SetIndex(name string) (*Table, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out, err := t.Drop(name)
	if err != nil {
		return nil, err
	}
	return out.WithIndex(c)
}

// WithIndex returns a copy keyed by the given column, which is not a data column.
func (t *Table) WithIndex(idx *Column) (*Table, error) {
	if len(t.cols) > 0 && idx.Len() != t.rows {
		return nil, fmt.Errorf("%w: index %q has %d rows, want %d", ErrRange, idx.Name(), idx.Len(), t.rows)
	}
	out := t.shallow()
	out.index = idx
	out.rows = idx.Len()
	return out, nil
}

// Select returns only the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]*Column, 0, len(names))
	for _, n := range names {
		c, err := t.Column(n)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	out, err := NewTable(cols...)
	if err != nil {
		return nil, err
	}
	out.index = t.index
	out.rows = t.rows
	return out, nil
}

// WithColumn replaces the column of the same name in place, or appends it.
func (t *Table) WithColumn(c *Column) (*Table, error) {
	if (len(t.cols) > 0 || t.index != nil) && c.Len() != t.rows {
		return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrRange, c.Name(), c.Len(), t.rows)
	}
	out := t.shallow()
	if i, ok := out.pos[c.Name()]; ok {
		out.cols[i] = c
		return out, nil
	}
	out.pos[c.Name()] = len(out.cols)
	out.cols = append(out.cols, c)
	out.rows = c.Len()
	return out, nil
}

// Drop removes the named columns.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		if !t.Has(n) {
			return nil, fmt.Errorf("%w: column %q not found", ErrKey, n)
		}
		drop[n] = true
	}
	var keep []*Column
	for _, c := range t.cols {
		if !drop[c.Name()] {
			keep = append(keep, c)
		}
	}
	out, err := NewTable(keep...)
	if err != nil {
		return nil, err
	}
	out.index = t.index
	out.rows = t.rows
	return out, nil
}

// Filter keeps the rows where keep is true.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != t.rows {
		return nil, fmt.Errorf("%w: mask has %d rows, want %d", ErrRange, len(keep), t.rows)
	}
	var rows []int
	for i, k := range keep {
		if k {
			rows = append(rows, i)
		}
	}
	return t.Take(rows), nil
}

// Take returns the rows at the given positions, in order.
func (t *Table) Take(rows []int) *Table {
	out := &Table{pos: make(map[string]int, len(t.cols)), rows: len(rows)}
	for i, c := range t.cols {
		out.cols = append(out.cols, c.Take(rows))
		out.pos[c.Name()] = i
	}
	if t.index != nil {
		out.index = t.index.Take(rows)
	}
	return out
}

// Schema describes the table's data columns.
func (t *Table) Schema() Schema {
	s := Schema{Fields: make([]Field, len(t.cols))}
	for i, c := range t.cols {
		s.Fields[i] = Field{Name: c.Name(), Kind: c.Kind()}
	}
	return s
}

// String renders the table as aligned text, index first.
func (t *Table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	cols := t.cols
	if t.index != nil {
		cols = append([]*Column{t.index}, cols...)
	}
	for i, c := range cols {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c.Name())
	}
	fmt.Fprintln(w)
	for r := range t.rows {
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			if c.IsMissing(r) {
				fmt.Fprint(w, "NaN")
			} else {
				fmt.Fprint(w, c.Format(r))
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()
	return b.String()
}

func (t *Table) shallow() *Table {
	out := &Table{
		cols:  append([]*Column(nil), t.cols...),
		pos:   make(map[string]int, len(t.pos)),
		index: t.index,
		rows:  t.rows,
	}
	for k, v := range t.pos {
		out.pos[k] = v
	}
	return out
}
