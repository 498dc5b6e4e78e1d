// Package table holds the uniform tabular structure every loaded artifact is
// normalized into: ordered columns keyed by a plain or tuple Key, with a
// uniform row count. Tables are immutable after construction.
package table

import (
	"resultscope/internal/errs"
)

// Column is one named, ordered column of values.
type Column struct {
	Key    Key
	Values []any
}

// Table is an immutable column-ordered table.
type Table struct {
	keys  []Key
	index map[Key]int
	cols  [][]any
	rows  int
}

// New builds a table from columns in the given order. All columns must have
// the same length and distinct keys; otherwise it fails with errs.ErrShape.
// Column slices are copied.
func New(cols []Column) (*Table, error) {
	t := &Table{
		keys:  make([]Key, 0, len(cols)),
		index: make(map[Key]int, len(cols)),
		cols:  make([][]any, 0, len(cols)),
	}
	for i, c := range cols {
		if _, dup := t.index[c.Key]; dup {
			return nil, errs.Shape("duplicate column %s", c.Key)
		}
		if i == 0 {
			t.rows = len(c.Values)
		} else if len(c.Values) != t.rows {
			return nil, errs.Shape("column %s has %d rows, want %d (from column %s)",
				c.Key, len(c.Values), t.rows, cols[0].Key)
		}
		t.index[c.Key] = len(t.keys)
		t.keys = append(t.keys, c.Key)
		t.cols = append(t.cols, append([]any(nil), c.Values...))
	}
	return t, nil
}

// MustNew is New for statically known input; it panics on error.
func MustNew(cols []Column) *Table {
	t, err := New(cols)
	if err != nil {
		panic(err)
	}
	return t
}

// Keys returns the column keys in order.
func (t *Table) Keys() []Key { return append([]Key(nil), t.keys...) }

// Len returns the row count.
func (t *Table) Len() int { return t.rows }

// Width returns the column count.
func (t *Table) Width() int { return len(t.keys) }

// Column returns a copy of the values of column k.
func (t *Table) Column(k Key) ([]any, bool) {
	i, ok := t.index[k]
	if !ok {
		return nil, false
	}
	return append([]any(nil), t.cols[i]...), true
}

// Value returns the cell at (row, k). ok is false if either is out of range.
func (t *Table) Value(row int, k Key) (v any, ok bool) {
	i, found := t.index[k]
	if !found || row < 0 || row >= t.rows {
		return nil, false
	}
	return t.cols[i][row], true
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []any {
	if i < 0 || i >= t.rows {
		return nil
	}
	out := make([]any, len(t.cols))
	for c := range t.cols {
		out[c] = t.cols[c][i]
	}
	return out
}

// Columns returns the table as a column list, suitable for New.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.keys))
	for i, k := range t.keys {
		out[i] = Column{Key: k, Values: append([]any(nil), t.cols[i]...)}
	}
	return out
}

// Concat joins tables side by side. Row counts must agree. When a key occurs
// in more than one table the first occurrence wins and later ones are dropped.
func Concat(tables ...*Table) (*Table, error) {
	var cols []Column
	seen := make(map[Key]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns() {
			if seen[c.Key] {
				continue
			}
			seen[c.Key] = true
			cols = append(cols, c)
		}
	}
	return New(cols)
}
