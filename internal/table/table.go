// Package table holds feature rows as an ordered, column-addressable table.
package table

import (
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// Reserved column names.
const (
	GeometryColumn = "geometry"
	SourceColumn   = "source"
)

// Row is one feature: a value per table column, in column order.
type Row []any

// Table is an ordered set of named columns over a list of rows. Methods that
// change shape return a new Table; the receiver is never modified.
type Table struct {
	columns []string
	index   map[string]int
	rows    []Row
}

// New creates an empty table with the given columns. Duplicate names are
// collapsed to their first occurrence.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Has reports whether the table has the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// Append adds a row given as a column → value map. Keys that are not
// columns of the table are an error; missing columns are nil.
func (t *Table) Append(values map[string]any) error {
	row := make(Row, len(t.columns))
	for k, v := range values {
		i, ok := t.index[k]
		if !ok {
			return eris.Errorf("table: unknown column %q", k)
		}
		row[i] = v
	}
	t.rows = append(t.rows, row)
	return nil
}

// Value returns the value of column in row i, or nil when the column does
// not exist.
func (t *Table) Value(i int, column string) any {
	c, ok := t.index[column]
	if !ok {
		return nil
	}
	return t.rows[i][c]
}

// Row returns a copy of row i in column order.
func (t *Table) Row(i int) Row {
	out := make(Row, len(t.columns))
	copy(out, t.rows[i])
	return out
}

// Column returns a copy of every value of the named column, or nil when the
// column does not exist.
func (t *Table) Column(column string) []any {
	c, ok := t.index[column]
	if !ok {
		return nil
	}
	out := make([]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out
}

// Geometry returns the geometry of row i, or nil.
func (t *Table) Geometry(i int) geom.T {
	g, _ := t.Value(i, GeometryColumn).(geom.T)
	return g
}

// Spatial reports whether any row carries a non-nil geometry. A table
// without one is a plain attribute table.
func (t *Table) Spatial() bool {
	for i := range t.rows {
		if t.Geometry(i) != nil {
			return true
		}
	}
	return false
}

// Clone returns a copy of the table. Cell values are shared.
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	out.rows = make([]Row, len(t.rows))
	for i, r := range t.rows {
		out.rows[i] = append(Row(nil), r...)
	}
	return out
}
