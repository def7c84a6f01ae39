package table

import "github.com/twpayne/go-geom"

// Rename returns a table with columns renamed through mapping (old → new).
// Columns absent from mapping keep their name. When several columns end up
// with the same name they are merged into one column at the position of the
// first: its values win and later columns only fill nil cells.
func (t *Table) Rename(mapping map[string]string) *Table {
	targets := make([]string, len(t.columns))
	for i, c := range t.columns {
		targets[i] = c
		if to, ok := mapping[c]; ok && to != "" {
			targets[i] = to
		}
	}

	out := New(targets...)
	// sources[j] lists the input column positions feeding output column j.
	sources := make([][]int, len(out.columns))
	for i, name := range targets {
		j := out.index[name]
		sources[j] = append(sources[j], i)
	}

	out.rows = make([]Row, len(t.rows))
	for r, in := range t.rows {
		row := make(Row, len(out.columns))
		for j, src := range sources {
			for _, i := range src {
				if in[i] != nil {
					row[j] = in[i]
					break
				}
			}
		}
		out.rows[r] = row
	}
	return out
}

// WithColumn returns a table that has column, filled with value when it had
// to be added. An existing column is left untouched.
func (t *Table) WithColumn(column string, value any) *Table {
	out := t.Clone()
	if out.Has(column) {
		return out
	}
	out.index[column] = len(out.columns)
	out.columns = append(out.columns, column)
	for i := range out.rows {
		out.rows[i] = append(out.rows[i], value)
	}
	return out
}

// Select returns a table holding only the listed columns that exist, kept in
// the table's own column order.
func (t *Table) Select(columns ...string) *Table {
	want := make(map[string]bool, len(columns))
	for _, c := range columns {
		want[c] = true
	}

	var keep []int
	var names []string
	for i, c := range t.columns {
		if want[c] {
			keep = append(keep, i)
			names = append(names, c)
		}
	}

	out := New(names...)
	out.rows = make([]Row, len(t.rows))
	for r, in := range t.rows {
		row := make(Row, len(keep))
		for j, i := range keep {
			row[j] = in[i]
		}
		out.rows[r] = row
	}
	return out
}

// MapGeometry returns a table whose geometry column holds fn applied to each
// row's geometry. Tables without a geometry column are returned as a copy.
func (t *Table) MapGeometry(fn func(geom.T) geom.T) *Table {
	out := t.Clone()
	c, ok := out.index[GeometryColumn]
	if !ok {
		return out
	}
	for i := range out.rows {
		g, _ := out.rows[i][c].(geom.T)
		if g == nil {
			continue
		}
		if mapped := fn(g); mapped != nil {
			out.rows[i][c] = mapped
		} else {
			out.rows[i][c] = nil
		}
	}
	return out
}

// Concat stacks tables by column union. Columns keep their first-seen order
// across the inputs, rows keep their input order, and cells of columns a
// table lacks are nil. Nil tables are skipped.
func Concat(tables ...*Table) *Table {
	var names []string
	seen := make(map[string]bool)
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.columns {
			if !seen[c] {
				seen[c] = true
				names = append(names, c)
			}
		}
	}

	out := New(names...)
	for _, t := range tables {
		if t == nil {
			continue
		}
		pos := make([]int, len(t.columns))
		for i, c := range t.columns {
			pos[i] = out.index[c]
		}
		for _, in := range t.rows {
			row := make(Row, len(out.columns))
			for i, v := range in {
				row[pos[i]] = v
			}
			out.rows = append(out.rows, row)
		}
	}
	return out
}
