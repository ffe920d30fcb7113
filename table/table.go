// Package table provides an in-memory, column-oriented table with nullable
// cells, used as the interchange format between the workbook reader, the
// transformation pipelines and the SQLite store.
//
// A Table is a fixed set of named columns and a list of rows. Cells are
// tagged values (null, text, number or timestamp); numeric cells carry
// decimals so aggregation does not accumulate float error. Schema coercion
// and validation live in schema.go.
package table

import "fmt"

// Table is a named-column table. Rows always have exactly one cell per
// column.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Cell
}

// New creates an empty table with the given columns, in order.
func New(cols ...string) *Table {
	t := &Table{
		cols:  append([]string(nil), cols...),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range t.cols {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in order. The returned slice must not
// be modified.
func (t *Table) Columns() []string { return t.cols }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Append adds a row. The number of cells must match the number of columns.
func (t *Table) Append(cells ...Cell) error {
	if len(cells) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	t.rows = append(t.rows, cells)
	return nil
}

// Row returns the cells of row i. The returned slice must not be modified;
// use Set to change a cell.
func (t *Table) Row(i int) []Cell { return t.rows[i] }

// Cell returns the cell at row i in the named column. Returns a null cell
// if the column does not exist.
func (t *Table) Cell(i int, name string) Cell {
	col, ok := t.index[name]
	if !ok {
		return Null()
	}
	return t.rows[i][col]
}

// Set replaces the cell at row i in the named column. It reports whether
// the column exists.
func (t *Table) Set(i int, name string, c Cell) bool {
	col, ok := t.index[name]
	if !ok {
		return false
	}
	t.rows[i][col] = c
	return true
}

// AddColumn appends a new column filled with the given cell. It is a no-op
// if the column already exists.
func (t *Table) AddColumn(name string, fill Cell) {
	if t.HasColumn(name) {
		return
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], fill)
	}
}

// Rename changes a column name in place. It reports whether the column
// existed.
func (t *Table) Rename(old, new string) bool {
	i, ok := t.index[old]
	if !ok {
		return false
	}
	t.cols[i] = new
	delete(t.index, old)
	t.index[new] = i
	return true
}

// Drop removes the named columns. Names that do not exist are ignored.
func (t *Table) Drop(names ...string) {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if i, ok := t.index[name]; ok {
			drop[i] = true
		}
	}
	if len(drop) == 0 {
		return
	}

	cols := make([]string, 0, len(t.cols)-len(drop))
	for i, c := range t.cols {
		if !drop[i] {
			cols = append(cols, c)
		}
	}
	for r, row := range t.rows {
		kept := make([]Cell, 0, len(cols))
		for i, cell := range row {
			if !drop[i] {
				kept = append(kept, cell)
			}
		}
		t.rows[r] = kept
	}

	t.cols = cols
	t.index = make(map[string]int, len(cols))
	for i, c := range cols {
		t.index[c] = i
	}
}

// AppendTable appends all rows of other. Both tables must have identical
// column sets; cells are matched by column name, not position.
func (t *Table) AppendTable(other *Table) error {
	if len(other.cols) != len(t.cols) {
		return fmt.Errorf("cannot append table with %d columns to table with %d columns", len(other.cols), len(t.cols))
	}
	for _, c := range other.cols {
		if !t.HasColumn(c) {
			return fmt.Errorf("cannot append table: unknown column %q", c)
		}
	}
	for i := 0; i < other.Len(); i++ {
		row := make([]Cell, len(t.cols))
		for j, c := range t.cols {
			row[j] = other.Cell(i, c)
		}
		t.rows = append(t.rows, row)
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.cols...)
	c.rows = make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		c.rows[i] = append([]Cell(nil), row...)
	}
	return c
}

// Equal reports whether two tables have the same columns, in order, and
// cell-for-cell equal rows.
func (t *Table) Equal(o *Table) bool {
	if len(t.cols) != len(o.cols) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.cols {
		if o.cols[i] != c {
			return false
		}
	}
	for i, row := range t.rows {
		for j, cell := range row {
			if !cell.Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}
