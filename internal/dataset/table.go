package dataset

import (
	"fmt"
	"sort"
)

// Table is a column-oriented result table. Column names are fixed at
// construction and never vary across appends.
type Table struct {
	cols []string
	rows [][]float64
}

func New(cols ...string) *Table {
	c := make([]string, len(cols))
	copy(c, cols)
	return &Table{cols: c}
}

func (t *Table) Columns() []string { return t.cols }
func (t *Table) Len() int          { return len(t.rows) }

// Row returns the i-th row. The returned slice is owned by the table.
func (t *Table) Row(i int) []float64 { return t.rows[i] }

// Column extracts column i as a flat series.
func (t *Table) Column(i int) []float64 {
	out := make([]float64, len(t.rows))
	for k, r := range t.rows {
		out[k] = r[i]
	}
	return out
}

func (t *Table) Append(row ...float64) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d values, table has %d columns", len(row), len(t.cols))
	}
	r := make([]float64, len(row))
	copy(r, row)
	t.rows = append(t.rows, r)
	return nil
}

// Concat appends all rows of other. Column names must match.
func (t *Table) Concat(other *Table) error {
	if len(other.cols) != len(t.cols) {
		return fmt.Errorf("column count mismatch: %d vs %d", len(other.cols), len(t.cols))
	}
	for i, c := range other.cols {
		if c != t.cols[i] {
			return fmt.Errorf("column %d: %q vs %q", i, c, t.cols[i])
		}
	}
	t.rows = append(t.rows, other.rows...)
	return nil
}

// Sort orders rows ascending by the given column, stably. Merged sweep
// output arrives in worker-completion order; consumers that need
// q-ordered rows sort explicitly.
func (t *Table) Sort(col int) {
	sort.SliceStable(t.rows, func(i, j int) bool {
		return t.rows[i][col] < t.rows[j][col]
	})
}
