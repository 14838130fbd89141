package dataset

import (
	"math"
	"strconv"
	"strings"
)

// Table is an in-memory tabular dataset: ordered column names and rows of raw string cells.
// Cells are coerced at use time; a Table never changes type information on load.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
	// Skipped counts malformed input lines dropped while reading.
	Skipped int

	index map[string]int
}

// NewTable builds a table from a header and rows. Header names are trimmed, a UTF-8 BOM on
// the first name is removed, and short rows are padded with empty cells.
func NewTable(name string, header []string, rows [][]string) *Table {
	cols := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = h
	}
	t := &Table{Name: name, Columns: cols, Rows: make([][]string, 0, len(rows))}
	for _, r := range rows {
		t.Rows = append(t.Rows, padRow(r, len(cols)))
	}
	t.reindex()
	return t
}

func padRow(r []string, n int) []string {
	if len(r) >= n {
		return r[:n]
	}
	tmp := make([]string, n)
	copy(tmp, r)
	return tmp
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	if t == nil {
		return 0, false
	}
	if t.index == nil {
		t.reindex()
	}
	i, ok := t.index[name]
	return i, ok
}

// Column returns a copy of every cell of the named column, in row order.
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, true
}

// Value returns the cell at row i of the named column, or "" when the column is absent.
func (t *Table) Value(i int, name string) string {
	idx, ok := t.ColumnIndex(name)
	if !ok || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][idx]
}

// Clone returns a deep copy; callers may filter or mutate it freely.
func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	c := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
		Skipped: t.Skipped,
	}
	for i, r := range t.Rows {
		c.Rows[i] = append([]string(nil), r...)
	}
	c.reindex()
	return c
}

// Filter returns a new table holding the rows for which keep returns true.
// Row slices are shared with the receiver.
func (t *Table) Filter(keep func(i int, row []string) bool) *Table {
	out := &Table{Name: t.Name, Columns: t.Columns, Skipped: t.Skipped, index: t.index}
	for i, r := range t.Rows {
		if keep(i, r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Where keeps the rows whose trimmed cell in column equals value.
// A missing column yields an empty table.
func (t *Table) Where(column, value string) *Table {
	idx, ok := t.ColumnIndex(column)
	return t.Filter(func(_ int, r []string) bool {
		return ok && strings.TrimSpace(r[idx]) == value
	})
}

// ParseCode coerces a cell to an integer code. Float renderings of whole numbers
// ("6.0") are accepted; empty, fractional and non-numeric cells are not.
func ParseCode(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
