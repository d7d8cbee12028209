// Package frame holds the tabular result of one query execution.
//
// A Frame is immutable after construction: every accessor returns copies, so
// a frame served from a cache can be shared by any number of readers.
package frame

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// Frame is an ordered set of uniquely named columns over ordered rows.
type Frame struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New builds a frame. Every row must hold exactly one value per column.
// Duplicate column names get a numeric suffix (name_2, name_3, ...) so that
// names stay unique while projection order is preserved.
func New(columns []string, rows [][]any) (*Frame, error) {
	f := &Frame{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]any, len(rows)),
	}

	for i, name := range columns {
		unique := name
		for n := 2; ; n++ {
			if _, taken := f.index[unique]; !taken {
				break
			}
			unique = fmt.Sprintf("%s_%d", name, n)
		}
		f.columns[i] = unique
		f.index[unique] = i
	}

	for r, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", r, len(row), len(columns))
		}
		f.rows[r] = append([]any(nil), row...)
	}

	return f, nil
}

// Columns returns the column names in projection order.
func (f *Frame) Columns() []string {
	return append([]string(nil), f.columns...)
}

func (f *Frame) NumCols() int { return len(f.columns) }
func (f *Frame) NumRows() int { return len(f.rows) }

// ColumnIndex returns the position of name, or -1.
func (f *Frame) ColumnIndex(name string) int {
	if i, ok := f.index[name]; ok {
		return i
	}
	return -1
}

// Row returns a copy of row i.
func (f *Frame) Row(i int) []any {
	return append([]any(nil), f.rows[i]...)
}

// Value returns the cell at row r, column c.
func (f *Frame) Value(r, c int) any {
	return f.rows[r][c]
}

// Strings renders column c as strings; NULL becomes the empty string.
func (f *Frame) Strings(c int) []string {
	out := make([]string, len(f.rows))
	for r, row := range f.rows {
		if row[c] == nil {
			continue
		}
		out[r] = fmt.Sprint(row[c])
	}
	return out
}

// Float returns the cell at (r, c) as a float64 when it holds a number.
func (f *Frame) Float(r, c int) (float64, bool) {
	return ToFloat(f.rows[r][c])
}

// IsNumeric reports whether every non-NULL value of column c is a number
// and at least one is present.
func (f *Frame) IsNumeric(c int) bool {
	seen := false
	for _, row := range f.rows {
		if row[c] == nil {
			continue
		}
		if _, ok := ToFloat(row[c]); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// ToFloat converts the numeric types produced by the database backends.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case pgtype.Numeric:
		if !n.Valid {
			return 0, false
		}
		f8, err := n.Float64Value()
		if err != nil || !f8.Valid {
			return 0, false
		}
		return f8.Float64, true
	case string:
		// database/sql drivers hand numeric columns back as text.
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
