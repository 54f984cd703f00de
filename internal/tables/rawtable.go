// Package tables turns the three position-independent, case-insensitive
// raw tables of §6.1 (calendar, employee, demand) into the strongly
// typed rows consumed by internal/normalize. This is the boundary where
// the "NaN in numeric quota columns is replaced by 0 with a warning"
// and "required columns must be present" rules of §4.1 step 1 live.
package tables

import "strings"

// RawTable is a generic, column-name-addressed table: the shape a
// CSV reader or a database row-scan collaborator would hand the core.
// Cell values are strings; an empty string or "nan" (any case) marks a
// missing numeric value.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex resolves a column name case-insensitively. ok is false if
// the column is absent.
func (t RawTable) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i, true
		}
	}
	return -1, false
}

// Cell returns the raw string value of column col in row r, or "" if
// the row is short (defensive against ragged input).
func (t RawTable) Cell(r, col int) string {
	if col < 0 || col >= len(t.Rows[r]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[r][col])
}

func isNaN(s string) bool {
	return s == "" || strings.EqualFold(s, "nan")
}

// requireColumns checks that every name in names is present, returning
// the resolved indices, or the name of the first missing column with
// ok false.
func requireColumns(t RawTable, names []string) (map[string]int, string, bool) {
	idx := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := t.ColumnIndex(n)
		if !ok {
			return nil, n, false
		}
		idx[n] = i
	}
	return idx, "", true
}
