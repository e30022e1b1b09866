package table

import (
	"strconv"
	"strings"
	"time"
)

// Logical column names downstream code addresses after normalization.
// They follow the English headers of the JSDA reference-statistics file.
const (
	ColDate          = "Date"
	ColIssueType     = "Issue Type"
	ColCode          = "Code"
	ColIssues        = "Issues"
	ColDueDate       = "Due Date"
	ColCouponRate    = "Coupon Rate"
	ColCompoundYield = "Average Compound Yield"
	ColSimpleYield   = "Average Simple Yield"
	ColPrice         = "Average Price"
)

// Table is a flat string table whose columns are addressable by name.
// After normalization the names of recognized columns are the Col*
// constants; unrecognized columns keep their original (or generated
// positional) names and are never dropped.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of the named column, or false if absent.
func (t *Table) Index(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the raw cell value, or "" when the column is absent or
// the row is too short (source rows may be ragged).
func (t *Table) Cell(row int, name string) string {
	i, ok := t.Index(name)
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// Float parses the cell as a floating-point number. A missing or
// malformed cell yields nil, never an error: a single bad field must
// not take down the record, let alone the table.
func (t *Table) Float(row int, name string) *float64 {
	s := cleanNumeric(t.Cell(row, name))
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Date8 parses the cell as an 8-digit YYYYMMDD date. Values that arrive
// as floats ("20300101.0" after spreadsheet round-trips) are coerced to
// their integer form first. Malformed or out-of-range dates yield nil.
func (t *Table) Date8(row int, name string) *time.Time {
	s := CoerceDate8(t.Cell(row, name))
	if s == "" {
		return nil
	}
	d, err := time.Parse("20060102", s)
	if err != nil {
		return nil
	}
	return &d
}

// CoerceDate8 reduces a raw maturity value to an 8-digit numeric string,
// or "" when it cannot be one.
func CoerceDate8(raw string) string {
	s := cleanNumeric(raw)
	if s == "" {
		return ""
	}
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f != float64(int64(f)) {
			return ""
		}
		s = strconv.FormatInt(int64(f), 10)
	}
	if len(s) != 8 {
		return ""
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return s
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "-" {
		return ""
	}
	return s
}
