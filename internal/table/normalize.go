package table

import (
	"fmt"
	"strings"
)

// SchemaError reports a raw table that no schema variant accepts.
type SchemaError struct {
	Columns int
	Min     int
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table schema: %s (%d columns, need at least %d)", e.Reason, e.Columns, e.Min)
}

// headerNames maps the Japanese headers seen across JSDA file vintages
// onto the logical column names. Only matching headers are renamed;
// anything else passes through untouched.
var headerNames = map[string]string{
	"日付":    ColDate,
	"銘柄種別":  ColIssueType,
	"銘柄コード": ColCode,
	"銘柄名":   ColIssues,
	"償還期日":  ColDueDate,
	"利率":    ColCouponRate,
	"複利利回り": ColCompoundYield,
	"平均値複利": ColCompoundYield,
	"単利利回り": ColSimpleYield,
	"平均値単利": ColSimpleYield,
	"平均値単価": ColPrice,
}

// schemaRule is one detection variant: a predicate over the raw rows
// and an extractor that shapes them into a normalized table. Rules are
// tried in priority order; the first match wins.
type schemaRule struct {
	name  string
	match func(rows [][]string) bool
	apply func(rows [][]string) *Table
}

// The positional variants reflect the observed JSDA file widths. The
// yield column drifts with file width (6 for the narrow tab-separated
// files, 14 or 15 for the wide comma-separated ones); the name, code
// and due-date columns are stable at 1..4.
var rules = []schemaRule{
	{
		name:  "headered",
		match: hasKnownHeader,
		apply: applyHeader,
	},
	{
		name:  "positional-wide-16",
		match: func(rows [][]string) bool { return width(rows) >= 16 },
		apply: positional(15),
	},
	{
		name:  "positional-wide-15",
		match: func(rows [][]string) bool { return width(rows) >= 15 },
		apply: positional(14),
	},
	{
		name:  "positional-7",
		match: func(rows [][]string) bool { return width(rows) >= 7 },
		apply: positional(6),
	},
	{
		name:  "positional-narrow",
		match: func(rows [][]string) bool { return width(rows) >= 5 },
		apply: positional(6),
	},
}

// Normalize maps a raw table of unknown vintage onto the logical
// schema. It never mutates rows; only column addressing changes.
func Normalize(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &SchemaError{Columns: 0, Min: 5, Reason: "empty table"}
	}
	for _, r := range rules {
		if r.match(rows) {
			return r.apply(rows), nil
		}
	}
	return nil, &SchemaError{Columns: width(rows), Min: 5, Reason: "no schema variant matches"}
}

func width(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	return len(rows[0])
}

func hasKnownHeader(rows [][]string) bool {
	for _, cell := range rows[0] {
		if _, ok := headerNames[strings.TrimSpace(cell)]; ok {
			return true
		}
	}
	return false
}

func applyHeader(rows [][]string) *Table {
	header := rows[0]
	cols := make([]string, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if logical, ok := headerNames[name]; ok {
			cols[i] = logical
		} else {
			cols[i] = name
		}
	}
	return &Table{Columns: cols, Rows: rows[1:]}
}

// positional builds an extractor for headerless files: fixed indices
// for date, type, code, name, due date and coupon, with the yield
// column at the vintage-dependent index.
func positional(yieldIdx int) func(rows [][]string) *Table {
	return func(rows [][]string) *Table {
		w := width(rows)
		cols := make([]string, w)
		for i := range cols {
			cols[i] = fmt.Sprintf("col%d", i)
		}
		assign := func(i int, name string) {
			if i < w {
				cols[i] = name
			}
		}
		assign(0, ColDate)
		assign(1, ColIssueType)
		assign(2, ColCode)
		assign(3, ColIssues)
		assign(4, ColDueDate)
		assign(5, ColCouponRate)
		assign(yieldIdx, ColCompoundYield)
		return &Table{Columns: cols, Rows: rows}
	}
}
