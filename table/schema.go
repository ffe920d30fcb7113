package table

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Type declares the desired type of a column for coercion and persistence.
type Type int

const (
	// TypeText forces string values.
	TypeText Type = iota

	// TypeNumber is a floating-point numeric column.
	TypeNumber

	// TypeInteger is a nullable integer column; fractional values are
	// truncated toward zero, matching integer coercion of code columns
	// that arrive as floats from a spreadsheet.
	TypeInteger

	// TypeTime is a date or timestamp column.
	TypeTime
)

// String returns the type name as used in warnings.
func (ty Type) String() string {
	switch ty {
	case TypeText:
		return "text"
	case TypeNumber:
		return "number"
	case TypeInteger:
		return "integer"
	case TypeTime:
		return "time"
	default:
		return "unknown"
	}
}

// Schema maps column names to their declared types.
type Schema map[string]Type

// Layouts tried when coercing text to TypeTime, in order.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
	"02-01-2006",
}

// Coerce converts the declared columns of t to their schema types in
// place. Values that cannot be converted become null; columns declared in
// the schema but absent from the table are skipped. Neither case is an
// error: both are reported as warnings. Coercing an already-coerced table
// is a no-op, so Coerce is idempotent.
func Coerce(t *Table, schema Schema) []string {
	var warnings []string

	for _, name := range orderedColumns(t, schema) {
		ty := schema[name]
		col, ok := t.Column(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("column %q declared in schema but not found", name))
			continue
		}

		failed := 0
		for i := range t.rows {
			cell, ok := coerceCell(t.rows[i][col], ty)
			if !ok {
				failed++
			}
			t.rows[i][col] = cell
		}
		if failed > 0 {
			warnings = append(warnings, fmt.Sprintf("column %q: %d value(s) could not be converted to %s", name, failed, ty))
		}
	}

	return warnings
}

// Validate checks that every declared column exists and that its non-null
// cells already have the declared kind. Mismatches are returned as
// warnings; Validate never modifies the table.
func Validate(t *Table, schema Schema) []string {
	var warnings []string

	for _, name := range orderedColumns(t, schema) {
		ty := schema[name]
		col, ok := t.Column(name)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("missing required column %q", name))
			continue
		}

		mismatched := 0
		for i := range t.rows {
			cell := t.rows[i][col]
			if cell.IsNull() {
				continue
			}
			if cell.Kind() != kindFor(ty) {
				mismatched++
			}
		}
		if mismatched > 0 {
			warnings = append(warnings, fmt.Sprintf("column %q: %d value(s) do not match declared type %s", name, mismatched, ty))
		}
	}

	return warnings
}

// orderedColumns returns the schema's columns in table order, with
// declared-but-absent columns appended alphabetically, so warning output
// is deterministic.
func orderedColumns(t *Table, schema Schema) []string {
	ordered := make([]string, 0, len(schema))
	for _, c := range t.cols {
		if _, ok := schema[c]; ok {
			ordered = append(ordered, c)
		}
	}
	var absent []string
	for c := range schema {
		if !t.HasColumn(c) {
			absent = append(absent, c)
		}
	}
	slices.Sort(absent)
	return append(ordered, absent...)
}

func kindFor(ty Type) Kind {
	switch ty {
	case TypeText:
		return KindText
	case TypeNumber, TypeInteger:
		return KindNumber
	case TypeTime:
		return KindTime
	default:
		return KindNull
	}
}

// coerceCell converts one cell to the declared type. The second return
// value is false when a non-null value had to be discarded.
func coerceCell(c Cell, ty Type) (Cell, bool) {
	if c.IsNull() {
		return c, true
	}

	switch ty {
	case TypeText:
		if c.Kind() == KindText {
			return c, true
		}
		return Text(c.String()), true

	case TypeNumber, TypeInteger:
		var d decimal.Decimal
		switch c.Kind() {
		case KindNumber:
			d, _ = c.Number()
		case KindText:
			s, _ := c.Text()
			parsed, err := decimal.NewFromString(strings.TrimSpace(s))
			if err != nil {
				return Null(), false
			}
			d = parsed
		default:
			return Null(), false
		}
		if ty == TypeInteger {
			d = d.Truncate(0)
		}
		return Number(d), true

	case TypeTime:
		switch c.Kind() {
		case KindTime:
			return c, true
		case KindText:
			s, _ := c.Text()
			s = strings.TrimSpace(s)
			for _, layout := range timeLayouts {
				if ts, err := time.Parse(layout, s); err == nil {
					return Time(ts), true
				}
			}
			return Null(), false
		default:
			return Null(), false
		}

	default:
		return c, true
	}
}
