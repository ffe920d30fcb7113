package table

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the value stored in a Cell.
type Kind int

const (
	// KindNull marks an absent value. A null cell is distinct from an
	// empty string or a zero amount.
	KindNull Kind = iota

	// KindText holds an arbitrary string.
	KindText

	// KindNumber holds a decimal value.
	KindNumber

	// KindTime holds a timestamp.
	KindTime
)

// Cell is a single nullable value in a Table. The zero value is null.
type Cell struct {
	kind Kind
	text string
	num  decimal.Decimal
	ts   time.Time
}

// Null returns a null cell.
func Null() Cell {
	return Cell{}
}

// Text returns a text cell containing s.
func Text(s string) Cell {
	return Cell{kind: KindText, text: s}
}

// Number returns a numeric cell containing d.
func Number(d decimal.Decimal) Cell {
	return Cell{kind: KindNumber, num: d}
}

// NumberFromFloat returns a numeric cell containing f.
func NumberFromFloat(f float64) Cell {
	return Cell{kind: KindNumber, num: decimal.NewFromFloat(f)}
}

// Time returns a timestamp cell containing t.
func Time(t time.Time) Cell {
	return Cell{kind: KindTime, ts: t}
}

// Kind returns the kind of value stored in the cell.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// Text returns the string value. The second return value is false unless
// the cell is a text cell.
func (c Cell) Text() (string, bool) {
	return c.text, c.kind == KindText
}

// Number returns the decimal value. The second return value is false
// unless the cell is a numeric cell.
func (c Cell) Number() (decimal.Decimal, bool) {
	return c.num, c.kind == KindNumber
}

// Time returns the timestamp value. The second return value is false
// unless the cell is a timestamp cell.
func (c Cell) Time() (time.Time, bool) {
	return c.ts, c.kind == KindTime
}

// String renders the cell for display. Null cells render as the empty
// string; use IsNull to distinguish them from empty text.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.num.String()
	case KindTime:
		return c.ts.Format("2006-01-02 15:04:05")
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and value. Numeric
// cells compare by value, so 1.50 equals 1.5.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case KindText:
		return c.text == o.text
	case KindNumber:
		return c.num.Equal(o.num)
	case KindTime:
		return c.ts.Equal(o.ts)
	default:
		return true
	}
}
