package trialbalance

import "github.com/shopspring/decimal"

// Category buckets an account's reporting group into one of the four
// statement categories. Accounts outside every set carry CategoryNone
// and are excluded from sign-corrected reporting, but stay in the fact
// table.
type Category int

const (
	CategoryNone Category = iota
	CategoryActiva
	CategoryPassiva
	CategoryGrossMargin
	CategoryExpenses
)

// String returns the category label used in reports.
func (c Category) String() string {
	switch c {
	case CategoryActiva:
		return "Activa"
	case CategoryPassiva:
		return "Passiva"
	case CategoryGrossMargin:
		return "Gross Margin"
	case CategoryExpenses:
		return "Expenses"
	default:
		return "None"
	}
}

// categoryByGroup is the closed mapping from reporting-group code
// (Code1) to category. Exact string equality only; the enumeration
// encodes the fiscal reporting structure and is not a runtime setting.
var categoryByGroup = map[string]Category{
	"000": CategoryActiva,
	"010": CategoryActiva,
	"020": CategoryActiva,
	"030": CategoryActiva,
	"040": CategoryActiva,
	"050": CategoryActiva,

	"060": CategoryPassiva,
	"065": CategoryPassiva,
	"070": CategoryPassiva,
	"080": CategoryPassiva,

	"500": CategoryGrossMargin,
	"510": CategoryGrossMargin,

	"520": CategoryExpenses,
	"530": CategoryExpenses,
	"540": CategoryExpenses,
	"550": CategoryExpenses,
}

// Classify maps a reporting-group code to its category. Unrecognized
// codes yield CategoryNone; that is a data property, not an error.
func Classify(group string) Category {
	return categoryByGroup[group]
}

// DisplayValue derives the sign-corrected presentation value from a raw
// ledger value. Activa keep their sign; Passiva, Gross Margin and
// Expenses are negated. For CategoryNone the second return value is
// false and the display value is undefined.
func DisplayValue(value decimal.Decimal, category Category) (decimal.Decimal, bool) {
	switch category {
	case CategoryActiva:
		return value, true
	case CategoryPassiva, CategoryGrossMargin, CategoryExpenses:
		return value.Neg(), true
	default:
		return decimal.Decimal{}, false
	}
}
