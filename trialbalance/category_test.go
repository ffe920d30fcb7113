package trialbalance

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		group string
		want  Category
	}{
		{"000", CategoryActiva},
		{"010", CategoryActiva},
		{"020", CategoryActiva},
		{"030", CategoryActiva},
		{"040", CategoryActiva},
		{"050", CategoryActiva},
		{"060", CategoryPassiva},
		{"065", CategoryPassiva},
		{"070", CategoryPassiva},
		{"080", CategoryPassiva},
		{"500", CategoryGrossMargin},
		{"510", CategoryGrossMargin},
		{"520", CategoryExpenses},
		{"530", CategoryExpenses},
		{"540", CategoryExpenses},
		{"550", CategoryExpenses},

		// Exact string equality only.
		{"10", CategoryNone},
		{"0100", CategoryNone},
		{"999", CategoryNone},
		{"", CategoryNone},
		{"Activa", CategoryNone},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.group))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	value := decimal.NewFromFloat(123.45)

	tests := []struct {
		name     string
		category Category
		want     string
		wantOK   bool
	}{
		{"activa keeps sign", CategoryActiva, "123.45", true},
		{"passiva negates", CategoryPassiva, "-123.45", true},
		{"gross margin negates", CategoryGrossMargin, "-123.45", true},
		{"expenses negates", CategoryExpenses, "-123.45", true},
		{"none is undefined", CategoryNone, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DisplayValue(value, tt.category)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

// Display value is defined exactly for the four real categories; for
// every classified group code the derivation matches raw or negated raw.
func TestDisplayValueTotality(t *testing.T) {
	raw := decimal.NewFromInt(100)

	for group, category := range categoryByGroup {
		display, ok := DisplayValue(raw, category)
		assert.True(t, ok)

		if category == CategoryActiva {
			assert.True(t, display.Equal(raw), "group %s", group)
		} else {
			assert.True(t, display.Equal(raw.Neg()), "group %s", group)
		}
	}

	_, ok := DisplayValue(raw, Classify("does-not-exist"))
	assert.False(t, ok)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Activa", CategoryActiva.String())
	assert.Equal(t, "Passiva", CategoryPassiva.String())
	assert.Equal(t, "Gross Margin", CategoryGrossMargin.String())
	assert.Equal(t, "Expenses", CategoryExpenses.String())
	assert.Equal(t, "None", CategoryNone.String())
}
