package trialbalance

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"

	"github.com/mverbeek/saldo/account"
	"github.com/mverbeek/saldo/table"
)

// balanceDimension tags the balance-sheet rows in the source data
// (Code0). Only these rows participate in profit synthesis.
const balanceDimension = "BAS"

// profitGroup is the reporting group assigned to synthetic profit rows
// so downstream classification treats them as Passiva.
const profitGroup = "060"

// profitKey identifies one (period, entity) aggregation group.
type profitKey struct {
	periodKey string
	entity    string
}

// SynthesizeProfit aggregates the balance-sheet rows of the fact table
// per (period, entity) and returns one synthetic "current-year profit"
// row per group, with the same columns as facts. Each row carries the
// reserved profit account code, the balance-sheet dimension, the Passiva
// reporting group, Value = -sum and DisplayValue = +sum of the group's
// raw values. The negated value closes the balance: once the profit row
// is appended, the raw balance-sheet values of every entity and period
// sum to zero, while the display value presents the profit with its
// natural sign.
//
// Groups are emitted in sorted (entity, period) order so output is
// deterministic; nothing downstream relies on row order.
func SynthesizeProfit(facts *table.Table) (*table.Table, error) {
	sums := make(map[profitKey]decimal.Decimal)
	ends := make(map[profitKey]time.Time)

	for i := 0; i < facts.Len(); i++ {
		if dim, _ := facts.Cell(i, ColDimension).Text(); dim != balanceDimension {
			continue
		}
		value, ok := facts.Cell(i, ColValue).Number()
		if !ok {
			continue
		}

		periodKey, _ := facts.Cell(i, ColPeriodKey).Text()
		entity, _ := facts.Cell(i, ColEntity).Text()
		key := profitKey{periodKey: periodKey, entity: entity}

		sums[key] = sums[key].Add(value)
		if end, ok := facts.Cell(i, ColPeriodEnd).Time(); ok {
			ends[key] = end
		}
	}

	keys := make([]profitKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b profitKey) int {
		if a.entity != b.entity {
			if a.entity < b.entity {
				return -1
			}
			return 1
		}
		if a.periodKey < b.periodKey {
			return -1
		}
		if a.periodKey > b.periodKey {
			return 1
		}
		return 0
	})

	profit := table.New(facts.Columns()...)
	for _, k := range keys {
		sum := sums[k]
		row := map[string]table.Cell{
			ColAccount:        table.Text(account.ProfitCode),
			ColEntity:         table.Text(k.entity),
			ColCostCenterCode: table.Null(),
			ColCostCenterName: table.Null(),
			ColDimension:      table.Text(balanceDimension),
			ColGroup:          table.Text(profitGroup),
			ColPeriodKey:      table.Text(k.periodKey),
			ColPeriodEnd:      table.Time(ends[k]),
			ColValue:          table.Number(sum.Neg()),
			ColDisplayValue:   table.Number(sum),
		}
		cells := make([]table.Cell, 0, len(profit.Columns()))
		for _, c := range profit.Columns() {
			cells = append(cells, row[c])
		}
		if err := profit.Append(cells...); err != nil {
			return nil, err
		}
	}

	return profit, nil
}
