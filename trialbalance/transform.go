package trialbalance

import (
	"context"
	"fmt"

	"github.com/mverbeek/saldo/account"
	"github.com/mverbeek/saldo/table"
	"github.com/mverbeek/saldo/telemetry"
)

// Source column headers of the wide trial-balance export.
const (
	ColAccount        = "CodeGrootboekrekening"
	ColEntity         = "NaamAdministratie"
	ColCostCenterCode = "CodeRelatiekostenplaats"
	ColCostCenterName = "NaamRelatiekostenplaats"

	// srcDimension and srcGroup are renamed to the short Code0/Code1
	// helper names during the transform, as the reporting model expects.
	srcDimension = "CodeDimensietype"
	srcGroup     = "CodeRapportagestructuurgroep1"
)

// Helper column names used between reshape and the final projection.
const (
	ColDimension = "Code0"
	ColGroup     = "Code1"
)

// ColDisplayValue holds the sign-corrected presentation value.
const ColDisplayValue = "DisplayValue"

// FactTable is the name of the persisted fact table.
const FactTable = "fct_TrialBalances"

// identityColumns are carried unchanged from the wide table into every
// fact row. Their absence is fatal: it means the workbook layout is not
// a trial-balance export.
var identityColumns = []string{
	ColAccount,
	ColEntity,
	ColCostCenterCode,
	ColCostCenterName,
	srcDimension,
	srcGroup,
}

// Schema declares the persisted fact-table types. The cost-center name
// is forced to text even when the column is entirely null, so the store
// does not guess an integer type for it.
var Schema = table.Schema{
	ColAccount:        table.TypeText,
	ColEntity:         table.TypeText,
	ColCostCenterCode: table.TypeInteger,
	ColCostCenterName: table.TypeText,
	ColValue:          table.TypeNumber,
	ColPeriodKey:      table.TypeText,
	ColPeriodEnd:      table.TypeTime,
	ColDisplayValue:   table.TypeNumber,
}

// Result is the outcome of a trial-balance transform.
type Result struct {
	// Facts is the long fact table, ready to persist.
	Facts *table.Table

	// Periods are the recognized period columns, in workbook order.
	Periods []Period

	// SourceRows is the number of wide rows read.
	SourceRows int

	// ProfitRows is the number of synthesized profit rows appended.
	ProfitRows int

	// Warnings are non-fatal findings (schema coercion fallout and
	// type mismatches). The transform succeeded despite them.
	Warnings []string
}

// Transform runs the full trial-balance transformation on a wide source
// table:
//
//  1. recognize period columns and verify the identity columns
//  2. unpivot to long form, dropping null values
//  3. normalize the reporting-group code to three digits
//  4. derive the sign-corrected display value per row
//  5. synthesize and append profit rows per (entity, period)
//  6. drop the dimension helper columns, pad account codes
//  7. coerce and validate the persisted schema
//
// Rows whose reporting group has no category keep a null display value
// but are not removed; they are excluded from sign-corrected reports
// only.
func Transform(ctx context.Context, src *table.Table) (*Result, error) {
	tel := telemetry.FromContext(ctx)

	periods := DetectPeriods(src.Columns())
	if len(periods) == 0 {
		return nil, fmt.Errorf("no period columns recognized in %d column(s)", len(src.Columns()))
	}

	timer := tel.Start("reshape")
	facts, err := Reshape(src, identityColumns, periods)
	timer.End()
	if err != nil {
		return nil, err
	}

	facts.Rename(srcDimension, ColDimension)
	facts.Rename(srcGroup, ColGroup)
	normalizeGroupCodes(facts)

	timer = tel.Start("display values")
	addDisplayValues(facts)
	timer.End()

	timer = tel.Start("profit synthesis")
	profit, err := SynthesizeProfit(facts)
	timer.End()
	if err != nil {
		return nil, err
	}
	if err := facts.AppendTable(profit); err != nil {
		return nil, err
	}

	facts.Drop(ColDimension, ColGroup)
	padAccountCodes(facts)

	timer = tel.Start("schema")
	warnings := table.Coerce(facts, Schema)
	warnings = append(warnings, table.Validate(facts, Schema)...)
	timer.End()

	return &Result{
		Facts:      facts,
		Periods:    periods,
		SourceRows: src.Len(),
		ProfitRows: profit.Len(),
		Warnings:   warnings,
	}, nil
}

// normalizeGroupCodes rewrites the reporting-group column to three-digit
// zero-padded strings, so workbook values like the number 10 classify as
// group "010". Non-numeric text is left untouched; it will simply not
// match any category.
func normalizeGroupCodes(facts *table.Table) {
	for i := 0; i < facts.Len(); i++ {
		cell := facts.Cell(i, ColGroup)
		if d, ok := cell.Number(); ok {
			facts.Set(i, ColGroup, table.Text(account.PadWidth(d.Truncate(0).String(), 3)))
			continue
		}
		if s, ok := cell.Text(); ok {
			facts.Set(i, ColGroup, table.Text(account.PadWidth(s, 3)))
		}
	}
}

// addDisplayValues appends the DisplayValue column, derived row-wise
// from the raw value and the reporting-group category. Rows without a
// category, or whose value is not numeric, get a null display value.
func addDisplayValues(facts *table.Table) {
	facts.AddColumn(ColDisplayValue, table.Null())
	for i := 0; i < facts.Len(); i++ {
		group, _ := facts.Cell(i, ColGroup).Text()
		value, ok := facts.Cell(i, ColValue).Number()
		if !ok {
			continue
		}
		if display, ok := DisplayValue(value, Classify(group)); ok {
			facts.Set(i, ColDisplayValue, table.Number(display))
		}
	}
}

// padAccountCodes normalizes the account-code column to the canonical
// four-digit width.
func padAccountCodes(facts *table.Table) {
	for i := 0; i < facts.Len(); i++ {
		cell := facts.Cell(i, ColAccount)
		switch cell.Kind() {
		case table.KindText:
			s, _ := cell.Text()
			facts.Set(i, ColAccount, table.Text(account.Pad(s)))
		case table.KindNumber:
			d, _ := cell.Number()
			facts.Set(i, ColAccount, table.Text(account.Pad(d.Truncate(0).String())))
		}
	}
}
