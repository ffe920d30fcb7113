// Package dump processes the transaction-ledger export: it strips the
// columns the reporting model never reads, converts posting dates from
// epoch milliseconds to timestamps, and normalizes account codes. The
// result is persisted as the "transactions" table.
package dump

import (
	"context"
	"fmt"
	"time"

	"github.com/mverbeek/saldo/account"
	"github.com/mverbeek/saldo/table"
	"github.com/mverbeek/saldo/telemetry"
)

// Table is the name of the persisted transactions table.
const Table = "transactions"

// Required source columns.
const (
	ColAccount = "CodeGrootboekrekening"
	ColDate    = "Boekdatum"
)

// droppedColumns are removed from the export before persisting. They
// duplicate information available elsewhere or belong to the bookkeeping
// system's internals.
var droppedColumns = []string{
	"Btwbedrag",
	"Boekingsstatus",
	"CodeAdministratie",
	"Code2",
	"Debet",
	"Credit",
	"Btwcode",
	"Nummer",
}

// Schema declares types for the columns the pipeline touches. The rest
// of the export is carried through as-is.
var Schema = table.Schema{
	ColAccount: table.TypeText,
	ColDate:    table.TypeTime,
}

// Result is the outcome of a dump transform.
type Result struct {
	// Transactions is the cleaned table, ready to persist.
	Transactions *table.Table

	// Warnings are non-fatal findings, such as drop-listed columns
	// that were already absent.
	Warnings []string
}

// Transform cleans a raw transaction dump in place and returns it. The
// account-code and posting-date columns are required; a missing
// drop-listed column is only a warning.
func Transform(ctx context.Context, src *table.Table) (*Result, error) {
	tel := telemetry.FromContext(ctx)

	for _, col := range []string{ColAccount, ColDate} {
		if !src.HasColumn(col) {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var warnings []string
	for _, col := range droppedColumns {
		if !src.HasColumn(col) {
			warnings = append(warnings, fmt.Sprintf("column %q not present in dump", col))
		}
	}
	src.Drop(droppedColumns...)

	timer := tel.Start("posting dates")
	convertPostingDates(src)
	timer.End()

	timer = tel.Start("account codes")
	for i := 0; i < src.Len(); i++ {
		cell := src.Cell(i, ColAccount)
		switch cell.Kind() {
		case table.KindText:
			s, _ := cell.Text()
			src.Set(i, ColAccount, table.Text(account.Pad(s)))
		case table.KindNumber:
			d, _ := cell.Number()
			src.Set(i, ColAccount, table.Text(account.Pad(d.Truncate(0).String())))
		}
	}
	timer.End()

	warnings = append(warnings, table.Coerce(src, Schema)...)

	return &Result{Transactions: src, Warnings: warnings}, nil
}

// convertPostingDates rewrites Boekdatum from epoch milliseconds, the
// raw representation in the export, to a UTC timestamp. Cells that are
// not numeric are left for schema coercion to sort out.
func convertPostingDates(src *table.Table) {
	for i := 0; i < src.Len(); i++ {
		if ms, ok := src.Cell(i, ColDate).Number(); ok {
			src.Set(i, ColDate, table.Time(time.UnixMilli(ms.IntPart()).UTC()))
		}
	}
}
