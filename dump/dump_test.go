package dump

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/mverbeek/saldo/table"
)

func TestTransform(t *testing.T) {
	src := table.New(ColAccount, ColDate, "Omschrijving", "Bedrag", "Debet", "Credit", "Btwcode")
	// 2025-01-31 00:00:00 UTC in epoch milliseconds.
	assert.NoError(t, src.Append(
		table.Text("100"), table.NumberFromFloat(1738281600000),
		table.Text("Huur januari"), table.NumberFromFloat(-1200),
		table.NumberFromFloat(0), table.NumberFromFloat(1200), table.Text("GEEN"),
	))
	assert.NoError(t, src.Append(
		table.NumberFromFloat(8000), table.Null(),
		table.Text("Omzet"), table.NumberFromFloat(5000),
		table.Null(), table.Null(), table.Null(),
	))

	result, err := Transform(context.Background(), src)
	assert.NoError(t, err)

	tx := result.Transactions
	assert.Equal(t, []string{ColAccount, ColDate, "Omschrijving", "Bedrag"}, tx.Columns())
	assert.Equal(t, 2, tx.Len())

	// Both text and numeric account codes are padded to four digits.
	code, _ := tx.Cell(0, ColAccount).Text()
	assert.Equal(t, "0100", code)
	code, _ = tx.Cell(1, ColAccount).Text()
	assert.Equal(t, "8000", code)

	date, ok := tx.Cell(0, ColDate).Time()
	assert.True(t, ok)
	assert.True(t, date.Equal(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)))

	assert.True(t, tx.Cell(1, ColDate).IsNull())

	// Five of the eight drop-listed columns were absent.
	assert.Equal(t, 5, len(result.Warnings))
	for _, w := range result.Warnings {
		assert.True(t, strings.Contains(w, "not present"), w)
	}
}

func TestTransformAllDropColumnsPresent(t *testing.T) {
	cols := append([]string{ColAccount, ColDate}, droppedColumns...)
	src := table.New(cols...)

	cells := make([]table.Cell, len(cols))
	cells[0] = table.Text("100")
	cells[1] = table.NumberFromFloat(1738281600000)
	for i := 2; i < len(cells); i++ {
		cells[i] = table.Text("x")
	}
	assert.NoError(t, src.Append(cells...))

	result, err := Transform(context.Background(), src)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(result.Warnings))
	assert.Equal(t, []string{ColAccount, ColDate}, result.Transactions.Columns())
}

func TestTransformMissingRequiredColumn(t *testing.T) {
	src := table.New(ColAccount, "Bedrag")
	assert.NoError(t, src.Append(table.Text("100"), table.NumberFromFloat(1)))

	_, err := Transform(context.Background(), src)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), ColDate))
}
