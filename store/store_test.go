package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/mverbeek/saldo/table"
)

func testSchema() table.Schema {
	return table.Schema{
		"code": table.TypeText,
		"cost": table.TypeInteger,
		"amt":  table.TypeNumber,
		"date": table.TypeTime,
	}
}

func testTable(t *testing.T, rows int) *table.Table {
	t.Helper()

	tbl := table.New("code", "cost", "amt", "date")
	for i := 0; i < rows; i++ {
		assert.NoError(t, tbl.Append(
			table.Text("0100"),
			table.NumberFromFloat(float64(i)),
			table.NumberFromFloat(10.5),
			table.Time(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)),
		))
	}
	return tbl
}

func TestWriteAndCount(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "dir", "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	n, err := Write(db, "facts", testTable(t, 3), testSchema(), Replace)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := Count(db, "facts")
	assert.NoError(t, err)
	assert.Equal(t, 3, count)

	// Round-trip one row through the driver types.
	var code string
	var cost int64
	var amt float64
	var date string
	err = db.QueryRow(`SELECT code, cost, amt, date FROM facts LIMIT 1`).Scan(&code, &cost, &amt, &date)
	assert.NoError(t, err)
	assert.Equal(t, "0100", code)
	assert.Equal(t, int64(0), cost)
	assert.Equal(t, 10.5, amt)
	assert.Equal(t, "2025-01-31 00:00:00", date)
}

func TestWriteReplace(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	_, err = Write(db, "facts", testTable(t, 5), testSchema(), Replace)
	assert.NoError(t, err)

	// A second replace run leaves only the new rows.
	n, err := Write(db, "facts", testTable(t, 2), testSchema(), Replace)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWriteAppend(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	_, err = Write(db, "facts", testTable(t, 2), testSchema(), Append)
	assert.NoError(t, err)

	n, err := Write(db, "facts", testTable(t, 3), testSchema(), Append)
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestWriteFail(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	_, err = Write(db, "facts", testTable(t, 1), testSchema(), Fail)
	assert.NoError(t, err)

	_, err = Write(db, "facts", testTable(t, 1), testSchema(), Fail)
	assert.Error(t, err)
}

func TestWriteNullValues(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	tbl := table.New("code", "amt")
	assert.NoError(t, tbl.Append(table.Text("0100"), table.Null()))

	_, err = Write(db, "facts", tbl, testSchema(), Replace)
	assert.NoError(t, err)

	var nulls int
	err = db.QueryRow(`SELECT COUNT(*) FROM facts WHERE amt IS NULL`).Scan(&nulls)
	assert.NoError(t, err)
	assert.Equal(t, 1, nulls)
}

func TestTables(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	defer db.Close()

	names, err := Tables(db)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(names))

	_, err = Write(db, "zz", testTable(t, 1), testSchema(), Replace)
	assert.NoError(t, err)
	_, err = Write(db, "aa", testTable(t, 1), testSchema(), Replace)
	assert.NoError(t, err)

	names, err = Tables(db)
	assert.NoError(t, err)
	assert.Equal(t, []string{"aa", "zz"}, names)
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"facts"`, quoteIdent("facts"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "transactions.db")
	second := filepath.Join(dir, "balances.db")

	writeStore := func(path, name string, rows int) {
		db, err := Open(path)
		assert.NoError(t, err)
		defer db.Close()
		_, err = Write(db, name, testTable(t, rows), testSchema(), Replace)
		assert.NoError(t, err)
	}
	writeStore(first, "transactions", 4)
	writeStore(second, "fct_TrialBalances", 7)

	output := filepath.Join(dir, "combined.db")
	results, err := Combine(output,
		Source{Path: first, Table: "transactions"},
		Source{Path: second, Table: "fct_TrialBalances"},
	)
	assert.NoError(t, err)
	assert.Equal(t, []CombineResult{
		{Table: "transactions", Rows: 4},
		{Table: "fct_TrialBalances", Rows: 7},
	}, results)

	db, err := Open(output)
	assert.NoError(t, err)
	defer db.Close()

	names, err := Tables(db)
	assert.NoError(t, err)
	assert.Equal(t, []string{"fct_TrialBalances", "transactions"}, names)

	count, err := Count(db, "fct_TrialBalances")
	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestCombineMissingSource(t *testing.T) {
	dir := t.TempDir()

	_, err := Combine(filepath.Join(dir, "combined.db"),
		Source{Path: filepath.Join(dir, "nope.db"), Table: "transactions"},
	)
	assert.Error(t, err)
}
