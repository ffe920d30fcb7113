package trialbalance

import (
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/mverbeek/saldo/table"
)

func testPeriods() []Period {
	return []Period{
		{Column: "Openingsbalans2025", Key: "2025-00", End: date(2025, time.January, 1)},
		{Column: "januari2025", Key: "2025-01", End: date(2025, time.January, 31)},
	}
}

func TestReshape(t *testing.T) {
	src := table.New("Code", "Naam", "Openingsbalans2025", "januari2025")
	assert.NoError(t, src.Append(
		table.Text("100"), table.Text("Holding"),
		table.NumberFromFloat(500), table.NumberFromFloat(600),
	))
	assert.NoError(t, src.Append(
		table.Text("200"), table.Text("Holding"),
		table.NumberFromFloat(-500), table.Null(),
	))

	long, err := Reshape(src, []string{"Code", "Naam"}, testPeriods())
	assert.NoError(t, err)

	// 2 wide rows x 2 periods, minus the one null cell.
	assert.Equal(t, 3, long.Len())
	assert.Equal(t, []string{"Code", "Naam", ColPeriodKey, ColPeriodEnd, ColValue}, long.Columns())

	key, _ := long.Cell(0, ColPeriodKey).Text()
	assert.Equal(t, "2025-00", key)
	end, ok := long.Cell(0, ColPeriodEnd).Time()
	assert.True(t, ok)
	assert.True(t, end.Equal(date(2025, time.January, 1)))
	value, ok := long.Cell(0, ColValue).Number()
	assert.True(t, ok)
	assert.Equal(t, "500", value.String())

	// The null januari2025 cell of the second row was dropped, not
	// emitted as zero.
	for i := 0; i < long.Len(); i++ {
		assert.False(t, long.Cell(i, ColValue).IsNull())
	}
}

func TestReshapeRowCountBound(t *testing.T) {
	src := table.New("Code", "Openingsbalans2025", "januari2025")
	for i := 0; i < 5; i++ {
		assert.NoError(t, src.Append(table.Text("100"), table.NumberFromFloat(1), table.NumberFromFloat(2)))
	}

	periods := testPeriods()
	long, err := Reshape(src, []string{"Code"}, periods)
	assert.NoError(t, err)

	// No null cells, so the bound is tight.
	assert.Equal(t, src.Len()*len(periods), long.Len())
}

func TestReshapeMissingIdentityColumns(t *testing.T) {
	src := table.New("Code", "januari2025")
	assert.NoError(t, src.Append(table.Text("100"), table.NumberFromFloat(1)))

	_, err := Reshape(src, []string{"Code", "Naam", "Afdeling"}, testPeriods())
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Naam"))
	assert.True(t, strings.Contains(err.Error(), "Afdeling"))
}

func TestReshapeEmptySource(t *testing.T) {
	src := table.New("Code", "januari2025")

	long, err := Reshape(src, []string{"Code"}, testPeriods())
	assert.NoError(t, err)
	assert.Equal(t, 0, long.Len())
}
