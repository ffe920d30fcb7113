package trialbalance

import (
	"fmt"
	"strings"

	"github.com/mverbeek/saldo/table"
)

// Column names of the long fact table introduced by Reshape.
const (
	ColPeriodKey = "JaarPeriode"
	ColPeriodEnd = "LastDate"
	ColValue     = "Value"
)

// Reshape unpivots a wide table into long form: one output row per
// (source row, period column) pair, carrying the identity columns
// unchanged plus the period key, period end-date and the period cell as
// Value. Rows whose value is null are dropped; a missing balance is not
// a zero balance.
//
// A missing identity column means the source schema is incompatible and
// reshaping fails, listing every absent column.
func Reshape(src *table.Table, idCols []string, periods []Period) (*table.Table, error) {
	var missing []string
	for _, c := range idCols {
		if !src.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	cols := append(append([]string(nil), idCols...), ColPeriodKey, ColPeriodEnd, ColValue)
	long := table.New(cols...)

	for i := 0; i < src.Len(); i++ {
		for _, p := range periods {
			value := src.Cell(i, p.Column)
			if value.IsNull() {
				continue
			}
			row := make([]table.Cell, 0, len(cols))
			for _, c := range idCols {
				row = append(row, src.Cell(i, c))
			}
			row = append(row, table.Text(p.Key), table.Time(p.End), value)
			if err := long.Append(row...); err != nil {
				return nil, err
			}
		}
	}

	return long, nil
}
