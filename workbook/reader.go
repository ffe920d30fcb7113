// Package workbook loads spreadsheet exports into in-memory tables. The
// first row of a sheet is taken as the header row; every later row
// becomes a table row. Cells holding something numeric become numeric
// cells, empty cells become null, everything else stays text. Dates and
// declared column types are the schema layer's concern, not the
// reader's.
package workbook

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/mverbeek/saldo/table"
)

// Read loads the first worksheet of the workbook at path.
func Read(path string) (*table.Table, error) {
	return ReadSheet(path, "")
}

// ReadSheet loads the named worksheet; an empty name selects the first
// sheet of the workbook.
func ReadSheet(path, sheet string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	headers := headerRow(rows[0])
	if len(headers) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	t := table.New(headers...)
	for _, raw := range rows[1:] {
		cells := make([]table.Cell, len(headers))
		for i := range headers {
			if i < len(raw) {
				cells[i] = parseCell(raw[i])
			} else {
				cells[i] = table.Null()
			}
		}
		if err := t.Append(cells...); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// headerRow trims the header strings and cuts trailing empty headers,
// which excelize reports for formatted-but-unused columns.
func headerRow(raw []string) []string {
	end := len(raw)
	for end > 0 && strings.TrimSpace(raw[end-1]) == "" {
		end--
	}
	headers := make([]string, end)
	for i := 0; i < end; i++ {
		headers[i] = strings.TrimSpace(raw[i])
	}
	return headers
}

// parseCell infers a cell value from the sheet's string representation.
func parseCell(raw string) table.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return table.Null()
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return table.Number(d)
	}
	return table.Text(s)
}
