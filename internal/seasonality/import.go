package seasonality

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"relatorios/internal"
)

// ImportXLSX reads a seasonality reference workbook for offline refreshes.
// Expected columns: external code, internal code, client spec, unit, then
// one column per calendar month. The first row is treated as a header.
func ImportXLSX(content []byte) ([]internal.SeasonalityRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	out := make([]internal.SeasonalityRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if len(cells) < 4 {
			continue
		}
		row := internal.SeasonalityRow{
			ExternalCode: strings.TrimSpace(cells[0]),
			InternalCode: strings.TrimSpace(cells[1]),
			ClientSpec:   strings.TrimSpace(cells[2]),
			Unit:         strings.TrimSpace(cells[3]),
		}
		if row.ExternalCode == "" || row.InternalCode == "" {
			return nil, fmt.Errorf("row %d: missing code columns", i+2)
		}
		for m := 0; m < 12; m++ {
			idx := 4 + m
			if idx < len(cells) {
				row.Months[m] = strings.ToUpper(strings.TrimSpace(cells[idx]))
			}
		}
		out = append(out, row)
	}
	return out, nil
}
