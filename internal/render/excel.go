// Package render encodes projected price tables into the spreadsheet,
// document, and PDF artifacts bundled into the delivery archive.
package render

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"relatorios/internal"
)

// Layout selects between the full six-column table and the reduced
// practiced-price table with a generated row-number column.
type Layout string

const (
	LayoutFull          Layout = ""
	LayoutPracticedOnly Layout = "practiced_only"
)

var (
	fullHeaders      = []string{"Código do Item", "Descrição do Item", "Unidade", "Preço Atacado", "Preço Varejo", "Preço Praticado"}
	practicedHeaders = []string{"Nº", "Código do Item", "Descrição do Item", "Unidade", "Preço (em R$)"}

	fullWidths      = []float64{15, 60, 10, 12, 12, 12}
	practicedWidths = []float64{5, 15, 60, 12, 12}
)

// Excel writes a projected table into a styled workbook with two merged
// header bands above the data. Data starts on row 3; band one is the bold
// organization header, band two the explanatory paragraph.
func Excel(rows []internal.ProjectedRow, sheet, headerText, subHeaderText string, layout Layout) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := fullHeaders
	widths := fullWidths
	descCol := 1
	if layout == LayoutPracticedOnly {
		headers = practicedHeaders
		widths = practicedWidths
		descCol = 2
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))

	boldBand, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}
	plainBand, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	centered, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	leftAligned, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, err
	}
	// Two-decimal display for the price columns.
	priced, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		NumFmt:    2,
	})
	if err != nil {
		return nil, err
	}

	// Column styles must land before the band cells are written: excelize
	// applies SetColStyle to cells already present in the column, which
	// would strip the band formatting.
	for i, width := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return nil, err
		}
		style := centered
		if i == descCol {
			style = leftAligned
		} else if isPriceColumn(layout, i) {
			style = priced
		}
		if err := f.SetColStyle(sheet, name, style); err != nil {
			return nil, err
		}
	}

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, err
	}
	if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A1", headerText); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "A2", subHeaderText); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", boldBand); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A2", lastCol+"2", plainBand); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, 1, 50); err != nil {
		return nil, err
	}
	if err := f.SetRowHeight(sheet, 2, 80); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(sheet, "A3", &headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := rowCells(row, layout, i+1)
		addr, _ := excelize.CoordinatesToCellName(1, i+4)
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return nil, err
		}
		if err := f.SetRowHeight(sheet, i+4, 60); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowCells(row internal.ProjectedRow, layout Layout, seq int) []any {
	if layout == LayoutPracticedOnly {
		return []any{strconv.Itoa(seq), row.Code, row.ItemDescription, row.Unit, row.Practiced}
	}
	return []any{row.Code, row.ItemDescription, row.Unit, row.Wholesale, row.Retail, row.Practiced}
}

func isPriceColumn(layout Layout, idx int) bool {
	if layout == LayoutPracticedOnly {
		return idx == 4
	}
	return idx >= 3
}
