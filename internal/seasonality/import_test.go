package seasonality

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(rows [][]any) []byte {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
	buf := bytes.NewBuffer(nil)
	_, _ = f.WriteTo(buf)
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Código Externo", "Código Interno", "Especificação", "Unidade", "Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"},
		{"EXT-1", "89000000001", "Arroz agulhinha tipo 1", "KG", "normal", "", "", "", "", "", "", "baixa", "", "", "", ""},
		{"EXT-2", "90000000001", "Macarrão espaguete", "PCT", "", "", "", "", "", "", "", "", "", "", "", "falta"},
	})

	rows, err := ImportXLSX(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[0].InternalCode != "89000000001" || rows[0].Months[7] != "BAIXA" {
		t.Fatalf("row 0: %+v", rows[0])
	}
	if rows[1].Months[11] != "FALTA" {
		t.Fatalf("row 1: %+v", rows[1])
	}
}

func TestImportXLSXMissingCodes(t *testing.T) {
	blob := mkXLSX([][]any{
		{"Código Externo", "Código Interno", "Especificação", "Unidade"},
		{"", "89000000001", "Arroz", "KG"},
	})
	if _, err := ImportXLSX(blob); err == nil {
		t.Fatal("expected error")
	}
}
