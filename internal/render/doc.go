package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fumiama/go-docx"

	"relatorios/internal"
)

// Column widths in twips, converted from the layout the municipality
// publishes (1 cm = 567 twips).
var (
	fullDocWidths      = []int64{2835, 8505, 1134, 1134, 1134, 1134}
	practicedDocWidths = []int64{567, 2835, 8505, 1134, 2835}
)

const (
	docHeaderSize = "20" // half-points: 10pt
	docBodySize   = "16" // half-points: 8pt
	linkColor     = "0000FF"
)

// Doc writes a projected table into a word-processor document: the fixed
// five-paragraph header block followed by a bordered grid in the selected
// layout. Returns the encoded document bytes.
func Doc(rows []internal.ProjectedRow, validity string, layout Layout) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	addDocHeader(w, validity)

	headers := fullHeaders
	widths := fullDocWidths
	descCol := 1
	if layout == LayoutPracticedOnly {
		headers = practicedHeaders
		widths = practicedDocWidths
		descCol = 2
	}

	tableWidth := int64(0)
	for _, cw := range widths {
		tableWidth += cw
	}

	table := w.AddTable(len(rows)+1, len(headers), tableWidth, nil)
	if len(table.TableRows) != len(rows)+1 {
		return nil, fmt.Errorf("table allocation mismatch: %d rows", len(table.TableRows))
	}

	for j, cell := range table.TableRows[0].TableCells {
		p := cell.AddParagraph().Justification("center")
		p.AddText(headers[j]).Size(docHeaderSize).Bold()
	}

	for i, row := range rows {
		cells := docCells(row, layout, i+1)
		for j, cell := range table.TableRows[i+1].TableCells {
			justification := "center"
			if j == descCol {
				justification = "start"
			}
			p := cell.AddParagraph().Justification(justification)
			p.AddText(cells[j]).Size(docBodySize)
		}
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// addDocHeader writes the fixed header block: bold organization line,
// underlined link line, table title, explanatory paragraph and the
// validity line, all centered.
func addDocHeader(w *docx.Docx, validity string) {
	org := w.AddParagraph().Justification("center")
	org.AddText(DocOrgLine).Size(docHeaderSize).Bold()

	link := w.AddParagraph().Justification("center")
	link.AddText(DocLinkLine).Size(docHeaderSize).Underline("single").Color(linkColor)

	title := w.AddParagraph().Justification("center")
	title.AddText(TableTitle).Size(docHeaderSize)

	explanation := w.AddParagraph().Justification("center")
	explanation.AddText(ExplanatoryText).Size(docHeaderSize)

	valid := w.AddParagraph().Justification("center")
	valid.AddText("Validade: " + validity).Size(docHeaderSize)
}

func docCells(row internal.ProjectedRow, layout Layout, seq int) []string {
	if layout == LayoutPracticedOnly {
		return []string{strconv.Itoa(seq), row.Code, row.ItemDescription, row.Unit, row.Practiced}
	}
	return []string{row.Code, row.ItemDescription, row.Unit, row.Wholesale, row.Retail, row.Practiced}
}
