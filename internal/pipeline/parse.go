package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"relatorios/internal"
)

// The export carries 13 "@"-separated fields per row; positions 7 and 9
// are known-unused and dropped before naming the remaining eleven.
const (
	rawFieldCount = 13
	fieldCount    = 11
)

var droppedPositions = [...]int{7, 9}

// ParseUpload decodes the uploaded export as Latin-1 and parses it into
// named records. Any row that does not yield exactly eleven fields after
// the positional drops fails the whole parse; no partial output.
func ParseUpload(raw []byte) ([]internal.RawRecord, error) {
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode upload: %w", err)
	}

	lines := splitLines(string(decoded))
	out := make([]internal.RawRecord, 0, len(lines))
	for i, line := range lines {
		record, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, record)
	}
	return out, nil
}

func parseLine(line string) (internal.RawRecord, error) {
	fields := strings.Split(line, "@")
	fields = dropPositions(fields)
	if len(fields) != fieldCount {
		return internal.RawRecord{}, fmt.Errorf("expected %d fields after dropping unused columns, got %d", fieldCount, len(fields))
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	record := internal.RawRecord{
		ItemCode:       fields[0],
		Meta1:          fields[1],
		Meta2:          fields[2],
		Meta3:          fields[3],
		Year:           fields[4],
		Unit:           fields[5],
		WholesalePrice: fields[6],
		RetailPrice:    fields[7],
		PracticedPrice: fields[8],
		Product:        fields[9],
	}
	if fields[10] != "" {
		desc := fields[10]
		record.Description = &desc
	}
	return record, nil
}

func dropPositions(fields []string) []string {
	out := make([]string, 0, len(fields))
	for i, f := range fields {
		if i == droppedPositions[0] || i == droppedPositions[1] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
