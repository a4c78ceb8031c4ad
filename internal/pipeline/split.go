package pipeline

import (
	"strings"

	"relatorios/internal"
)

// ClassifiedRecord pairs a parsed record with its formatted item code.
type ClassifiedRecord struct {
	internal.RawRecord
	FormattedCode string
}

// FormatCodes derives the formatted item code for every record, keeping
// the input order.
func FormatCodes(records []internal.RawRecord) []ClassifiedRecord {
	out := make([]ClassifiedRecord, 0, len(records))
	for _, r := range records {
		out = append(out, ClassifiedRecord{RawRecord: r, FormattedCode: FormatItemCode(r.ItemCode)})
	}
	return out
}

// SplitCategories partitions records into the two regulatory categories by
// the two-digit prefix of the formatted code, preserving relative order.
// Records matching neither prefix are dropped from both partitions; that
// is filtering, not an error.
func SplitCategories(records []ClassifiedRecord, first, second internal.Category) (map[string][]ClassifiedRecord, int) {
	out := map[string][]ClassifiedRecord{
		first.Label:  {},
		second.Label: {},
	}
	dropped := 0
	for _, r := range records {
		switch {
		case strings.HasPrefix(r.FormattedCode, first.Prefix):
			out[first.Label] = append(out[first.Label], r)
		case strings.HasPrefix(r.FormattedCode, second.Prefix):
			out[second.Label] = append(out[second.Label], r)
		default:
			dropped++
		}
	}
	return out, dropped
}
