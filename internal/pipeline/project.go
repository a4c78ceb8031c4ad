package pipeline

import (
	"strings"

	"relatorios/internal"
	"relatorios/internal/util"
)

// ProjectRows derives the display-ready table for one category: merged
// item description plus the three prices as fixed two-decimal strings.
func ProjectRows(records []ClassifiedRecord) []internal.ProjectedRow {
	out := make([]internal.ProjectedRow, 0, len(records))
	for _, r := range records {
		out = append(out, internal.ProjectedRow{
			Code:            r.FormattedCode,
			ItemDescription: mergeDescription(r.Product, r.Description),
			Unit:            r.Unit,
			Wholesale:       util.FormatPrice(util.ParsePrice(r.WholesalePrice)),
			Retail:          util.FormatPrice(util.ParsePrice(r.RetailPrice)),
			Practiced:       util.FormatPrice(util.ParsePrice(r.PracticedPrice)),
		})
	}
	return out
}

// mergeDescription folds the free-text description into the product name.
// A missing, blank, or placeholder "-" description leaves the product
// name alone.
func mergeDescription(product string, description *string) string {
	if description == nil {
		return product
	}
	desc := strings.TrimSpace(*description)
	if desc == "" || desc == "-" {
		return product
	}
	return product + "\n" + desc
}
