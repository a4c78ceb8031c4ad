package internal

// RawRecord is one row of the uploaded price export after the two unused
// positional columns are dropped and the eleven remaining fields are named.
// Immutable once parsed.
type RawRecord struct {
	ItemCode       string
	Meta1          string
	Meta2          string
	Meta3          string
	Year           string
	Unit           string
	WholesalePrice string
	RetailPrice    string
	PracticedPrice string
	Product        string
	Description    *string
}

// Category is one of the two regulatory partitions of the price table,
// selected by the two-digit prefix of the formatted item code.
type Category struct {
	Prefix string
	Label  string
}

// ProjectedRow is the display-ready shape of a record: formatted code,
// merged description, and the three prices as two-decimal comma-separated
// strings (empty when the source value is not numeric).
type ProjectedRow struct {
	Code            string
	ItemDescription string
	Unit            string
	Wholesale       string
	Retail          string
	Practiced       string
}

// ArchiveEntry is one named blob inside the delivered zip.
type ArchiveEntry struct {
	Name string
	Data []byte
}

// ReportResult is the outcome of one full pipeline run.
type ReportResult struct {
	ArchiveName string
	Archive     []byte
	Period      string
	RowsParsed  int
	RowsByLabel map[string]int
	Warnings    []string
}

// SeasonalityRow mirrors the external reference table: identifying codes
// plus one supply-level tag per calendar month (index 0 = January).
type SeasonalityRow struct {
	ExternalCode string
	InternalCode string
	ClientSpec   string
	Unit         string
	Months       [12]string
}

// SupplyAlert flags an item whose reference table marks the requested
// month with a restricted supply level.
type SupplyAlert struct {
	InternalCode string
	ClientSpec   string
	Level        string
}
