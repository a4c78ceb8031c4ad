package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"relatorios/internal"
	"relatorios/internal/config"
	"relatorios/internal/period"
	"relatorios/internal/render"
	"relatorios/internal/seasonality"
	"relatorios/internal/storage"
)

// ReportService runs the whole pipeline for one uploaded export: parse,
// classify, project, render, optionally convert to PDF, and bundle into
// the delivery archive. One upload, one linear pass.
type ReportService struct {
	db        *storage.DB
	cfg       config.Config
	converter *render.PDFConverter
	panel     *seasonality.Panel
}

func NewReportService(db *storage.DB, cfg config.Config) *ReportService {
	s := &ReportService{db: db, cfg: cfg}
	if cfg.EnablePDFExport {
		s.converter = render.NewPDFConverter(cfg.SofficePath, time.Duration(cfg.PDFTimeoutMs)*time.Millisecond)
	}
	if cfg.EnableSeasonality {
		s.panel = seasonality.NewPanel(db, cfg.SeasonalityAlertLevels)
	}
	return s
}

// Generate produces the archive for one upload. Parse errors fail the run
// with no partial output; PDF conversion failures are isolated per
// document and surface as placeholder entries plus warnings.
func (s *ReportService) Generate(ctx context.Context, raw []byte, today time.Time) (internal.ReportResult, error) {
	start := time.Now()

	window, err := period.Compute(s.cfg.ValidityPolicy, today)
	if err != nil {
		return internal.ReportResult{}, err
	}
	label := period.Label(today)

	records, err := ParseUpload(raw)
	if err != nil {
		return internal.ReportResult{}, err
	}

	first := internal.Category{Prefix: "89", Label: s.cfg.CategoryLabel89}
	second := internal.Category{Prefix: "90", Label: s.cfg.CategoryLabel90}
	classified := FormatCodes(records)
	byLabel, dropped := SplitCategories(classified, first, second)

	headerText := fmt.Sprintf("%s\n%s\nValidade: %s", render.OrgName, render.TableTitle, window)
	validity := window.String()

	result := internal.ReportResult{
		Period:      label,
		ArchiveName: ArchiveName(label),
		RowsParsed:  len(records),
		RowsByLabel: map[string]int{},
	}

	var sheets []internal.ArchiveEntry
	var documents []internal.ArchiveEntry
	for _, category := range []internal.Category{first, second} {
		categoryRows := byLabel[category.Label]
		result.RowsByLabel[category.Label] = len(categoryRows)
		projected := ProjectRows(categoryRows)

		fullSheet, err := render.Excel(projected, category.Label, headerText, render.ExplanatoryText, render.LayoutFull)
		if err != nil {
			return internal.ReportResult{}, fmt.Errorf("render %s workbook: %w", category.Label, err)
		}
		sheets = append(sheets, internal.ArchiveEntry{Name: entryName(category.Label, tagFull, label, "xlsx"), Data: fullSheet})

		practicedSheet, err := render.Excel(projected, category.Label+" - praticado", headerText, render.ExplanatoryText, render.LayoutPracticedOnly)
		if err != nil {
			return internal.ReportResult{}, fmt.Errorf("render %s practiced workbook: %w", category.Label, err)
		}
		sheets = append(sheets, internal.ArchiveEntry{Name: entryName(category.Label, tagPracticed, label, "xlsx"), Data: practicedSheet})

		for _, layout := range []struct {
			kind render.Layout
			tag  string
		}{
			{kind: render.LayoutFull, tag: tagFull},
			{kind: render.LayoutPracticedOnly, tag: tagPracticed},
		} {
			doc, err := render.Doc(projected, validity, layout.kind)
			if err != nil {
				return internal.ReportResult{}, fmt.Errorf("render %s document: %w", category.Label, err)
			}
			documents = append(documents, s.documentEntry(ctx, category.Label, layout.tag, label, doc, &result))
		}
	}

	if s.panel != nil {
		codes := make([]string, 0, len(classified))
		for _, r := range classified {
			codes = append(codes, r.ItemCode)
		}
		alerts, err := s.panel.AlertsFor(codes, today)
		if err != nil {
			return internal.ReportResult{}, fmt.Errorf("seasonality panel: %w", err)
		}
		for _, a := range alerts {
			result.Warnings = append(result.Warnings, fmt.Sprintf("abastecimento %s no mês corrente: %s (código %s)", a.Level, a.ClientSpec, a.InternalCode))
		}
	}

	archive, err := BuildArchive(append(sheets, documents...))
	if err != nil {
		return internal.ReportResult{}, err
	}
	result.Archive = archive

	if s.db != nil {
		counts := map[string]int{
			"parsed":  len(records),
			"dropped": dropped,
		}
		for categoryLabel, n := range result.RowsByLabel {
			counts[categoryLabel] = n
		}
		_ = s.db.InsertRun(traceID(), label, counts, result.Warnings, map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())})
	}

	return result, nil
}

// documentEntry delivers the document as DOCX, or as PDF when conversion
// is enabled; a failed conversion yields the placeholder entry instead so
// the archive entry set stays complete.
func (s *ReportService) documentEntry(ctx context.Context, categoryLabel, tag, periodLabel string, doc []byte, result *internal.ReportResult) internal.ArchiveEntry {
	if s.converter == nil {
		return internal.ArchiveEntry{Name: entryName(categoryLabel, tag, periodLabel, "docx"), Data: doc}
	}

	docName := entryName(categoryLabel, tag, periodLabel, "pdf")
	baseName := fmt.Sprintf("%s_%s%s", categoryLabel, tag, periodLabel)
	blob, err := s.converter.Convert(ctx, doc, baseName)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("conversão PDF falhou para %s: %v", docName, err))
		return pdfNoticeEntry(docName, err)
	}
	return internal.ArchiveEntry{Name: docName, Data: blob}
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
