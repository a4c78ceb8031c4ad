package pipeline

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"relatorios/internal"
	"relatorios/internal/config"
	"relatorios/internal/storage"
)

func testConfig() config.Config {
	return config.Config{
		ValidityPolicy:         config.PolicyHalfMonth,
		CategoryLabel89:        "Quartil",
		CategoryLabel90:        "Contrato",
		SofficePath:            "soffice",
		PDFTimeoutMs:           5000,
		SeasonalityAlertLevels: []string{"BAIXA", "FALTA"},
	}
}

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleUpload() []byte {
	lines := []string{
		sampleLine("89000000001", "Arroz", "Tipo 1"),
		sampleLine("89000000002", "Feijão", "-"),
		sampleLine("90000000001", "Macarrão", "Espaguete"),
		sampleLine("77000000001", "Ignorado", ""),
	}
	return []byte(strings.Join(lines, "\n"))
}

func archiveNames(t *testing.T, blob []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestGenerate(t *testing.T) {
	svc := NewReportService(openTestDB(t), testConfig())

	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Generate(context.Background(), sampleUpload(), today)
	if err != nil {
		t.Fatal(err)
	}

	if result.Period != "2026Q3" {
		t.Fatalf("period %q", result.Period)
	}
	if result.ArchiveName != "Relatorios_2026Q3.zip" {
		t.Fatalf("archive name %q", result.ArchiveName)
	}
	if result.RowsParsed != 4 {
		t.Fatalf("rows parsed %d", result.RowsParsed)
	}
	if result.RowsByLabel["Quartil"] != 2 || result.RowsByLabel["Contrato"] != 1 {
		t.Fatalf("rows by label: %+v", result.RowsByLabel)
	}
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}

	names := archiveNames(t, result.Archive)
	want := []string{
		"Quartil - GENALIM2026Q3.xlsx",
		"Quartil - PRE_TAB_2026Q3.xlsx",
		"Contrato - GENALIM2026Q3.xlsx",
		"Contrato - PRE_TAB_2026Q3.xlsx",
		"Quartil - GENALIM2026Q3.docx",
		"Quartil - PRE_TAB_2026Q3.docx",
		"Contrato - GENALIM2026Q3.docx",
		"Contrato - PRE_TAB_2026Q3.docx",
	}
	if len(names) != len(want) {
		t.Fatalf("entries=%d: %v", len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry %d: %q want %q", i, names[i], want[i])
		}
	}
}

// A converter that cannot run must never abort the run: every failed
// document becomes a placeholder text entry, keeping the entry set at
// its deterministic size.
func TestGeneratePDFFailureIsolated(t *testing.T) {
	cfg := testConfig()
	cfg.EnablePDFExport = true
	cfg.SofficePath = filepath.Join(t.TempDir(), "missing-soffice")
	svc := NewReportService(openTestDB(t), cfg)

	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Generate(context.Background(), sampleUpload(), today)
	if err != nil {
		t.Fatal(err)
	}

	names := archiveNames(t, result.Archive)
	if len(names) != 8 {
		t.Fatalf("entries=%d: %v", len(names), names)
	}

	notices := 0
	for _, name := range names {
		if strings.HasPrefix(name, "Aviso_Conversao_PDF_") {
			notices++
		}
	}
	if notices != 4 {
		t.Fatalf("notices=%d: %v", notices, names)
	}
	if len(result.Warnings) != 4 {
		t.Fatalf("warnings=%d: %v", len(result.Warnings), result.Warnings)
	}
}

// minimalPDF assembles the smallest document the converter validation
// accepts: one empty page behind a correct cross-reference table.
func minimalPDF() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 4)
	obj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	xref := buf.Len()
	buf.WriteString("xref\n0 4\n0000000000 65535 f \n")
	for n := 1; n <= 3; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 4 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

// One failed conversion replaces only its own entry: the other seven
// artifacts are delivered untouched.
func TestGeneratePDFPartialFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("converter stub needs a shell")
	}

	dir := t.TempDir()
	fixture := filepath.Join(dir, "fixture.pdf")
	if err := os.WriteFile(fixture, minimalPDF(), 0o644); err != nil {
		t.Fatal(err)
	}

	// Mimics "--headless --convert-to pdf --outdir <dir> <doc>", refusing
	// exactly one document.
	script := fmt.Sprintf(`#!/bin/sh
stem=$(basename "$6" .docx)
case "$stem" in
Contrato_PRE_TAB_*) exit 1 ;;
esac
cp %q "$5/$stem.pdf"
`, fixture)
	stub := filepath.Join(dir, "soffice-stub")
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.EnablePDFExport = true
	cfg.SofficePath = stub
	svc := NewReportService(openTestDB(t), cfg)

	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Generate(context.Background(), sampleUpload(), today)
	if err != nil {
		t.Fatal(err)
	}

	names := archiveNames(t, result.Archive)
	want := []string{
		"Quartil - GENALIM2026Q3.xlsx",
		"Quartil - PRE_TAB_2026Q3.xlsx",
		"Contrato - GENALIM2026Q3.xlsx",
		"Contrato - PRE_TAB_2026Q3.xlsx",
		"Quartil - GENALIM2026Q3.pdf",
		"Quartil - PRE_TAB_2026Q3.pdf",
		"Contrato - GENALIM2026Q3.pdf",
		"Aviso_Conversao_PDF_Contrato - PRE_TAB_2026Q3.pdf.txt",
	}
	if len(names) != len(want) {
		t.Fatalf("entries=%d: %v", len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("entry %d: %q want %q", i, names[i], want[i])
		}
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("warnings=%d: %v", len(result.Warnings), result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "Contrato - PRE_TAB_2026Q3.pdf") {
		t.Fatalf("warning %q", result.Warnings[0])
	}
}

func TestGenerateParseFailureProducesNothing(t *testing.T) {
	svc := NewReportService(openTestDB(t), testConfig())
	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.Generate(context.Background(), []byte("not@a@valid@row"), today)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGenerateSeasonalityWarnings(t *testing.T) {
	db := openTestDB(t)
	row := internal.SeasonalityRow{
		ExternalCode: "EXT-1",
		InternalCode: "89000000001",
		ClientSpec:   "Arroz agulhinha tipo 1",
		Unit:         "KG",
	}
	row.Months[int(time.August)-1] = "BAIXA"
	if err := db.UpsertSeasonality([]internal.SeasonalityRow{row}); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.EnableSeasonality = true
	svc := NewReportService(db, cfg)

	today := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	result, err := svc.Generate(context.Background(), sampleUpload(), today)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings: %v", result.Warnings)
	}
	if !strings.Contains(result.Warnings[0], "BAIXA") || !strings.Contains(result.Warnings[0], "89000000001") {
		t.Fatalf("warning %q", result.Warnings[0])
	}
}
