package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	pdf "github.com/ledongthuc/pdf"
)

// PDFConverter turns a rendered document into a PDF by shelling out to a
// headless office application. Each conversion runs in its own temporary
// working directory, removed unconditionally; a failed conversion must be
// reported by the caller, never escalated.
type PDFConverter struct {
	binary  string
	timeout time.Duration
}

func NewPDFConverter(binary string, timeout time.Duration) *PDFConverter {
	return &PDFConverter{binary: binary, timeout: timeout}
}

// Convert writes docBytes to disk, invokes the converter, validates the
// produced PDF, and returns its bytes.
func (c *PDFConverter) Convert(ctx context.Context, docBytes []byte, baseName string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "relatorios-pdf-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	docPath := filepath.Join(tmpDir, baseName+".docx")
	if err := os.WriteFile(docPath, docBytes, 0o644); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, "--headless", "--convert-to", "pdf", "--outdir", tmpDir, docPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("convert %s: %w (%s)", baseName, err, bytes.TrimSpace(stderr.Bytes()))
	}

	pdfPath := filepath.Join(tmpDir, baseName+".pdf")
	blob, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("convert %s: no output produced: %w", baseName, err)
	}

	if err := validatePDF(blob); err != nil {
		return nil, fmt.Errorf("convert %s: %w", baseName, err)
	}
	return blob, nil
}

// validatePDF rejects converter output that is not a readable PDF with at
// least one page.
func validatePDF(blob []byte) error {
	r, err := pdf.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return fmt.Errorf("invalid pdf output: %w", err)
	}
	if r.NumPage() < 1 {
		return fmt.Errorf("pdf output has no pages")
	}
	return nil
}
