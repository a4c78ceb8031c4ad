package pipeline

import (
	"archive/zip"
	"bytes"
	"fmt"

	"relatorios/internal"
)

const (
	tagFull      = "GENALIM"
	tagPracticed = "PRE_TAB_"

	pdfNoticePrefix = "Aviso_Conversao_PDF_"
)

// entryName builds the deterministic archive entry name for one artifact:
// "{Category} - {KindTag}{Period}.{ext}".
func entryName(label, tag, period, ext string) string {
	return fmt.Sprintf("%s - %s%s.%s", label, tag, period, ext)
}

// ArchiveName is the download name of the bundled archive.
func ArchiveName(period string) string {
	return fmt.Sprintf("Relatorios_%s.zip", period)
}

// pdfNoticeEntry substitutes a plain-text placeholder for a document whose
// PDF conversion failed, so the archive keeps its full entry set.
func pdfNoticeEntry(docName string, cause error) internal.ArchiveEntry {
	body := fmt.Sprintf("A conversão para PDF de %q falhou e o arquivo não pôde ser incluído.\nMotivo: %v\n", docName, cause)
	return internal.ArchiveEntry{Name: pdfNoticePrefix + docName + ".txt", Data: []byte(body)}
}

// BuildArchive bundles the rendered outputs into one deflate-compressed
// zip, preserving entry order.
func BuildArchive(entries []internal.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", entry.Name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("archive entry %s: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
