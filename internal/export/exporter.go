// Package export renders report summaries into portable files. Exporters are
// stateless; each call renders one summary to one writer.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andersvik/timetrack/internal/domain"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// FileRef points at an exported file on disk.
type FileRef struct {
	Path   string
	Format Format
}

type Exporter interface {
	Write(summary *domain.ReportSummary, w io.Writer) error
	Format() Format
}

// ForFormat returns the exporter for the given format.
func ForFormat(format Format) (Exporter, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// FileName derives a stable, filesystem-safe name for a summary, e.g.
// "acme-gmbh-invoice-2026-03.csv".
func FileName(summary *domain.ReportSummary, format Format) string {
	name := slugify(summary.CustomerName)
	if name == "" {
		name = slugify(summary.CustomerID)
	}
	return fmt.Sprintf("%s-%s-%s.%s",
		name,
		summary.ReportType,
		summary.StartDate.Format("2006-01"),
		format,
	)
}

// ToFile renders the summary into dir using the derived file name.
func ToFile(exporter Exporter, summary *domain.ReportSummary, dir string) (FileRef, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return FileRef{}, fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(summary, exporter.Format()))
	f, err := os.Create(path)
	if err != nil {
		return FileRef{}, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := exporter.Write(summary, f); err != nil {
		return FileRef{}, fmt.Errorf("writing %s export: %w", exporter.Format(), err)
	}
	return FileRef{Path: path, Format: exporter.Format()}, nil
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
