// Package docpipe extracts per-page text and table rows from the
// scanned-print registry PDFs.
//
// Extraction is pure Go (pdfcpu cross-reference + content stream
// decoding, CGO_ENABLED=0 compatible). Table rows are reconstructed
// geometrically: positioned text runs are clustered into lines by
// vertical proximity, and lines into rows by the larger gaps the table
// layout leaves between entries. OCR and table-grid detection are out
// of scope; image-only scans are flagged via the quality metrics.
//
// Usage:
//
//	pipe := docpipe.New(docpipe.Config{})
//	doc, err := pipe.Extract(ctx, "/path/to/file.pdf")
//	for _, page := range doc.Pages { ... }
package docpipe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoContent is returned when a PDF yields no extractable text on
// any page, typically an image-only scan that needs OCR first.
var ErrNoContent = errors.New("docpipe: no text content found in PDF")

// Pipeline is the PDF extraction engine.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{cfg: cfg}
}

// Extract parses a PDF and returns its pages with text and
// reconstructed table rows. A fault on one page is recorded on that
// page's Err and does not abort the remaining pages.
func (p *Pipeline) Extract(ctx context.Context, path string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > p.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max %d)", info.Size(), p.cfg.MaxFileSize)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("unsupported format: %q", filepath.Ext(path))
	}

	p.cfg.Logger.Debug("extracting document", "path", path)

	doc, err := extractPDF(path, p.cfg)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	if doc.Quality != nil && doc.Quality.NeedsOCR() {
		p.cfg.Logger.Warn("low extraction quality, document may be an image-only scan",
			"path", path,
			"chars_per_page", doc.Quality.CharsPerPage,
			"printable_ratio", doc.Quality.PrintableRatio)
	}

	return doc, nil
}
