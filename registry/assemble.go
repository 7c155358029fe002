package registry

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/registolab/registo/docpipe"
)

// headerRow is the literal column header the registry tables repeat on
// every page; rows matching it exactly carry no record.
const headerRow = "NOME COMPLETO FILIAÇÃO DATA NASC.º"

// PageResult is the outcome of assembling one page. A non-nil Err
// means the page contributed nothing because of an extraction fault,
// as opposed to a page that was genuinely empty.
type PageResult struct {
	Page    int
	Records []Record
	Err     error
}

// DocumentResult is the outcome of assembling one document. Err is set
// only when the document itself could not be read; page faults stay on
// the individual PageResult.
type DocumentResult struct {
	Path   string
	Type   DocType
	Labels Labels
	Pages  []PageResult
	Err    error
}

// Records flattens the records of all successfully assembled pages.
func (r DocumentResult) Records() []Record {
	var out []Record
	for _, p := range r.Pages {
		out = append(out, p.Records...)
	}
	return out
}

// FailedPages returns the page numbers that faulted during assembly.
func (r DocumentResult) FailedPages() []int {
	var out []int
	for _, p := range r.Pages {
		if p.Err != nil {
			out = append(out, p.Page)
		}
	}
	return out
}

// Assembler turns an extracted document into civil-registry records.
type Assembler struct {
	logger *slog.Logger
}

// NewAssembler creates an Assembler. A nil logger falls back to
// slog.Default().
func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble walks the document's pages and tables, parses every data
// row, and attaches the sticky region labels plus the document type
// and source filename. A faulted page is recorded and skipped; the
// rest of the document is still processed.
func (a *Assembler) Assemble(ctx context.Context, doc *docpipe.Document) DocumentResult {
	result := DocumentResult{
		Path: doc.Path,
		Type: ClassifyDocument(doc.Path),
	}
	sourceFile := filepath.Base(doc.Path)

	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			result.Err = err
			return result
		}

		pr := PageResult{Page: page.Number}

		if page.Err != nil {
			pr.Err = page.Err
			a.logger.Warn("page extraction failed, skipping",
				"path", doc.Path, "page", page.Number, "error", page.Err)
			result.Pages = append(result.Pages, pr)
			continue
		}

		// Labels are sticky: the first page where both come back
		// non-empty wins for the rest of the document.
		if !result.Labels.Complete() {
			if got := ExtractLabels(page.Text); got.Concelho != "" || got.Posto != "" {
				result.Labels = got
				a.logger.Debug("region labels found",
					"path", doc.Path, "page", page.Number,
					"concelho", got.Concelho, "posto", got.Posto)
			}
		}

		for _, table := range page.Tables {
			pr.Records = append(pr.Records, a.assembleTable(table, result.Labels, result.Type, sourceFile)...)
		}

		result.Pages = append(result.Pages, pr)
	}

	return result
}

func (a *Assembler) assembleTable(table docpipe.Table, labels Labels, docType DocType, sourceFile string) []Record {
	var records []Record
	for _, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		cell := row[0]
		if cell == headerRow {
			continue
		}

		fields, ok := ParseCell(strings.Split(cell, "\n"))
		if !ok {
			continue
		}

		records = append(records, Record{
			SubjectName: fields.SubjectName,
			Parent1:     fields.Parent1,
			Parent2:     fields.Parent2,
			DateOfBirth: fields.DateOfBirth,
			Concelho:    labels.Concelho,
			Posto:       labels.Posto,
			Type:        docType,
			SourceFile:  sourceFile,
		})
	}
	return records
}
