package registry

import (
	"context"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/registolab/registo/docpipe"
)

// Source yields the extracted page/table view of one document.
type Source interface {
	Extract(ctx context.Context, path string) (*docpipe.Document, error)
}

// RecordSink persists a batch of assembled records.
type RecordSink interface {
	InsertRecords(ctx context.Context, records []Record) error
}

// Exporter writes a document's records to a spreadsheet at path.
type Exporter interface {
	Export(path string, records []Record) error
}

// ExporterFunc adapts a plain function to the Exporter interface.
type ExporterFunc func(path string, records []Record) error

// Export calls f.
func (f ExporterFunc) Export(path string, records []Record) error {
	return f(path, records)
}

// EventSink records processing events for later inspection. Recording
// must never block or fail the batch.
type EventSink interface {
	Event(ctx context.Context, kind, path, detail string, ok bool)
}

// Event kinds emitted by the Runner.
const (
	EventDocumentDone   = "document_done"
	EventDocumentFailed = "document_failed"
	EventPageFailed     = "page_failed"
	EventSinkFailed     = "sink_failed"
	EventExportFailed   = "export_failed"
)

// DocumentOutcome pairs a document's assembly result with the fate of
// its sink writes. SinkErr means that document's batch was lost; other
// documents are unaffected.
type DocumentOutcome struct {
	DocumentResult
	SinkErr   error
	ExportErr error
}

// BatchResult summarises one batch run.
type BatchResult struct {
	Outcomes []DocumentOutcome
}

// TotalRecords counts the records assembled across all documents.
func (b BatchResult) TotalRecords() int {
	n := 0
	for _, o := range b.Outcomes {
		n += len(o.Records())
	}
	return n
}

// FailedDocuments counts documents that could not be read at all.
func (b BatchResult) FailedDocuments() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Runner drives the sequential batch: extract, assemble, persist,
// optionally export, one document at a time. Documents are isolated
// from each other; any per-document fault is recorded on its outcome
// and the batch moves on.
type Runner struct {
	src      Source
	sink     RecordSink
	exporter Exporter
	events   EventSink
	logger   *slog.Logger
	asm      *Assembler
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithExporter enables spreadsheet export next to each source file.
func WithExporter(e Exporter) RunnerOption { return func(r *Runner) { r.exporter = e } }

// WithEvents wires a processing-event sink.
func WithEvents(e EventSink) RunnerOption { return func(r *Runner) { r.events = e } }

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) RunnerOption { return func(r *Runner) { r.logger = l } }

// NewRunner creates a Runner over the given source and record sink.
func NewRunner(src Source, sink RecordSink, opts ...RunnerOption) *Runner {
	r := &Runner{src: src, sink: sink, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	r.asm = NewAssembler(r.logger)
	return r
}

// Run processes every path in order. It returns ErrNoDocuments for an
// empty path list and ctx.Err() when interrupted; per-document faults
// never abort the batch.
func (r *Runner) Run(ctx context.Context, paths []string) (BatchResult, error) {
	if len(paths) == 0 {
		return BatchResult{}, ErrNoDocuments
	}

	var batch BatchResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}
		batch.Outcomes = append(batch.Outcomes, r.processDocument(ctx, path))
	}
	return batch, nil
}

func (r *Runner) processDocument(ctx context.Context, path string) DocumentOutcome {
	doc, err := r.src.Extract(ctx, path)
	if err != nil {
		r.logger.Error("document extraction failed, skipping",
			"path", path, "error", err)
		r.event(ctx, EventDocumentFailed, path, err.Error(), false)
		return DocumentOutcome{DocumentResult: DocumentResult{
			Path: path,
			Type: ClassifyDocument(path),
			Err:  err,
		}}
	}

	outcome := DocumentOutcome{DocumentResult: r.asm.Assemble(ctx, doc)}
	for _, page := range outcome.FailedPages() {
		r.event(ctx, EventPageFailed, path, "page "+strconv.Itoa(page), false)
	}

	records := outcome.Records()
	r.logger.Info("document assembled",
		"path", path,
		"records", len(records),
		"failed_pages", len(outcome.FailedPages()),
		"concelho", outcome.Labels.Concelho,
		"posto", outcome.Labels.Posto)

	if len(records) > 0 {
		if err := r.sink.InsertRecords(ctx, records); err != nil {
			// No retry: this document's batch is lost, later
			// documents still get their own insert.
			outcome.SinkErr = err
			r.logger.Error("record insert failed", "path", path, "error", err)
			r.event(ctx, EventSinkFailed, path, err.Error(), false)
		}

		if r.exporter != nil {
			out := exportPath(path)
			if err := r.exporter.Export(out, records); err != nil {
				outcome.ExportErr = err
				r.logger.Error("spreadsheet export failed", "path", out, "error", err)
				r.event(ctx, EventExportFailed, path, err.Error(), false)
			}
		}
	}

	if outcome.SinkErr == nil && outcome.Err == nil {
		r.event(ctx, EventDocumentDone, path, strconv.Itoa(len(records))+" records", true)
	}
	return outcome
}

func (r *Runner) event(ctx context.Context, kind, path, detail string, ok bool) {
	if r.events != nil {
		r.events.Event(ctx, kind, path, detail, ok)
	}
}

// exportPath places the spreadsheet next to the source file.
func exportPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
}
