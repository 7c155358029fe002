package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/registolab/registo/docpipe"
)

// fakeSource serves canned documents and errors per path.
type fakeSource struct {
	docs map[string]*docpipe.Document
	errs map[string]error
}

func (f *fakeSource) Extract(_ context.Context, path string) (*docpipe.Document, error) {
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.docs[path], nil
}

// fakeSink collects inserted batches and can fail on demand.
type fakeSink struct {
	batches [][]Record
	failOn  map[string]error // keyed by the batch's source file
}

func (f *fakeSink) InsertRecords(_ context.Context, records []Record) error {
	if len(records) > 0 {
		if err := f.failOn[records[0].SourceFile]; err != nil {
			return err
		}
	}
	f.batches = append(f.batches, records)
	return nil
}

// fakeEvents records event kinds in order.
type fakeEvents struct{ kinds []string }

func (f *fakeEvents) Event(_ context.Context, kind, _, _ string, _ bool) {
	f.kinds = append(f.kinds, kind)
}

func singleRecordDoc(path string) *docpipe.Document {
	return &docpipe.Document{
		Path: path,
		Pages: []docpipe.Page{{
			Number: 1,
			Tables: []docpipe.Table{{Rows: [][]string{
				{"Maria Santos\nAna Pereira 01-02-1990"},
			}}},
		}},
	}
}

func TestRunnerContinuesPastFailedDocument(t *testing.T) {
	src := &fakeSource{
		docs: map[string]*docpipe.Document{
			"b.pdf": singleRecordDoc("b.pdf"),
		},
		errs: map[string]error{
			"a.pdf": errors.New("decode failure"),
		},
	}
	sink := &fakeSink{}
	events := &fakeEvents{}

	runner := NewRunner(src, sink, WithEvents(events))
	res, err := runner.Run(context.Background(), []string{"a.pdf", "b.pdf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(res.Outcomes))
	}
	if res.FailedDocuments() != 1 {
		t.Fatalf("failedDocuments = %d, want 1", res.FailedDocuments())
	}
	if res.TotalRecords() != 1 {
		t.Fatalf("totalRecords = %d, want 1 from the healthy document", res.TotalRecords())
	}
	if len(sink.batches) != 1 {
		t.Fatalf("sink got %d batches, want 1", len(sink.batches))
	}

	wantKinds := []string{EventDocumentFailed, EventDocumentDone}
	if len(events.kinds) != len(wantKinds) {
		t.Fatalf("events = %v, want %v", events.kinds, wantKinds)
	}
	for i, k := range wantKinds {
		if events.kinds[i] != k {
			t.Fatalf("events = %v, want %v", events.kinds, wantKinds)
		}
	}
}

func TestRunnerSinkFaultIsRecordedNotFatal(t *testing.T) {
	src := &fakeSource{docs: map[string]*docpipe.Document{
		"a.pdf": singleRecordDoc("a.pdf"),
		"b.pdf": singleRecordDoc("b.pdf"),
	}}
	sink := &fakeSink{failOn: map[string]error{"a.pdf": errors.New("locked")}}

	runner := NewRunner(src, sink)
	res, err := runner.Run(context.Background(), []string{"a.pdf", "b.pdf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Outcomes[0].SinkErr == nil {
		t.Fatal("expected sink error on first outcome")
	}
	// No retry: the first document's batch is lost, the second lands.
	if res.Outcomes[1].SinkErr != nil {
		t.Fatalf("second outcome sink err = %v", res.Outcomes[1].SinkErr)
	}
	if len(sink.batches) != 1 {
		t.Fatalf("sink got %d batches, want 1", len(sink.batches))
	}
}

func TestRunnerExporterInvoked(t *testing.T) {
	src := &fakeSource{docs: map[string]*docpipe.Document{
		"/dir/a.pdf": singleRecordDoc("/dir/a.pdf"),
	}}
	sink := &fakeSink{}

	var gotPath string
	var gotCount int
	exporter := ExporterFunc(func(path string, records []Record) error {
		gotPath = path
		gotCount = len(records)
		return nil
	})

	runner := NewRunner(src, sink, WithExporter(exporter))
	if _, err := runner.Run(context.Background(), []string{"/dir/a.pdf"}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if gotPath != "/dir/a.xlsx" {
		t.Fatalf("export path = %q, want /dir/a.xlsx", gotPath)
	}
	if gotCount != 1 {
		t.Fatalf("exported %d records, want 1", gotCount)
	}
}

func TestRunnerExportFaultIsRecorded(t *testing.T) {
	src := &fakeSource{docs: map[string]*docpipe.Document{
		"a.pdf": singleRecordDoc("a.pdf"),
	}}
	sink := &fakeSink{}
	exporter := ExporterFunc(func(string, []Record) error {
		return errors.New("disk full")
	})

	runner := NewRunner(src, sink, WithExporter(exporter))
	res, err := runner.Run(context.Background(), []string{"a.pdf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Outcomes[0].ExportErr == nil {
		t.Fatal("expected export error on outcome")
	}
	// The sink insert still happened; export is best-effort.
	if len(sink.batches) != 1 {
		t.Fatalf("sink got %d batches, want 1", len(sink.batches))
	}
}

func TestRunnerNoDocuments(t *testing.T) {
	runner := NewRunner(&fakeSource{}, &fakeSink{})
	if _, err := runner.Run(context.Background(), nil); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("err = %v, want ErrNoDocuments", err)
	}
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(&fakeSource{}, &fakeSink{})
	_, err := runner.Run(ctx, []string{"a.pdf"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunnerEmptyDocumentSkipsSink(t *testing.T) {
	src := &fakeSource{docs: map[string]*docpipe.Document{
		"empty.pdf": {Path: "empty.pdf", Pages: []docpipe.Page{{Number: 1}}},
	}}
	sink := &fakeSink{failOn: map[string]error{}}

	runner := NewRunner(src, sink)
	res, err := runner.Run(context.Background(), []string{"empty.pdf"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.batches) != 0 {
		t.Fatal("empty documents must not reach the sink")
	}
	if res.TotalRecords() != 0 {
		t.Fatalf("totalRecords = %d, want 0", res.TotalRecords())
	}
}
