package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/registolab/registo/registry"
)

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	records := []registry.Record{
		{
			SubjectName: "Ana Pereira",
			Parent1:     "Maria Santos",
			Parent2:     "José Santos",
			DateOfBirth: "01-02-1990",
			Concelho:    "Praia",
			Posto:       "Achada",
			Type:        registry.TypeNational,
			SourceFile:  "SC_A_NACIONAIS_2024.pdf",
		},
		{
			SubjectName: "Carlos Abreu",
			Parent1:     "Rita Lopes",
			DateOfBirth: "05-06-1988",
			Type:        registry.TypeUnknown,
			SourceFile:  "livro_07.pdf",
		},
	}

	if err := WriteXLSX(path, records); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Nome Completo" || rows[0][7] != "File Name" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "Ana Pereira" || rows[1][3] != "01-02-1990" {
		t.Fatalf("row 1 = %v", rows[1])
	}
	if rows[2][6] != "unknown" {
		t.Fatalf("row 2 type = %q, want unknown", rows[2][6])
	}
}

func TestWriteXLSXNoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := WriteXLSX(path, nil); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want header only", len(rows))
	}
}

func TestWriteXLSXBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.xlsx")
	if err := WriteXLSX(path, nil); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
