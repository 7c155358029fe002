// Package export writes assembled records to spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/registolab/registo/registry"
)

// header keeps the column titles the previous tooling produced, so
// downstream spreadsheet consumers keep working unchanged.
var header = []any{
	"Nome Completo", "Parent 1", "Parent 2", "Data de Nascimento",
	"Concelho", "Posto", "Type", "File Name",
}

// WriteXLSX writes one sheet with a header row and one row per record.
func WriteXLSX(path string, records []registry.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell name: %w", err)
		}
		row := []any{
			r.SubjectName, r.Parent1, r.Parent2, r.DateOfBirth,
			r.Concelho, r.Posto, string(r.Type), r.SourceFile,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}
