package registry

import "strings"

// CellFields is the parsed view of one table cell.
type CellFields struct {
	SubjectName string
	Parent1     string
	Parent2     string
	DateOfBirth string
}

// ParseCell reconstructs the subject/parents/birth-date tuple from the
// newline-split lines of one table cell. The source PDF packs those
// fields into an unlabeled blob whose line order varies by record, so
// whichever line carries the date anchors the subject's name, with a
// fallback for cells where the date sits on the first line instead.
//
// Cells with fewer than two lines are header or blank artifacts and
// are skipped (ok=false). Malformed cells never error; they yield
// best-effort, possibly-empty fields and the caller keeps them.
//
// The asymmetries here are deliberate and load-bearing: a later date
// line overwrites an earlier one, and only the last non-date remainder
// line survives as the second parent. Datasets already loaded with the
// previous tooling depend on this exact behavior.
func ParseCell(rawLines []string) (CellFields, bool) {
	if len(rawLines) < 2 {
		return CellFields{}, false
	}

	// Line 0 provisionally holds the first parent; a date found on it
	// seeds the birth date until a later line claims it.
	candidate, date0 := TagDate(strings.TrimSpace(rawLines[0]))

	fields := CellFields{
		Parent1:     candidate,
		DateOfBirth: date0,
	}

	for _, line := range rawLines[1:] {
		name, date := TagDate(strings.TrimSpace(line))
		if date != "" {
			fields.DateOfBirth = date
			fields.SubjectName = name
		} else {
			fields.Parent2 = name
		}
	}

	// No line beyond line 0 carried a date: line 0 is the subject and
	// the last remainder line is the only parent.
	if fields.SubjectName == "" {
		fields.SubjectName = candidate
		fields.Parent1 = fields.Parent2
		fields.Parent2 = ""
	}

	return fields, true
}
