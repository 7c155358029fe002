// Package registry extracts structured civil-registry records from the
// semi-tabular text of scanned registry PDFs.
//
// The source documents pack a subject's full name, one or two parent
// names and a birth date into a single unlabeled multi-line table cell,
// with the line order varying between records. The parser in this
// package disambiguates those lines, attaches the per-document
// Concelho/Posto labels, and hands flat Record batches to the sinks.
package registry

// DocType classifies a source document by its filename.
type DocType string

const (
	TypeNational DocType = "nacionais"
	TypeForeign  DocType = "estrangeiros"
	TypeUnknown  DocType = "unknown"
)

// Labels holds the administrative region labels printed on a document.
type Labels struct {
	Concelho string `json:"concelho"`
	Posto    string `json:"posto"`
}

// Complete reports whether both labels have been found. Once a
// document's labels are complete they are never replaced by later
// pages (sticky per document).
func (l Labels) Complete() bool {
	return l.Concelho != "" && l.Posto != ""
}

// Record is one extracted civil-registry entry. It is never mutated
// after assembly; the JSON tags mirror the relational column names.
type Record struct {
	SubjectName string  `json:"nome_completo"`
	Parent1     string  `json:"parent_1"`
	Parent2     string  `json:"parent_2"`
	DateOfBirth string  `json:"data_nascimento"`
	Concelho    string  `json:"concelho"`
	Posto       string  `json:"posto"`
	Type        DocType `json:"type"`
	SourceFile  string  `json:"file_name"`
}
