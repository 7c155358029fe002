package docpipe

// Document is the extracted view of one PDF file.
type Document struct {
	Path    string             `json:"path"`
	Pages   []Page             `json:"pages"`
	Quality *ExtractionQuality `json:"quality,omitempty"`
}

// Page holds one page's full text and its reconstructed table rows.
// Err records a page-level extraction fault; the remaining pages of
// the document stay usable.
type Page struct {
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
	Err    error   `json:"-"`
}

// Table is a cluster of reconstructed rows. The source tables carry
// all logical fields packed into the first column, so each row holds a
// single cell whose sub-fields are joined by newlines.
type Table struct {
	Rows [][]string `json:"rows"`
}
