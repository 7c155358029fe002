// Package discover enumerates candidate registry PDFs under a root
// directory.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// denylist marks filenames that never hold final records: provisional
// registrations, eliminated entries (several spellings occur in the
// archives, including the "Elimnado" typo) and draft terms.
var denylist = []string{
	"provisório",
	"eliminados",
	"elimnado",
	"eliminado",
	"termo",
}

// PDFs walks root recursively and returns every .pdf file whose name
// does not contain a denylist marker. Matching is case-insensitive on
// the base name. The order follows the lexical directory walk.
func PDFs(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".pdf") {
			return nil
		}
		for _, marker := range denylist {
			if strings.Contains(name, marker) {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	return paths, nil
}
