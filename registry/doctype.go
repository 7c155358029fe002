package registry

import "strings"

// ClassifyDocument labels a source file from its name. The stems match
// the morphological root so singular and plural variants both hit; the
// national stem is checked first and wins when a name contains both.
func ClassifyDocument(fileName string) DocType {
	name := strings.ToLower(fileName)
	switch {
	case strings.Contains(name, "naciona"):
		return TypeNational
	case strings.Contains(name, "estrangeiro"):
		return TypeForeign
	default:
		return TypeUnknown
	}
}
