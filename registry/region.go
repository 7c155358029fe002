package registry

import (
	"regexp"
	"strings"
)

// labelPattern locates the "Concelho : ... Posto : ..." header the
// registries print once per document. The character class admits the
// accented Latin letters that occur in Portuguese place names, in both
// cases — some documents print the labels fully capitalised, like the
// table header itself. The Posto capture additionally admits hyphens
// (e.g. "São João-Baptista").
var labelPattern = regexp.MustCompile(
	`Concelho\s*:\s*([\w\sçÇáéíóúàèìòùãõâêîôûÁÉÍÓÚÀÈÌÒÙÃÕÂÊÎÔÛäëïöüÄËÏÖÜñÑ]+)\s*Posto\s*:\s*([\w\sçÇáéíóúàèìòùãõâêîôûÁÉÍÓÚÀÈÌÒÙÃÕÂÊÎÔÛäëïöüÄËÏÖÜñÑ-]+)`)

// ExtractLabels pulls the Concelho/Posto labels out of a page's full
// text. Pages without the header return empty Labels; that is not an
// error, most pages only carry table content.
func ExtractLabels(pageText string) Labels {
	m := labelPattern.FindStringSubmatch(pageText)
	if m == nil {
		return Labels{}
	}

	// The layout leaves a stray trailing "N" marker after the Posto
	// value on some documents. Fixed artifact rule, not validation.
	posto := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(m[2]), "N"))

	return Labels{
		Concelho: strings.TrimSpace(m[1]),
		Posto:    posto,
	}
}
