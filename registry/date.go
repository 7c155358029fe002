package registry

import (
	"regexp"
	"strings"
)

// datePattern matches the DD-DD-DDDD token the registries print for
// birth dates. The digits are deliberately not validated as a real
// calendar date: the scans contain typos like 31-02 and those rows
// must still load.
var datePattern = regexp.MustCompile(`\d{2}-\d{2}-\d{4}`)

// TagDate splits a date token off a line of cell text. It returns the
// line with the first date occurrence removed once and trimmed, plus
// the token itself. When no token is present the line comes back
// unchanged (not trimmed) with an empty date; absence of a date is a
// normal outcome, not an error.
func TagDate(line string) (remainder, date string) {
	date = datePattern.FindString(line)
	if date == "" {
		return line, ""
	}
	remainder = strings.TrimSpace(strings.Replace(line, date, "", 1))
	return remainder, date
}
