package docpipe

import (
	"sort"
	"strings"
)

// lineYTolerance is the vertical slack in points within which two runs
// sit on the same text line.
const lineYTolerance = 2.0

// textLine is a horizontal cluster of positioned runs.
type textLine struct {
	y    float64
	text string
}

// clusterLines groups positioned runs into text lines by vertical
// proximity, left to right within a line, top to bottom across lines.
func clusterLines(runs []textRun, tol float64) []textLine {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]textRun, len(runs))
	copy(sorted, runs)
	// PDF user space grows upward: larger Y is higher on the page.
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var lines []textLine
	group := []textRun{sorted[0]}

	flush := func() {
		sort.SliceStable(group, func(i, j int) bool { return group[i].x < group[j].x })
		parts := make([]string, 0, len(group))
		for _, r := range group {
			if t := strings.TrimSpace(r.text); t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			lines = append(lines, textLine{y: group[0].y, text: strings.Join(parts, " ")})
		}
	}

	for _, r := range sorted[1:] {
		if group[0].y-r.y <= tol {
			group = append(group, r)
			continue
		}
		flush()
		group = []textRun{r}
	}
	flush()

	return lines
}

// linesText joins clustered lines into the page's full text.
func linesText(lines []textLine) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// clusterTables groups text lines into table rows by the vertical gaps
// between them. Lines closer than maxLineGap belong to the same cell
// (the registry tables pack several logical fields into one cell, one
// per line); a gap up to maxRowGap starts the next row; anything wider
// closes the table cluster. The approach follows geometric table
// detectors: no grid lines are consulted, only text positions.
func clusterTables(lines []textLine, maxLineGap, maxRowGap float64) []Table {
	if len(lines) == 0 {
		return nil
	}

	var tables []Table
	var rows [][]string
	cell := []string{lines[0].text}
	prevY := lines[0].y

	closeRow := func() {
		rows = append(rows, []string{strings.Join(cell, "\n")})
		cell = nil
	}
	closeTable := func() {
		closeRow()
		tables = append(tables, Table{Rows: rows})
		rows = nil
	}

	for _, l := range lines[1:] {
		gap := prevY - l.y
		prevY = l.y

		switch {
		case gap <= maxLineGap:
			cell = append(cell, l.text)
		case gap <= maxRowGap:
			closeRow()
			cell = []string{l.text}
		default:
			closeTable()
			cell = []string{l.text}
		}
	}
	closeTable()

	return tables
}
