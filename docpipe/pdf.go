package docpipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// textRun is one positioned string from a page content stream.
type textRun struct {
	x, y float64
	text string
}

// extractPDF reads the PDF via pdfcpu and builds the page/table view.
// Page-level content stream faults are recorded per page, not raised.
func extractPDF(path string, cfg Config) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &Document{Path: path}
	var allText []string
	totalChars := 0

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		page := Page{Number: pageNr}

		runs, err := pageRuns(ctx, pageNr)
		if err != nil {
			page.Err = fmt.Errorf("page %d: %w", pageNr, err)
			doc.Pages = append(doc.Pages, page)
			continue
		}

		lines := clusterLines(runs, lineYTolerance)
		page.Text = linesText(lines)
		page.Tables = clusterTables(lines, cfg.MaxLineGap, cfg.MaxRowGap)

		totalChars += len([]rune(page.Text))
		if page.Text != "" {
			allText = append(allText, page.Text)
		}
		doc.Pages = append(doc.Pages, page)
	}

	if totalChars == 0 {
		return nil, ErrNoContent
	}

	var charsPerPage float64
	if ctx.PageCount > 0 {
		charsPerPage = float64(totalChars) / float64(ctx.PageCount)
	}
	doc.Quality = &ExtractionQuality{
		PageCount:      ctx.PageCount,
		CharsPerPage:   charsPerPage,
		PrintableRatio: computePrintableRatio(joinPages(allText)),
	}

	return doc, nil
}

func joinPages(pages []string) string {
	var sb bytes.Buffer
	for i, p := range pages {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p)
	}
	return sb.String()
}

// pageRuns extracts positioned text runs from one page's content stream.
func pageRuns(ctx *model.Context, pageNr int) ([]textRun, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return nil, fmt.Errorf("page content: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read content stream: %w", err)
	}
	return parseContentStream(data), nil
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// parseContentStream walks the text operators of a content stream,
// tracking the text position through Tm/Td/TD/TL/T* so that each shown
// string carries the coordinates the table clustering needs. Rotation
// and scaling in Tm are ignored; the registry scans are upright.
func parseContentStream(data []byte) []textRun {
	var runs []textRun

	var x, y float64
	leading := 12.0

	emit := func(line []byte, newline bool) {
		// ' advances the line once per operator, not per string.
		if newline {
			y -= leading
		}
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			text := decodePDFString(m[1])
			if text == "" {
				continue
			}
			runs = append(runs, textRun{x: x, y: y, text: text})
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.Equal(line, []byte("BT")):
			x, y = 0, 0

		case bytes.HasSuffix(line, []byte("Tm")):
			if ops := operands(line, 6); ops != nil {
				x, y = ops[4], ops[5]
			}

		case bytes.HasSuffix(line, []byte("Td")):
			if ops := operands(line, 2); ops != nil {
				x += ops[0]
				y += ops[1]
			}

		case bytes.HasSuffix(line, []byte("TD")):
			// TD also sets the leading to -ty.
			if ops := operands(line, 2); ops != nil {
				x += ops[0]
				y += ops[1]
				leading = -ops[1]
			}

		case bytes.HasSuffix(line, []byte("TL")):
			if ops := operands(line, 1); ops != nil {
				leading = ops[0]
			}

		case bytes.Equal(line, []byte("T*")):
			y -= leading

		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			emit(line, false)

		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			// ' moves to the next line before showing text.
			emit(line, true)
		}
	}

	return runs
}

// operands parses the trailing n numeric operands before the operator
// token. Returns nil when the line does not carry that many numbers.
func operands(line []byte, n int) []float64 {
	fields := bytes.Fields(line)
	if len(fields) < n+1 {
		return nil
	}
	out := make([]float64, n)
	start := len(fields) - 1 - n
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(string(fields[start+i]), 64)
		if err != nil {
			return nil
		}
		out[i] = v
	}
	return out
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb bytes.Buffer
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(raw[i])
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
						i++
						val = val*8 + int(raw[i]-'0')
						if i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7' {
							i++
							val = val*8 + int(raw[i]-'0')
						}
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}
