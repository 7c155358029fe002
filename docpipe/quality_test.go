package docpipe

import "testing"

func TestNeedsOCR(t *testing.T) {
	tests := []struct {
		name string
		q    ExtractionQuality
		want bool
	}{
		{"healthy", ExtractionQuality{CharsPerPage: 1200, PrintableRatio: 0.99}, false},
		{"near empty pages", ExtractionQuality{CharsPerPage: 10, PrintableRatio: 0.99}, true},
		{"garbage glyphs", ExtractionQuality{CharsPerPage: 1200, PrintableRatio: 0.5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.q.NeedsOCR(); got != tt.want {
				t.Errorf("NeedsOCR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputePrintableRatio(t *testing.T) {
	if got := computePrintableRatio(""); got != 1.0 {
		t.Errorf("empty text ratio = %v, want 1.0", got)
	}
	if got := computePrintableRatio("Maria Santos\n01-02-1990"); got != 1.0 {
		t.Errorf("clean text ratio = %v, want 1.0", got)
	}
	// Private-use-area glyphs count as garbage.
	if got := computePrintableRatio("ab\uE000\uE001"); got != 0.5 {
		t.Errorf("pua ratio = %v, want 0.5", got)
	}
}
