package docpipe

import "log/slog"

// Config configures the PDF extraction pipeline.
type Config struct {
	// MaxFileSize is the maximum file size to process (default: 100 MB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// MaxLineGap is the vertical distance in points below which two
	// text lines belong to the same table cell (default: 16).
	MaxLineGap float64 `json:"max_line_gap" yaml:"max_line_gap"`

	// MaxRowGap is the vertical distance in points below which two
	// cells belong to the same table; a larger gap starts a new
	// table cluster (default: 34).
	MaxRowGap float64 `json:"max_row_gap" yaml:"max_row_gap"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 100 * 1024 * 1024
	}
	if c.MaxLineGap <= 0 {
		c.MaxLineGap = 16
	}
	if c.MaxRowGap <= 0 {
		c.MaxRowGap = 34
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
