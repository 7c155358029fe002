package registry

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Config holds the full registo configuration.
type Config struct {
	DBPath     string `yaml:"db_path"`
	Table      string `yaml:"table"`
	ExportXLSX bool   `yaml:"export_xlsx"`
	MaxFileMB  int    `yaml:"max_file_mb"`
	RunLogDays int    `yaml:"runlog_days"`
	LogLevel   string `yaml:"log_level"`
	Listen     string `yaml:"listen"`
}

// tableNamePattern whitelists table identifiers; the name is
// interpolated into CREATE TABLE / INSERT statements.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		DBPath:     "registo.db",
		Table:      "cidadaos",
		MaxFileMB:  100,
		RunLogDays: 30,
		LogLevel:   "info",
		Listen:     ":8086",
	}
}

// LoadConfig reads and parses a YAML config file. Returns
// DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if !tableNamePattern.MatchString(c.Table) {
		return fmt.Errorf("table %q is not a valid identifier", c.Table)
	}
	if c.MaxFileMB <= 0 {
		return fmt.Errorf("max_file_mb must be > 0")
	}
	if c.RunLogDays < 0 {
		return fmt.Errorf("runlog_days must be >= 0")
	}
	return nil
}

// MaxFileBytes returns the file size limit in bytes.
func (c *Config) MaxFileBytes() int64 {
	return int64(c.MaxFileMB) * 1024 * 1024
}
