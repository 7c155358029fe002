// Command registo batch-extracts civil-registry records from scanned
// registry PDFs into SQLite, with optional spreadsheet export and a
// small read-only HTTP API over the stored records.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/registolab/registo/registry"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "registo",
		Short: "Civil-registry PDF extraction",
		Long: `Registo walks a directory of scanned civil-registry PDFs, parses the
semi-tabular record cells (subject name, parent names, birth date,
Concelho/Posto labels) and loads them into SQLite, optionally writing
an .xlsx next to each source file.`,
		Version: version,
	}

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns the defaults when no config path is given.
func loadConfig(path string) (*registry.Config, error) {
	if path == "" {
		return registry.DefaultConfig(), nil
	}
	return registry.LoadConfig(path)
}

// newLogger builds a JSON slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
