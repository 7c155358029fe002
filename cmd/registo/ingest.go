package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/registolab/registo/dbopen"
	"github.com/registolab/registo/discover"
	"github.com/registolab/registo/docpipe"
	"github.com/registolab/registo/export"
	"github.com/registolab/registo/registry"
	"github.com/registolab/registo/runlog"
	"github.com/registolab/registo/store"
)

func ingestCmd() *cobra.Command {
	var cfgPath string
	var excel bool

	cmd := &cobra.Command{
		Use:   "ingest [root]",
		Short: "Extract records from every PDF under a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			slog.SetDefault(logger)

			// The operator prompts mirror the tool this replaces;
			// flags and config skip them for scripted runs. One
			// shared reader, so a buffered first read cannot eat the
			// second prompt's line.
			stdin := bufio.NewReader(os.Stdin)
			root := ""
			if len(args) > 0 {
				root = args[0]
			} else {
				root = prompt(stdin, "Insira a pasta raiz dos PDF: ")
			}
			if root == "" {
				return fmt.Errorf("root directory is required")
			}

			exportOn := cfg.ExportXLSX
			if cmd.Flags().Changed("excel") {
				exportOn = excel
			} else if !exportOn {
				ans := prompt(stdin, "Extrair dados para excel? (sim/não): ")
				exportOn = strings.EqualFold(ans, "sim")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			st, err := store.New(db, cfg.Table)
			if err != nil {
				return err
			}
			if err := st.Init(ctx); err != nil {
				return err
			}

			events := runlog.New(db)
			if err := events.Init(ctx); err != nil {
				return err
			}
			if err := events.Cleanup(ctx, cfg.RunLogDays); err != nil {
				logger.Warn("run log cleanup failed", "error", err)
			}

			files, err := discover.PDFs(root)
			if err != nil {
				return err
			}

			pipe := docpipe.New(docpipe.Config{
				MaxFileSize: cfg.MaxFileBytes(),
				Logger:      logger,
			})

			opts := []registry.RunnerOption{
				registry.WithEvents(events),
				registry.WithLogger(logger),
			}
			if exportOn {
				opts = append(opts, registry.WithExporter(registry.ExporterFunc(export.WriteXLSX)))
			}

			runner := registry.NewRunner(pipe, st, opts...)
			res, err := runner.Run(ctx, files)
			switch {
			case errors.Is(err, registry.ErrNoDocuments):
				fmt.Printf("Nenhum PDF encontrado em %s.\n", root)
				return nil
			case err != nil:
				// Interrupted: report what got done before bailing.
				fmt.Printf("Processamento interrompido: %d registos de %d documentos.\n",
					res.TotalRecords(), len(res.Outcomes))
				return err
			}

			fmt.Printf("Processamento concluído: %d registos de %d documentos (%d com falha).\n",
				res.TotalRecords(), len(res.Outcomes), res.FailedDocuments())
			if res.FailedDocuments() > 0 {
				fmt.Println("Detalhe das falhas na tabela processing_events.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	cmd.Flags().BoolVar(&excel, "excel", false, "write an .xlsx next to each source PDF")
	return cmd
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
