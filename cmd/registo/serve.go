package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/registolab/registo/dbopen"
	"github.com/registolab/registo/registry"
	"github.com/registolab/registo/runlog"
	"github.com/registolab/registo/store"
)

func serveCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the extracted records over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.LogLevel)
			slog.SetDefault(logger)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll())
			if err != nil {
				return err
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

			r := chi.NewRouter()
			r.Get("/v1/health", healthHandler(st))
			r.Get("/v1/records", listRecordsHandler(st))
			r.Get("/v1/records/count", countRecordsHandler(st))
			r.Get("/v1/events", eventsHandler(events))

			srv := &http.Server{Addr: cfg.Listen, Handler: r}
			go func() {
				<-ctx.Done()
				shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
				defer stop()
				srv.Shutdown(shutdownCtx)
			}()

			logger.Info("registo API listening", "addr", cfg.Listen)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
	return cmd
}

func healthHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := st.Count(r.Context())
		status := "ok"
		if err != nil {
			status = "degraded"
			slog.Error("health count failed", "error", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  status,
			"records": n,
		})
	}
}

func listRecordsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 100)
		if limit > 1000 {
			limit = 1000
		}
		offset := queryInt(r, "offset", 0)

		var recs []registry.Record
		var err error
		if file := r.URL.Query().Get("file"); file != "" {
			recs, err = st.ListByFile(r.Context(), file)
		} else {
			recs, err = st.List(r.Context(), limit, offset)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			slog.Error("list records failed", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": recs})
	}
}

func countRecordsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := st.Count(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": n})
	}
}

func eventsHandler(events *runlog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 100)
		evts, err := events.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": evts})
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
