// Package store persists assembled civil-registry records to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/registolab/registo/dbopen"
	"github.com/registolab/registo/registry"
)

// identPattern whitelists the table name; it is interpolated into the
// statements below and must never carry external input verbatim.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is the relational record sink. Safe for the sequential batch;
// concurrent writers must serialise on SQLite's own locking.
type Store struct {
	db    *sql.DB
	table string
}

// New creates a Store writing to the given table.
func New(db *sql.DB, table string) (*Store, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("store: invalid table name %q", table)
	}
	return &Store{db: db, table: table}, nil
}

// Init creates the records table and its index if they do not exist.
// Idempotent; safe to call on every run.
func (s *Store) Init(ctx context.Context) error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			nome_completo   TEXT NOT NULL,
			parent_1        TEXT NOT NULL,
			parent_2        TEXT NOT NULL,
			data_nascimento TEXT NOT NULL,
			concelho        TEXT NOT NULL,
			posto           TEXT NOT NULL,
			type            TEXT NOT NULL,
			file_name       TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%[1]s_file_name ON %[1]s(file_name);`, s.table)

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: init %s: %w", s.table, err)
	}
	return nil
}

// InsertRecords appends one row per record inside a single
// transaction, so a failing document batch leaves no partial rows.
// SQLITE_BUSY (a concurrent serve reader) is retried transparently.
func (s *Store) InsertRecords(ctx context.Context, records []registry.Record) error {
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (nome_completo, parent_1, parent_2, data_nascimento, concelho, posto, type, file_name)
		VALUES (?,?,?,?,?,?,?,?)`, s.table)

	err := dbopen.RunTx(ctx, s.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx,
				r.SubjectName, r.Parent1, r.Parent2, r.DateOfBirth,
				r.Concelho, r.Posto, string(r.Type), r.SourceFile); err != nil {
				return fmt.Errorf("insert: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: insert records: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// List returns stored records ordered by insertion, newest last.
func (s *Store) List(ctx context.Context, limit, offset int) ([]registry.Record, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT nome_completo, parent_1, parent_2, data_nascimento, concelho, posto, type, file_name
		FROM %s ORDER BY id LIMIT ? OFFSET ?`, s.table), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByFile returns the records extracted from one source file.
func (s *Store) ListByFile(ctx context.Context, fileName string) ([]registry.Record, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT nome_completo, parent_1, parent_2, data_nascimento, concelho, posto, type, file_name
		FROM %s WHERE file_name = ? ORDER BY id`, s.table), fileName)
	if err != nil {
		return nil, fmt.Errorf("store: list by file: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]registry.Record, error) {
	var out []registry.Record
	for rows.Next() {
		var r registry.Record
		var typ string
		if err := rows.Scan(&r.SubjectName, &r.Parent1, &r.Parent2, &r.DateOfBirth,
			&r.Concelho, &r.Posto, &typ, &r.SourceFile); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		r.Type = registry.DocType(typ)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: rows: %w", err)
	}
	return out, nil
}
