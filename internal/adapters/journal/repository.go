// internal/adapters/journal/repository.go
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout tiene ancho fijo para que applied_at ordene como texto.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Repository persiste el journal en SQLite.
type Repository struct {
	db *sql.DB
}

var _ ports.JournalRepository = (*Repository)(nil)

// Open abre (o crea) la base de datos en path y aplica el schema.
// ":memory:" da un journal efímero.
func Open(path string) (*Repository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrapf(err, "create journal dir for %s", path)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal %s", path)
	}
	// un único writer; también mantiene viva la base ":memory:"
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "journal %s", pragma)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create journal schema")
	}
	return &Repository{db: db}, nil
}

// Record inserta una entrada. AppliedAt vacío se rellena con la hora actual.
func (r *Repository) Record(ctx context.Context, e ports.JournalEntry) error {
	if e.AppliedAt.IsZero() {
		e.AppliedAt = time.Now()
	}
	attrs := ""
	if len(e.Attrs) > 0 {
		b, err := json.Marshal(e.Attrs)
		if err != nil {
			return errors.Wrap(err, "encode attrs")
		}
		attrs = string(b)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mutations (store, op, contact_id, field, info_id, value, attrs, error, applied_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Store, string(e.Op), e.ContactID, e.Field, e.InfoID, e.Value, attrs, e.Err,
		e.AppliedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return errors.Wrap(err, "record mutation")
	}
	return nil
}

// List devuelve las entradas más recientes primero.
func (r *Repository) List(ctx context.Context, filter ports.JournalFilter) ([]ports.JournalEntry, error) {
	var (
		where []string
		args  []any
	)
	if filter.ContactID != "" {
		where = append(where, "contact_id = ?")
		args = append(args, filter.ContactID)
	}
	if !filter.Since.IsZero() {
		where = append(where, "applied_at >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	query := `SELECT id, store, op, contact_id, field, info_id, value, attrs, error, applied_at FROM mutations`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list journal")
	}
	defer rows.Close()

	var entries []ports.JournalEntry
	for rows.Next() {
		var (
			e         ports.JournalEntry
			op        string
			attrs     string
			appliedAt string
		)
		if err := rows.Scan(&e.ID, &e.Store, &op, &e.ContactID, &e.Field, &e.InfoID, &e.Value, &attrs, &e.Err, &appliedAt); err != nil {
			return nil, errors.Wrap(err, "scan journal entry")
		}
		e.Op = ports.MutationOp(op)
		if attrs != "" {
			if err := json.Unmarshal([]byte(attrs), &e.Attrs); err != nil {
				return nil, errors.Wrapf(errors.ErrInvalidResponse, "journal entry %d attrs: %v", e.ID, err)
			}
		}
		if e.AppliedAt, err = time.Parse(timeLayout, appliedAt); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidResponse, "journal entry %d time: %v", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
