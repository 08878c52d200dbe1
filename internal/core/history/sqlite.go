package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite stores history in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath.
// ":memory:" gives a private in-memory database.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// a second pooled connection would see a different :memory: database
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			id        TEXT NOT NULL UNIQUE,
			timestamp INTEGER NOT NULL,
			input     TEXT NOT NULL,
			output    TEXT NOT NULL,
			type      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	`)
	if err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}
	return nil
}

const selectItems = `
	SELECT id, timestamp, input, output, type
	FROM history
	ORDER BY seq DESC`

func (s *SQLite) Load(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, selectItems)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// Save replaces the stored list with items.
func (s *SQLite) Save(ctx context.Context, items []Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting history transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	// oldest first so seq order matches list order
	for i := len(items) - 1; i >= 0; i-- {
		if err := insert(ctx, tx, items[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLite) Append(ctx context.Context, item Item) error {
	return insert(ctx, s.db, item)
}

func (s *SQLite) Evict(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("evicting history: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, it Item) error {
	r := toRecord(it)
	_, err := db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, input, output, type)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Timestamp, r.Input, r.Output, string(r.Type),
	)
	if err != nil {
		return fmt.Errorf("inserting history: %w", err)
	}
	return nil
}

func scanItems(rows *sql.Rows) ([]Item, error) {
	var items []Item
	for rows.Next() {
		var r record
		var kind string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Input, &r.Output, &kind); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		r.Type = Kind(kind)
		items = append(items, r.item())
	}
	return items, rows.Err()
}
