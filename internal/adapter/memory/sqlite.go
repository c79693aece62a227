package memory

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteFile is the memory database name under <workspace>/memory.
const SQLiteFile = "brain.db"

// Entry is one stored memory as shown by the dashboard.
type Entry struct {
	Key       string
	Category  string
	Content   string
	CreatedAt time.Time
}

// SQLiteStore reads and writes the sqlite memory database.
type SQLiteStore struct {
	db *sql.DB
	// noTable is set by OpenSQLiteReader when the memories table is absent.
	noTable bool
}

// SQLitePath returns the database location for a workspace.
func SQLitePath(workspaceDir string) string {
	return filepath.Join(workspaceDir, "memory", SQLiteFile)
}

// OpenSQLiteStore opens (or creates) the database at dbPath and runs the
// schema migration.
func OpenSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	// WAL mode for better concurrent reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate memory db: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenSQLiteReader opens an existing database read-only. It sets no pragma
// and runs no migration, so the file and its journal mode are left as found.
func OpenSQLiteReader(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+filepath.ToSlash(dbPath)+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	var n int
	err = db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'memories'",
	).Scan(&n)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspect memory db: %w", err)
	}
	return &SQLiteStore{db: db, noTable: n == 0}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS memories (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			key        TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT 'core',
			content    TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Store inserts an entry. A zero CreatedAt is stamped with the current time.
func (s *SQLiteStore) Store(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	if e.Category == "" {
		e.Category = "core"
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO memories (key, category, content, created_at) VALUES (?, ?, ?, ?)",
		e.Key, e.Category, e.Content, e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert memory: %w", err)
	}
	return nil
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if s.noTable {
		return 0, nil
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM memories").Scan(&n); err != nil {
		return 0, fmt.Errorf("count memories: %w", err)
	}
	return n, nil
}

// Recent returns up to limit entries, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s.noTable {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, category, content, created_at FROM memories ORDER BY created_at DESC, id DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query memories: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.Key, &e.Category, &e.Content, &created); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
