// Package donecache provides a small durable cache of done marks on local
// disk. It mirrors every toggle so a user's checkmark survives a failed
// remote write; the board reads from it only when the remote done map is
// empty or unavailable.
package donecache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/dokim/shuttleboard/internal/domain"
)

// Cache is a SQLite-backed done-mark store.
type Cache struct {
	db *sql.DB
}

// Open creates (or opens) the cache database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Cache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("donecache.Open: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("donecache.Open: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS done_marks (
			line_key  TEXT PRIMARY KEY,
			marked_at INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("donecache.Open: create schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Load returns all cached done marks.
func (c *Cache) Load(ctx context.Context) (domain.DoneMap, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT line_key, marked_at FROM done_marks")
	if err != nil {
		return nil, fmt.Errorf("donecache.Cache.Load: %w", err)
	}
	defer rows.Close()

	out := domain.DoneMap{}
	for rows.Next() {
		var key string
		var ts int64
		if err := rows.Scan(&key, &ts); err != nil {
			return nil, fmt.Errorf("donecache.Cache.Load: scan: %w", err)
		}
		out[key] = ts
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("donecache.Cache.Load: rows: %w", err)
	}
	return out, nil
}

// Put records a done mark, replacing any existing timestamp for the key.
func (c *Cache) Put(ctx context.Context, lineKey string, markedAt int64) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO done_marks (line_key, marked_at) VALUES (?, ?) ON CONFLICT (line_key) DO UPDATE SET marked_at = excluded.marked_at",
		lineKey, markedAt,
	)
	if err != nil {
		return fmt.Errorf("donecache.Cache.Put: %w", err)
	}
	return nil
}

// Delete removes a done mark. Missing keys are a no-op.
func (c *Cache) Delete(ctx context.Context, lineKey string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM done_marks WHERE line_key = ?", lineKey)
	if err != nil {
		return fmt.Errorf("donecache.Cache.Delete: %w", err)
	}
	return nil
}
