package messagestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// SQLiteProvider stores entries in a SQLite database file. Expiry is
// tracked as a unix timestamp column and enforced lazily on access.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens (creating if needed) the database at path.
// Use ":memory:" for a throwaway in-process database.
func NewSQLiteProvider(path string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS messages (key TEXT PRIMARY KEY, expires INTEGER, state BLOB)")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create messages table: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// Name implements Provider.
func (p *SQLiteProvider) Name() string {
	return "sqlite"
}

// Get implements Provider.
func (p *SQLiteProvider) Get(ctx context.Context, key string) ([]byte, error) {
	var expires int64
	var data []byte
	err := p.db.QueryRowContext(ctx,
		"SELECT expires, state FROM messages WHERE key = ?", key).Scan(&expires, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("sqlite get: %w", err)
	}
	if expires > 0 && time.Now().Unix() > expires {
		_ = p.Delete(ctx, key)
		return nil, ErrNotFound
	}
	return data, nil
}

// Put implements Provider.
func (p *SQLiteProvider) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expires int64
	if ttl > 0 {
		expires = time.Now().Add(ttl).Unix()
	}
	_, err := p.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO messages (key, expires, state) VALUES (?, ?, ?)", key, expires, data)
	if err != nil {
		return fmt.Errorf("sqlite put: %w", err)
	}
	return nil
}

// Delete implements Provider.
func (p *SQLiteProvider) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, "DELETE FROM messages WHERE key = ?", key); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}
	return nil
}

// Close implements Provider.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
