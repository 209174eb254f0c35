// Package cache persists fetched feed bodies between runs.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection backing the feed cache.
type DB struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS feed_cache (
	url        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	expires_at TIMESTAMP NOT NULL
)`

// Open opens the cache database at path, creating it if needed.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init cache schema: %w", err)
	}

	return &DB{db}, nil
}

// Get returns the cached body for url if present and unexpired.
func (d *DB) Get(url string) ([]byte, bool, error) {
	var body []byte
	var expiresAt time.Time
	err := d.QueryRow(
		`SELECT body, expires_at FROM feed_cache WHERE url = ?`, url,
	).Scan(&body, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if time.Now().After(expiresAt) {
		return nil, false, nil
	}
	return body, true, nil
}

// Set stores body for url with the given ttl, replacing any prior entry.
func (d *DB) Set(url string, body []byte, ttl time.Duration) error {
	now := time.Now()
	_, err := d.Exec(
		`INSERT INTO feed_cache (url, body, created_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET
			body = excluded.body,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		url, body, now, now.Add(ttl),
	)
	return err
}
