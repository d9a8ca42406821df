// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists cleaned infobox text so repeated queries for
// the same topic skip the network round trip.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/wikifacts/pkg/types"
)

// Store manages the infobox cache SQLite database.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens or creates the cache database at cfg.Path, creating the
// parent directory and schema as needed.
func Open(cfg types.CacheConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	s := &Store{db: db, ttl: ttl}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS infoboxes (
		topic TEXT PRIMARY KEY,
		page_title TEXT NOT NULL,
		text TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// Get returns the cached infobox text for topic. The second return is
// false on a miss or when the entry is older than the TTL.
func (s *Store) Get(ctx context.Context, topic string) (string, bool, error) {
	var text, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT text, fetched_at FROM infoboxes WHERE topic = ?`, Key(topic),
	).Scan(&text, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache: %w", err)
	}

	at, err := time.Parse(time.RFC3339Nano, fetchedAt)
	if err != nil {
		return "", false, fmt.Errorf("parsing cache timestamp: %w", err)
	}
	if time.Since(at) > s.ttl {
		return "", false, nil
	}
	return text, true, nil
}

// Put stores the cleaned infobox text for topic, replacing any
// previous entry.
func (s *Store) Put(ctx context.Context, topic, pageTitle, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO infoboxes (topic, page_title, text, fetched_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(topic) DO UPDATE SET
			page_title=excluded.page_title, text=excluded.text, fetched_at=excluded.fetched_at`,
		Key(topic), pageTitle, text, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Key normalizes a topic string into a cache key: lower-cased with
// whitespace runs collapsed to single spaces.
func Key(topic string) string {
	return strings.Join(strings.Fields(strings.ToLower(topic)), " ")
}
