// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists one row per written output file in a SQLite
// database, so past runs can be inspected without keeping report files
// around.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded conversion.
type Entry struct {
	ID        int64
	Source    string
	Output    string
	Kind      string
	Caption   string
	CreatedAt time.Time
}

// Store manages the conversion history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source TEXT NOT NULL,
		output TEXT NOT NULL,
		kind TEXT NOT NULL,
		caption TEXT,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record inserts one conversion row.
func (s *Store) Record(source, output, kind, caption string) error {
	_, err := s.db.Exec(
		`INSERT INTO conversions (source, output, kind, caption, created_at) VALUES (?, ?, ?, ?, ?)`,
		source, output, kind, caption, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// Recent returns the newest limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, source, output, kind, caption, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Source, &e.Output, &e.Kind, &e.Caption, &created); err != nil {
			return nil, fmt.Errorf("scanning conversion row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading conversion rows: %w", err)
	}
	return entries, nil
}
