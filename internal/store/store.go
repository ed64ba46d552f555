package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"datebook/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "datebook.db"

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("entry not found")

// Store reads and writes the datebook's SQLite database under Dir. The zero
// value is not usable; fill Dir (see DefaultDir).
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .datebook
// directory, so a repo can keep its own datebook.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".datebook")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir prefers a discovered .datebook above the working directory and
// otherwise falls back to ~/.datebook.
func DefaultDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		if found, ok := DiscoverDir(cwd); ok {
			return found, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datebook"), nil
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store dir not set")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(filepath.Clean(s.Dir), dbFileName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite registers driver name "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage.
	// WAL enables one writer + many readers; busy_timeout helps avoid
	// "database is locked" flakiness when the TUI and CLI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			when_date TEXT NOT NULL,
			when_time TEXT NOT NULL,
			done INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_when ON entries(when_date, when_time);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// List loads every entry, sorted for display: dated entries first in time
// order, undated after them, ties broken by creation stamp then id.
func (s Store) List(ctx context.Context) ([]model.Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT json FROM entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Entry
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e model.Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	SortEntries(out)
	return out, nil
}

// Get returns one entry by id, or ErrNotFound.
func (s Store) Get(ctx context.Context, id string) (model.Entry, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Entry{}, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRowContext(ctx, `SELECT json FROM entries WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, ErrNotFound
	}
	if err != nil {
		return model.Entry{}, err
	}
	var e model.Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		return model.Entry{}, fmt.Errorf("decode entry: %w", err)
	}
	return e, nil
}

// Put inserts or replaces one entry.
func (s Store) Put(ctx context.Context, e model.Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id not set")
	}
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, insertEntrySQL, insertEntryArgs(e)...)
	return err
}

// Delete removes one entry by id, or reports ErrNotFound.
func (s Store) Delete(ctx context.Context, id string) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceAll swaps the whole entries table for the given set in one
// transaction. Used by import-style flows and tests.
func (s Store) ReplaceAll(ctx context.Context, entries []model.Entry) error {
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return err
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, insertEntrySQL, insertEntryArgs(e)...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

const insertEntrySQL = `INSERT OR REPLACE INTO entries(id, title, when_date, when_time, done, json, updated_at_unixms)
	VALUES(?, ?, ?, ?, ?, ?, ?)`

// insertEntryArgs keeps the denormalized columns (title, when, done) in step
// with the json blob; the blob stays the source of truth on read.
func insertEntryArgs(e model.Entry) []any {
	raw, _ := json.Marshal(e)
	whenDate, whenTime := "", ""
	if e.When != nil {
		whenDate = strings.TrimSpace(e.When.Date)
		if e.When.Time != nil {
			whenTime = strings.TrimSpace(*e.When.Time)
		}
	}
	return []any{
		e.ID, e.Title, whenDate, whenTime, boolToInt(e.Done),
		string(raw), time.Now().UTC().UnixMilli(),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SortEntries orders entries the way every surface shows them: dated before
// undated, then by resolved time, creation stamp, and id.
func SortEntries(entries []model.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, iOK := entries[i].When.Resolve()
		tj, jOK := entries[j].When.Resolve()
		if iOK != jOK {
			return iOK
		}
		if iOK && jOK && !ti.Equal(tj) {
			return ti.Before(tj)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
