package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/baus/internal/score"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - scores(line, score)
const currentSchemaVersion = 1

// SQLiteStore keeps the mapping in a SQLite database, one row per line.
// The connection is opened lazily on first use and held until Close.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLiteStore creates a SQLiteStore for the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Exists() (bool, error) {
	return fileExists(s.path)
}

// Initialize creates the database file and schema if needed.
// Safe to call on an existing database.
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	return s.connect(ctx)
}

func (s *SQLiteStore) Load(ctx context.Context) (score.Scores, error) {
	if err := s.connect(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT line, score FROM scores ORDER BY line`)
	if err != nil {
		return nil, s.classify("load scores", err)
	}
	defer rows.Close()

	scores := score.New()
	for rows.Next() {
		var line string
		var value int64
		if err := rows.Scan(&line, &value); err != nil {
			return nil, s.classify("scan score", err)
		}
		scores.Set(line, value)
	}
	if err := rows.Err(); err != nil {
		return nil, s.classify("load scores", err)
	}
	return scores, nil
}

// Save replaces every row with the contents of scores inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, scores score.Scores) error {
	if err := s.connect(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.classify("save scores: begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return s.classify("save scores: clear", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO scores (line, score) VALUES (?, ?)`)
	if err != nil {
		return s.classify("save scores: prepare", err)
	}
	defer stmt.Close()

	for _, line := range scores.Keys() {
		if _, err := stmt.ExecContext(ctx, line, scores.Get(line)); err != nil {
			return s.classify("save scores: insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.classify("save scores: commit", err)
	}
	return nil
}

// Close closes the database connection if one was opened.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// connect opens the database (creating the file if needed), applies pragmas
// and the schema. It is a no-op once connected.
func (s *SQLiteStore) connect(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		return s.classify("open database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return s.classify("connect to database", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return s.classify("apply pragmas", err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return s.classify("apply schema", err)
	}

	s.db = db
	return nil
}

// classify maps driver errors onto the store sentinels. A file that is not a
// SQLite database (or is corrupt) is a format error; everything else is I/O.
func (s *SQLiteStore) classify(op string, err error) error {
	if errors.Is(err, ErrFormat) || errors.Is(err, ErrIO) {
		return fmt.Errorf("%s: %s: %w", s.path, op, err)
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrNotADB, sqlite3.ErrCorrupt:
			return fmt.Errorf("%w: %s: %s: %v", ErrFormat, s.path, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %s: %v", ErrIO, s.path, op, err)
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and checks the schema version.
// This function is idempotent.
func applySchema(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("%w: schema version %d is newer than supported version %d",
			ErrFormat, version, currentSchemaVersion)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if version < currentSchemaVersion {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLiteStore) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
