package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	apperrors "priorify/internal/errors"
	"priorify/internal/logging"

	_ "modernc.org/sqlite"
)

// Store is a durable mapping from string keys to JSON values, backed by a
// single sqlite table. It is the only component that touches the storage
// medium; all access happens from one logical thread of control, so no
// locking discipline is applied.
type Store struct {
	db *sql.DB
}

// Open creates a new store at the given database path, creating the parent
// directory and the schema as needed.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, apperrors.NewStorageError("open database", errors.New("db path is empty"))
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, apperrors.NewStorageError("create database directory", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return apperrors.NewStorageError("create schema", err)
	}
	return nil
}

// Load reads the JSON value stored under key and unmarshals it into out.
// It returns false when the key is absent or the stored value does not
// unmarshal cleanly; in that case the caller's default stands and out must
// be treated as undefined. Corruption is recovered locally, never surfaced
// as a failure. The returned error reports storage failures only.
func (s *Store) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, found, err := s.LoadRaw(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Treated as if never written.
		logging.Debugf("store: recovered from corrupt value: %v\n", apperrors.NewDeserializationError(key, err))
		return false, nil
	}
	return true, nil
}

// Save marshals value and writes it under key synchronously. The write is
// immediately visible to a subsequent Load on the same key.
func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return apperrors.NewStorageError("serialize value", err).WithContext("key", key)
	}
	return s.SaveRaw(ctx, key, raw)
}

// LoadRaw reads the exact bytes stored under key.
func (s *Store) LoadRaw(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT value FROM kv WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperrors.NewStorageError("load value", err).WithContext("key", key)
	}
	return []byte(value), true, nil
}

// SaveRaw writes the exact bytes under key, replacing any previous value.
func (s *Store) SaveRaw(ctx context.Context, key string, raw []byte) error {
	const query = `
	INSERT INTO kv (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		return apperrors.NewStorageError("save value", err).WithContext("key", key)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return apperrors.NewStorageError("delete value", err).WithContext("key", key)
	}
	return nil
}
