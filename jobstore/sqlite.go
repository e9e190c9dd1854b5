// Package jobstore provides a SQLite-backed implementation of
// transfer.JobStore, so imports are durable across process restarts without
// the surrounding platform's storage service.
package jobstore

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mediaport/mediaport/transfer"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_data (
	job_id TEXT NOT NULL,
	key    TEXT NOT NULL,
	value  TEXT NOT NULL,
	PRIMARY KEY (job_id, key)
);
CREATE TABLE IF NOT EXISTS job_streams (
	job_id TEXT NOT NULL,
	key    TEXT NOT NULL,
	bytes  BLOB NOT NULL,
	PRIMARY KEY (job_id, key)
);
`

// Store is a transfer.JobStore backed by a SQLite database. Values are stored
// as JSON keyed by (job id, key); staged byte streams as blobs.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the store at the given path. The path
// can be ":memory:" for an in-memory store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open job store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping job store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate job store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// FindData unmarshals the value stored under (jobID, key) into v.
func (s *Store) FindData(ctx context.Context, jobID uuid.UUID, key string, v any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM job_data WHERE job_id = ? AND key = ?`,
		jobID.String(), key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return transfer.ErrNoSuchData
	}
	if err != nil {
		return fmt.Errorf("failed to read job data: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("failed to decode job data: %w", err)
	}
	return nil
}

// CreateData stores a new value under (jobID, key); it fails if one exists.
func (s *Store) CreateData(ctx context.Context, jobID uuid.UUID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode job data: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO job_data (job_id, key, value) VALUES (?, ?, ?)`,
		jobID.String(), key, string(raw))
	if err != nil {
		return fmt.Errorf("failed to insert job data: %w", err)
	}
	return nil
}

// UpdateData stores a value under (jobID, key), replacing any existing one.
func (s *Store) UpdateData(ctx context.Context, jobID uuid.UUID, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode job data: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO job_data (job_id, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (job_id, key) DO UPDATE SET value = excluded.value`,
		jobID.String(), key, string(raw))
	if err != nil {
		return fmt.Errorf("failed to upsert job data: %w", err)
	}
	return nil
}

// GetStream opens the byte stream staged under (jobID, key).
func (s *Store) GetStream(ctx context.Context, jobID uuid.UUID, key string) (io.ReadCloser, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT bytes FROM job_streams WHERE job_id = ? AND key = ?`,
		jobID.String(), key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transfer.ErrNoSuchData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read job stream: %w", err)
	}
	return io.NopCloser(bytes.NewReader(blob)), nil
}

// PutStream stages bytes under (jobID, key), replacing any existing stream.
func (s *Store) PutStream(ctx context.Context, jobID uuid.UUID, key string, r io.Reader) error {
	blob, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO job_streams (job_id, key, bytes) VALUES (?, ?, ?)
		 ON CONFLICT (job_id, key) DO UPDATE SET bytes = excluded.bytes`,
		jobID.String(), key, blob)
	if err != nil {
		return fmt.Errorf("failed to upsert job stream: %w", err)
	}
	return nil
}
