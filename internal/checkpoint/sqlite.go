package checkpoint

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/akeefe/tagdex/pkg/types"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore creates a new SQLite checkpoint store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the persisted state for a document and its save timestamp
func (s *SQLiteStore) Load(ctx context.Context, docID string) (*types.RunState, time.Time, error) {
	query := `
		SELECT state, updated_at
		FROM checkpoints
		WHERE doc_id = ?
	`
	var blob []byte
	var updatedAt time.Time
	err := s.db.QueryRowContext(ctx, query, docID).Scan(&blob, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	rs, err := decodeState(blob)
	if err != nil {
		return nil, time.Time{}, err
	}
	return rs, updatedAt, nil
}

// Save persists the state for a document, replacing any prior state
func (s *SQLiteStore) Save(ctx context.Context, docID string, rs *types.RunState) error {
	blob, err := encodeState(rs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO checkpoints (doc_id, phase, state, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(doc_id) DO UPDATE SET
			phase = excluded.phase,
			state = excluded.state,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, docID, string(rs.Phase), blob, time.Now()); err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

// Delete discards the state for a document
func (s *SQLiteStore) Delete(ctx context.Context, docID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM checkpoints WHERE doc_id = ?", docID); err != nil {
		return fmt.Errorf("failed to delete checkpoint: %w", err)
	}
	return nil
}

// Stat returns the phase and save timestamp of a checkpoint without
// decoding the state blob. Used by status surfaces.
func (s *SQLiteStore) Stat(ctx context.Context, docID string) (types.Phase, time.Time, error) {
	var phase string
	var updatedAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT phase, updated_at FROM checkpoints WHERE doc_id = ?", docID).
		Scan(&phase, &updatedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to stat checkpoint: %w", err)
	}
	return types.Phase(phase), updatedAt, nil
}
