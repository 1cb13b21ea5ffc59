package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"someday/internal/errors"
	"someday/internal/repository"
	"someday/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const upsertEntryQuery = `
	INSERT INTO kv_entries (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// SQLiteRepository implements repository.Repository on a single sqlite table
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// New creates a new SQLite repository instance and applies pending migrations
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewPersistenceError("open database", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewPersistenceError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Get retrieves the value stored under key
func (r *SQLiteRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	entry, err := r.GetEntry(ctx, key)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return entry.Value, true, nil
}

// GetEntry retrieves the full row stored under key
func (r *SQLiteRepository) GetEntry(ctx context.Context, key string) (*Entry, error) {
	query := `SELECT key, value, updated_at FROM kv_entries WHERE key = ?`
	return QuerySingle(ctx, r.db, query, ScanEntry, "entry", key, key)
}

// Set overwrites the value stored under key
func (r *SQLiteRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetAll(ctx, map[string][]byte{key: value})
}

// SetAll overwrites all entries in one transaction
func (r *SQLiteRepository) SetAll(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updatedAt := FormatTimeForDB(r.now())
	return WithTransaction(ctx, r.db, "write entries", func(tx *sql.Tx) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, upsertEntryQuery, key, string(entries[key]), updatedAt); err != nil {
				return err
			}
		}
		return nil
	})
}
