// Package memory is a process-local repository for ephemeral sessions.
package memory

import (
	"context"
	"sync"

	"someday/internal/errors"
	"someday/internal/repository"
)

// Repository is a map guarded by a mutex
type Repository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ repository.Repository = (*Repository)(nil)

// New returns an empty in-memory repository
func New() *Repository {
	return &Repository{entries: map[string][]byte{}}
}

// Get returns a copy of the value stored under key
func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, errors.NewPersistenceError("get "+key, err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set overwrites the value stored under key
func (r *Repository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetAll(ctx, map[string][]byte{key: value})
}

// SetAll overwrites every entry under one lock
func (r *Repository) SetAll(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return errors.NewPersistenceError("write entries", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range entries {
		r.entries[k] = append([]byte(nil), v...)
	}
	return nil
}

// Close is a no-op
func (r *Repository) Close() error {
	return nil
}
