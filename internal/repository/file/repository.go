// Package file stores the key-value entries in one JSON document on disk.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"someday/internal/errors"
	"someday/internal/repository"
)

// FileRepository keeps every entry in memory and rewrites the whole
// document on each write. Values must be valid JSON.
type FileRepository struct {
	mu      sync.RWMutex
	path    string
	entries map[string]json.RawMessage
}

var _ repository.Repository = (*FileRepository)(nil)

// New opens (or prepares to create) the document at path
func New(path string, dirPerm os.FileMode) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, errors.NewPersistenceError("create data directory", err)
	}
	r := &FileRepository{
		path:    path,
		entries: map[string]json.RawMessage{},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) load() error {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.NewPersistenceError("read "+r.path, err)
	}
	if len(b) == 0 {
		return nil
	}

	var loaded map[string]json.RawMessage
	if err := json.Unmarshal(b, &loaded); err != nil {
		return errors.NewPersistenceError("decode "+r.path, err)
	}
	if loaded != nil {
		r.entries = loaded
	}
	return nil
}

// Get returns the raw JSON stored under key
func (r *FileRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
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
func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	return r.SetAll(ctx, map[string][]byte{key: value})
}

// SetAll writes a new document containing the merged entries. The on-disk
// file is replaced by rename, so readers never observe a partial write.
func (r *FileRepository) SetAll(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return errors.NewPersistenceError("write entries", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]json.RawMessage, len(r.entries)+len(entries))
	for k, v := range r.entries {
		next[k] = v
	}
	for k, v := range entries {
		if !json.Valid(v) {
			return errors.NewPersistenceError("encode "+k, fmt.Errorf("value is not valid JSON"))
		}
		next[k] = append(json.RawMessage(nil), v...)
	}

	if err := r.writeLocked(next); err != nil {
		return err
	}
	r.entries = next
	return nil
}

func (r *FileRepository) writeLocked(doc map[string]json.RawMessage) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewPersistenceError("encode document", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errors.NewPersistenceError("create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewPersistenceError("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("close temp file", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return errors.NewPersistenceError("replace "+r.path, err)
	}
	return nil
}

// Close is a no-op; every write is already on disk
func (r *FileRepository) Close() error {
	return nil
}
