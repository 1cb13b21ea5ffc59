// Package repository defines the durable key-value store the persistence
// adapter writes its collections to. Values are opaque serialized text.
package repository

import "context"

// Repository is a durable key-value store.
type Repository interface {
	// Get returns the value stored under key. A missing key is reported
	// with ok == false and a nil error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set overwrites the value stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// SetAll overwrites every entry in one atomic write: either all
	// entries are stored or none are.
	SetAll(ctx context.Context, entries map[string][]byte) error

	// Close releases the underlying resources.
	Close() error
}
