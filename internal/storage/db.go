// Package storage provides database abstractions.
package storage

import "errors"

// ErrNotFound is returned when a requested key does not exist.
var ErrNotFound = errors.New("key not found")

// Txn is a read-write view inside an atomic transaction. All writes
// staged through a Txn are applied together on commit or discarded
// together on error.
type Txn interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
}

// DB is the interface for key-value storage.
type DB interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
	Has(key []byte) (bool, error)
	// Update runs fn inside a read-write transaction. If fn returns a
	// non-nil error, every write staged by fn is discarded; otherwise
	// all writes commit atomically.
	Update(fn func(txn Txn) error) error
	// View runs fn inside a read-only transaction.
	View(fn func(txn Txn) error) error
	// ForEach iterates over all keys with the given prefix.
	// The callback receives a copy of the key and value.
	// Return a non-nil error from fn to stop iteration early.
	ForEach(prefix []byte, fn func(key, value []byte) error) error
	Close() error
}
