// Package store holds the errors shared by the storage backends in its
// subpackages.
package store

import "errors"

var (
	// ErrNotFound means no row matched the id and owner filter.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate means a unique constraint was violated.
	ErrDuplicate = errors.New("store: duplicate")
)
