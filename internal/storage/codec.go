// Package storage implements the file-backed task repository: two
// interchangeable codecs (JSON and XML) composed with the atomic file
// writer into whole-file read-modify-write cycles.
package storage

import "github.com/taskdeck/taskdeck/internal/task"

// Store is the in-memory mapping of task ID to task backing one
// repository instance. IDs are unique by construction.
type Store map[string]*task.Task

// Codec is a reversible mapping between a Store and one on-disk byte
// layout. Decoding the result of Encode yields an equivalent Store.
type Codec interface {
	// Name is the encoding name used by the selector and config.
	Name() string

	// Extension is the store file extension, including the dot.
	Extension() string

	// Decode parses raw file content into a Store. Empty input yields
	// an empty Store; malformed input yields a REPOSITORY_ERROR.
	Decode(data []byte) (Store, error)

	// Encode serializes the full Store for writing to disk.
	Encode(store Store) ([]byte, error)
}
