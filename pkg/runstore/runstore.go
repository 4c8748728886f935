// Package runstore persists completed clustering runs so reviewers can
// revisit earlier batches. The clustering pipeline itself never touches
// storage; the CLI (or any other caller) decides what to keep.
//
// Runs are stored under an opaque run ID with msgpack-encoded values.
// A BadgerDB-backed implementation covers on-disk use and an in-memory
// implementation covers tests.
package runstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aviarylab/chirp/pkg/cluster"
)

// ErrNotFound is returned when a run ID does not exist in the store.
var ErrNotFound = errors.New("runstore: run not found")

// Run is one persisted clustering invocation.
type Run struct {
	// ID is the store-unique run identifier.
	ID string `json:"id" msgpack:"id"`

	// CreatedAt is when the run completed.
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`

	// Source describes where the batch came from (e.g. a features file
	// path). Informational only.
	Source string `json:"source,omitempty" msgpack:"source,omitempty"`

	// Snippets is the input batch size before validity filtering.
	Snippets int `json:"snippets" msgpack:"snippets"`

	// Result is the full pipeline output for the batch.
	Result *cluster.Result `json:"result" msgpack:"result"`
}

// Store is the interface for run persistence.
//
// All implementations must be safe for concurrent use.
type Store interface {
	// Put stores a run. Overwrites any run with the same ID.
	Put(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns ErrNotFound if not present.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns all stored runs ordered by descending CreatedAt
	// (newest first).
	List(ctx context.Context) ([]*Run, error)

	// Delete removes a run. No error if the ID does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases resources held by the store.
	Close() error
}

// NewID returns a fresh run identifier.
func NewID() string {
	return uuid.NewString()
}
