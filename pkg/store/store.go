// Package store persists computed layouts across process restarts, for a
// caller that wants to look up a previously rendered graph by name instead
// of recomputing it from the original graph every time (a dashboard, a
// documentation build, a history browser). This is layered above
// pkg/cache: cache is a content-addressed, TTL-bounded memoisation layer
// the pipeline's caller wraps around a single Run; store is a
// caller-addressed, durable record of named layouts a caller explicitly
// saves and later lists or retrieves.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/layerflow/pkg/ir"
)

// ErrNotFound is returned when a named entry does not exist.
var ErrNotFound = errors.New("store: entry not found")

// Entry is one saved layout: its IR document plus the metadata needed to
// list and retrieve it later.
type Entry struct {
	Name      string
	Graph     ir.Graph[int]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the persistence interface every backend in this package
// implements: an in-memory Store for tests and single-process tools, and
// a Mongo-backed Store for multi-instance deployments that need the
// history shared across processes.
type Store interface {
	// Save upserts an entry under name, stamping CreatedAt on first save and
	// UpdatedAt on every save.
	Save(ctx context.Context, name string, g ir.Graph[int]) error
	// Load retrieves an entry by name. Returns ErrNotFound if it doesn't exist.
	Load(ctx context.Context, name string) (Entry, error)
	// List returns every saved entry's name, most recently updated first.
	List(ctx context.Context) ([]string, error)
	// Delete removes an entry. Deleting a name that doesn't exist is not an error.
	Delete(ctx context.Context, name string) error
	Close() error
}
