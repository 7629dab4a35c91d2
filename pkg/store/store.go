// Package store persists computed layouts so they can be fetched and
// rendered again by ID.
//
// Two backends are provided:
//   - [MemoryStore]: in-process storage for the CLI, development and tests
//   - [MongoStore]: a MongoDB collection for multi-instance API deployments
//
// IDs are random UUIDs assigned on Save. A stored result keeps its ID and
// creation time, so a fetched layout can be written back out verbatim.
package store

import (
	"context"

	"github.com/matzehuels/wraplayout/pkg/scene"
)

// Store saves and loads layout results.
type Store interface {
	// Save stores res under a new ID and returns the ID.
	Save(ctx context.Context, res scene.Result) (string, error)

	// Get loads a stored result. A missing ID is a NOT_FOUND error.
	Get(ctx context.Context, id string) (scene.Result, error)

	// Close releases resources held by the store.
	Close() error
}
