// Package store persists named graphs for the HTTP API.
//
// Two implementations are provided: [MemoryStore] for development and
// testing, and [MongoStore] for deployments where graphs must survive
// restarts and be shared between instances. Graphs are stored in the
// interchange format of package graph, which carries BSON tags for the
// Mongo backend.
package store

import (
	"context"
	"errors"

	"github.com/matzehuels/cygraph/pkg/graph"
)

// ErrNotFound is returned when a graph with the requested ID does not exist.
var ErrNotFound = errors.New("graph not found")

// Store saves and retrieves graphs by ID.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put saves a graph under id, replacing any existing graph.
	Put(ctx context.Context, id string, g graph.Graph) error

	// Get retrieves the graph stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) (graph.Graph, error)

	// Delete removes the graph stored under id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored graphs.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
