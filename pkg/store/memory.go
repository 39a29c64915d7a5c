package store

import (
	"context"
	"sync"

	"github.com/matzehuels/cygraph/pkg/graph"
)

// MemoryStore keeps graphs in process memory.
// Intended for development and tests; contents are lost on exit.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]graph.Graph
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{graphs: make(map[string]graph.Graph)}
}

// Put saves a graph under id, replacing any existing graph.
func (s *MemoryStore) Put(ctx context.Context, id string, g graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[id] = g
	return nil
}

// Get retrieves the graph stored under id.
func (s *MemoryStore) Get(ctx context.Context, id string) (graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[id]
	if !ok {
		return graph.Graph{}, ErrNotFound
	}
	return g, nil
}

// Delete removes the graph stored under id.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.graphs[id]; !ok {
		return ErrNotFound
	}
	delete(s.graphs, id)
	return nil
}

// List returns the IDs of all stored graphs, in no particular order.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.graphs))
	for id := range s.graphs {
		ids = append(ids, id)
	}
	return ids, nil
}

// Close does nothing for a memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
