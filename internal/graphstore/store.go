// Package graphstore provides a thread-safe, in-memory store of built
// execution graphs, keyed by pipeline name. It backs the inspection server,
// which reads graphs concurrently with the validation loop writing them.
package graphstore

import (
	"sort"
	"sync"

	"github.com/vk/pipeweld/internal/pipeline"
)

// Store holds the most recently built graph per pipeline.
type Store struct {
	mu     sync.RWMutex
	graphs map[string]*pipeline.Graph
}

// New creates a new, empty graph store.
func New() *Store {
	return &Store{
		graphs: make(map[string]*pipeline.Graph),
	}
}

// Put records the built graph for a pipeline, replacing any previous build.
func (s *Store) Put(name string, g *pipeline.Graph) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graphs[name] = g
}

// Get retrieves the graph for a pipeline by name.
func (s *Store) Get(name string) (*pipeline.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.graphs[name]
	return g, ok
}

// Names returns the stored pipeline names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
