package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

// Store implements ports.SolutionStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Solution
	mu   sync.RWMutex
}

var _ ports.SolutionStore = (*Store)(nil)

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Solution),
	}
}

// Save persists the solution in memory.
func (s *Store) Save(ctx context.Context, solution *domain.Solution) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := clone(solution)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[solution.Name] = copied
	return nil
}

// Load retrieves the solution from memory.
func (s *Store) Load(ctx context.Context, name string) (*domain.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	solution, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSolutionNotFound, name)
	}

	// Copy on read so caller can't mutate store state directly by pointer
	return clone(solution), nil
}

// Delete removes the solution.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored solution names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func clone(s *domain.Solution) *domain.Solution {
	c := *s
	c.States = slices.Clone(s.States)
	c.Values = slices.Clone(s.Values)
	c.Policy = make([]*domain.ActionID, len(s.Policy))
	for i, id := range s.Policy {
		if id != nil {
			v := *id
			c.Policy[i] = &v
		}
	}
	return &c
}
