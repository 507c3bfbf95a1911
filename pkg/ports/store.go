package ports

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
)

// SolutionStore persists solution snapshots keyed by problem name.
type SolutionStore interface {
	// Save persists the solution under its Name, replacing any previous one.
	Save(ctx context.Context, solution *domain.Solution) error

	// Load retrieves the latest solution of a problem.
	// Returns domain.ErrSolutionNotFound if none was saved.
	Load(ctx context.Context, name string) (*domain.Solution, error)

	// Delete removes the solution of a problem. Deleting a missing solution is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored solutions.
	List(ctx context.Context) ([]string, error)
}
