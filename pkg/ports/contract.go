package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/markov/pkg/domain"
)

func sampleSolution(name string) *domain.Solution {
	return &domain.Solution{
		Name:       name,
		RunID:      "run-" + name,
		Discount:   0.9,
		Tolerance:  1e-5,
		Iterations: 12,
		Delta:      4e-6,
		States:     []string{"{Banned:false}", "{Banned:true}"},
		Values:     []float64{12.5, 0},
		Policy:     []*domain.ActionID{{Seq: 1, Hash: 42, Label: "rob"}, nil},
		SolvedAt:   time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// RunSolutionStoreContract runs a suite of tests to verify that a SolutionStore implementation
// adheres to the defined interface contract.
func RunSolutionStoreContract(t *testing.T, store SolutionStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Save
		sol := sampleSolution(name)
		require.NoError(t, store.Save(ctx, sol), "Save should not return error")

		// 2. Load
		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sol.RunID, loaded.RunID)
		assert.Equal(t, sol.States, loaded.States)
		assert.Equal(t, sol.Values, loaded.Values)
		assert.True(t, sol.SolvedAt.Equal(loaded.SolvedAt))

		best, ok := loaded.Best(0)
		require.True(t, ok)
		assert.Equal(t, domain.ActionID{Seq: 1, Hash: 42, Label: "rob"}, best)
		_, ok = loaded.Best(1)
		assert.False(t, ok, "undecided states survive persistence")
	})

	t.Run("Save Replaces", func(t *testing.T) {
		sol := sampleSolution(name)
		sol.RunID = "second"
		require.NoError(t, store.Save(ctx, sol))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, "second", loaded.RunID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSolution(name)))

		require.NoError(t, store.Delete(ctx, name), "Delete should not return error")

		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrSolutionNotFound, "Load after Delete should return ErrSolutionNotFound")
		assert.NoError(t, store.Delete(ctx, name), "Delete is idempotent")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		require.NoError(t, store.Save(ctx, sampleSolution(id1)))
		require.NoError(t, store.Save(ctx, sampleSolution(id2)))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
