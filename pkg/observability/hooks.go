package observability

import (
	"context"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
)

// ChainBuildHooks returns hooks calling every non-nil hook of each set, in order.
func ChainBuildHooks(sets ...domain.BuildHooks) domain.BuildHooks {
	return domain.BuildHooks{
		OnStateDiscovered: func(ctx context.Context, e *domain.StateEvent) {
			for _, s := range sets {
				if s.OnStateDiscovered != nil {
					s.OnStateDiscovered(ctx, e)
				}
			}
		},
		OnModelBuilt: func(ctx context.Context, e *domain.ModelEvent) {
			for _, s := range sets {
				if s.OnModelBuilt != nil {
					s.OnModelBuilt(ctx, e)
				}
			}
		},
	}
}

// ChainSolveHooks returns hooks calling every non-nil hook of each set, in order.
func ChainSolveHooks(sets ...domain.SolveHooks) domain.SolveHooks {
	return domain.SolveHooks{
		OnSweep: func(ctx context.Context, e *domain.SweepEvent) {
			for _, s := range sets {
				if s.OnSweep != nil {
					s.OnSweep(ctx, e)
				}
			}
		},
		OnConverged: func(ctx context.Context, e *domain.SolveEvent) {
			for _, s := range sets {
				if s.OnConverged != nil {
					s.OnConverged(ctx, e)
				}
			}
		},
	}
}

// DeltaRecorder keeps the delta of every sweep, for convergence charts.
type DeltaRecorder struct {
	mu     sync.Mutex
	deltas []float64
}

// Hooks returns solve hooks appending to the recorder.
func (r *DeltaRecorder) Hooks() domain.SolveHooks {
	return domain.SolveHooks{
		OnSweep: func(_ context.Context, e *domain.SweepEvent) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.deltas = append(r.deltas, e.Delta)
		},
	}
}

// Deltas returns a copy of the recorded deltas.
func (r *DeltaRecorder) Deltas() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.deltas...)
}
