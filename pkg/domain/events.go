package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStateDiscovered EventType = "state_discovered"
	EventModelBuilt      EventType = "model_built"
	EventSweep           EventType = "sweep"
	EventConverged       EventType = "converged"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id,omitempty"`
}

// StateEvent is emitted when graph construction assigns an index to a new state.
type StateEvent struct {
	EventBase
	Index int    `json:"index"`
	Label string `json:"label"`
}

// ModelEvent is emitted once graph construction has frozen the model.
type ModelEvent struct {
	EventBase
	States      int           `json:"states"`
	Transitions int           `json:"transitions"`
	Duration    time.Duration `json:"duration"`
}

// SweepEvent is emitted after every Bellman sweep.
type SweepEvent struct {
	EventBase
	Iteration int     `json:"iteration"`
	Delta     float64 `json:"delta"`
}

// SolveEvent is emitted when value iteration stops, converged or not.
type SolveEvent struct {
	EventBase
	Iterations int           `json:"iterations"`
	Delta      float64       `json:"delta"`
	Converged  bool          `json:"converged"`
	Duration   time.Duration `json:"duration"`
}

// BuildHooks defines callbacks for graph construction observability.
type BuildHooks struct {
	OnStateDiscovered func(context.Context, *StateEvent)
	OnModelBuilt      func(context.Context, *ModelEvent)
}

// SolveHooks defines callbacks for solver observability.
type SolveHooks struct {
	OnSweep     func(context.Context, *SweepEvent)
	OnConverged func(context.Context, *SolveEvent)
}
