package action

import "sync"

// Registry holds the registered actions of one problem, in registration order.
// Safe for concurrent use.
type Registry[S any] struct {
	mu      sync.RWMutex
	actions []*Action[S]
}

// NewRegistry creates a new empty registry.
func NewRegistry[S any]() *Registry[S] {
	return &Registry[S]{}
}

// Register expands each definition and assigns the next sequence numbers to the resulting
// actions. Returns the newly registered actions.
func (r *Registry[S]) Register(defs ...Definition[S]) []*Action[S] {
	r.mu.Lock()
	defer r.mu.Unlock()

	var added []*Action[S]
	for _, def := range defs {
		for _, a := range def.Expand() {
			// Copy so a definition expanded twice never shares sequence numbers.
			registered := *a
			registered.seq = len(r.actions)
			r.actions = append(r.actions, &registered)
			added = append(added, &registered)
		}
	}
	return added
}

// Actions returns a snapshot of the registered actions.
func (r *Registry[S]) Actions() []*Action[S] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Action[S](nil), r.actions...)
}

// Len returns the number of registered actions.
func (r *Registry[S]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
