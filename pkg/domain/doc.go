/*
Package domain contains the shared vocabulary of the markov engine.

It defines the identities and edges of an explicit Markov Decision Process graph, the
lifecycle events emitted while building and solving it, and the serialisable snapshot of a
solved problem. The package is kept pure and free of external dependencies like I/O or
persistence, so every other package (model, solver, policy, adapters) can share it.

# Key Entities

  - ActionID: Identity of a registered action (payload hash + registration sequence number).
  - Transition: A directed edge (state, action) -> state carrying probability and reward.
  - ActionTransitions: The outgoing transitions of one action at one state.
  - Solution: A persisted snapshot of a solved problem (values, policy, metadata).
*/
package domain
