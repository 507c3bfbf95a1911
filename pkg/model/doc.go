/*
Package model turns an initial state and a set of registered actions into an explicit,
frozen Markov Decision Process graph.

Build explores every state reachable from the initial state with a work stack. New states are
appended to the state list (the initial state is always index 0 and indices never change);
successors equal to a known state reuse its index. States are bucketed by content hash and a hash
hit is confirmed with an equality check, so two unequal states that happen to share a hash are
kept apart.

Exploration only terminates when the reachable state space is finite. That is the caller's
responsibility; WithStateLimit turns a runaway model into a panic instead of an endless loop.

Once built, a Model is read-only and safe to share across goroutines.
*/
package model
