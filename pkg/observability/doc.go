/*
Package observability provides hooks for monitoring graph construction and value iteration.

It includes Prometheus metrics fed by domain.BuildHooks and domain.SolveHooks, a recorder
capturing the delta of every sweep for convergence charts, and helpers to chain hook sets.
*/
package observability
