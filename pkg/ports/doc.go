/*
Package ports defines the driven ports (interfaces) of the markov services.

These interfaces decouple solving from external implementations, allowing solutions to be
kept in memory or in Redis.

# Key Interfaces

  - SolutionStore: Responsible for persisting and loading solved problems.
*/
package ports
