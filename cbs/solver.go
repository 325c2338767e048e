// Package cbs implements the high-level conflict resolver: best-first
// search over a constraint tree, splitting on the earliest inter-agent
// conflict and replanning one agent per child with the low-level
// space-time A*. ECBS adds an ε-bounded focal layer at both levels for
// w-admissible suboptimality.
package cbs

import "github.com/joonyeolsim/multi-agent-path-finding/core"

// Solver is the interface over the high-level searches.
type Solver interface {
	// Plan returns a collision-free joint solution in agent-index order,
	// or nil when the instance is infeasible.
	Plan() core.Solution

	// Name returns the algorithm name.
	Name() string
}
