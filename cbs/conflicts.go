package cbs

import "github.com/joonyeolsim/multi-agent-path-finding/core"

// FindFirstConflict scans a joint solution for the earliest conflict.
// Agent pairs (i, j), i < j, are swept in ascending index order, each
// pair over t = 0..max(L_i, L_j); agents dwell at their final cell once
// their path ends. The full vertex sweep runs before any edge check;
// which conflict seeds the first CT split depends on this order.
func FindFirstConflict(solution core.Solution) *core.Conflict {
	n := len(solution)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if len(solution[i]) == 0 || len(solution[j]) == 0 {
				continue
			}
			horizon := maxLen(solution[i], solution[j])
			for t := 0; t < horizon; t++ {
				a := solution[i].At(t)
				if a.Equal(solution[j].At(t)) {
					return &core.Conflict{Agent1: i, Agent2: j, Cell: a, Time: t}
				}
			}
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if len(solution[i]) == 0 || len(solution[j]) == 0 {
				continue
			}
			horizon := maxLen(solution[i], solution[j])
			for t := 0; t < horizon-1; t++ {
				a0, a1 := solution[i].At(t), solution[i].At(t + 1)
				b0, b1 := solution[j].At(t), solution[j].At(t + 1)
				if a0.Equal(b1) && b0.Equal(a1) && !a0.Equal(a1) {
					return &core.Conflict{
						Agent1: i, Agent2: j, IsEdge: true,
						From: a0, To: a1, Time: t,
					}
				}
			}
		}
	}

	return nil
}

// CountConflicts tallies every vertex coincidence and edge swap over
// all agent pairs. ECBS uses the count as its focal heuristic.
func CountConflicts(solution core.Solution) int {
	n := len(solution)
	count := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if len(solution[i]) == 0 || len(solution[j]) == 0 {
				continue
			}
			horizon := maxLen(solution[i], solution[j])
			for t := 0; t < horizon; t++ {
				if solution[i].At(t).Equal(solution[j].At(t)) {
					count++
				}
			}
			for t := 0; t < horizon-1; t++ {
				a0, a1 := solution[i].At(t), solution[i].At(t + 1)
				b0, b1 := solution[j].At(t), solution[j].At(t + 1)
				if a0.Equal(b1) && b0.Equal(a1) && !a0.Equal(a1) {
					count++
				}
			}
		}
	}
	return count
}

func maxLen(a, b core.Path) int {
	if len(a) > len(b) {
		return len(a)
	}
	return len(b)
}
