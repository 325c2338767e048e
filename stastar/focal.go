package stastar

import (
	"container/heap"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
)

// PlanFocal runs the ε-focal variant: nodes whose f is within the
// weight factor of the best open f form a focal set ordered by how many
// conflicts the partial path has with the other agents' current paths.
// Returns the path and the final lower bound fMin; the path cost is at
// most weight * fMin. Returns (nil, 0) on exhaustion.
func (p *Planner) PlanFocal(constraints []core.Constraint, others []core.Path) (core.Path, int) {
	if p.goalBlockedForever {
		return nil, 0
	}

	earliest, horizon := p.bounds(constraints)
	p.reset()

	open := &openHeap{nodes: &p.nodes}
	heap.Init(open)
	heap.Push(open, p.addNode(p.start, 0, 0, -1))

	closed := make(map[stateKey]struct{})
	fMin := p.nodes[0].f

	for {
		for open.Len() > 0 && p.nodes[open.items[0]].closed {
			heap.Pop(open)
		}
		if open.Len() == 0 {
			return nil, 0
		}
		if best := p.nodes[open.items[0]].f; best > fMin {
			fMin = best
		}

		// Rebuild the focal set against the current bound. f is integer,
		// so the admission test stays in integer arithmetic.
		bound := int(p.weight * float64(fMin))
		focal := &focalHeap{nodes: &p.nodes}
		for _, idx := range open.items {
			if !p.nodes[idx].closed && p.nodes[idx].f <= bound {
				focal.items = append(focal.items, idx)
			}
		}
		heap.Init(focal)

		cur := heap.Pop(focal).(int)
		n := &p.nodes[cur]
		n.closed = true
		if _, ok := closed[n.key]; ok {
			// a duplicate of an already-expanded state
			continue
		}
		closed[n.key] = struct{}{}

		if n.cell.Equal(p.goal) && n.key.time >= earliest {
			return p.reconstruct(cur), fMin
		}

		p.expand(cur, constraints, horizon, closed, others, func(idx int) {
			heap.Push(open, idx)
		})
	}
}

// transitionConflicts counts collisions the move from -> to over
// (t, t+1) causes against the other agents' paths: occupying the same
// cell at t+1, or swapping cells with an agent moving the other way.
func transitionConflicts(from, to core.Point, t int, others []core.Path) int {
	count := 0
	for _, o := range others {
		if len(o) == 0 {
			continue
		}
		if o.At(t + 1).Equal(to) {
			count++
			continue
		}
		if !from.Equal(to) && o.At(t + 1).Equal(from) && o.At(t).Equal(to) {
			count++
		}
	}
	return count
}
