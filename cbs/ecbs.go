package cbs

import (
	"container/heap"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
	"github.com/joonyeolsim/multi-agent-path-finding/stastar"
)

// ECBS is the bounded-suboptimal variant: both levels run an ε-focal
// search, and the returned cost is at most weight times the optimum.
type ECBS struct {
	starts, goals []core.Point
	world         *core.World
	planners      []*stastar.Planner
	weight        float64
	logger        golog.Logger
	seq           int
}

// NewECBS builds an ECBS solver with suboptimality factor weight >= 1.
func NewECBS(starts, goals []core.Point, world *core.World, weight float64, logger golog.Logger) (*ECBS, error) {
	if weight < 1 {
		return nil, errors.Errorf("cbs: suboptimality factor must be >= 1, got %v", weight)
	}
	if len(starts) != len(goals) {
		return nil, errors.Wrapf(core.ErrLengthMismatch, "%d starts, %d goals", len(starts), len(goals))
	}
	planners := make([]*stastar.Planner, len(starts))
	for i := range starts {
		pl, err := stastar.New(starts[i], goals[i], world, logger, stastar.WithWeight(weight))
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d", i)
		}
		planners[i] = pl
	}
	return &ECBS{
		starts:   starts,
		goals:    goals,
		world:    world,
		planners: planners,
		weight:   weight,
		logger:   logger,
	}, nil
}

func (e *ECBS) Name() string { return "ECBS" }

// ecbsNode extends the CT node with the per-agent lower bounds returned
// by the low-level ε-search and the focal heuristic.
type ecbsNode struct {
	constraints map[int][]core.Constraint
	solution    core.Solution
	cost        int
	fMins       []int
	lowerBound  int
	conflicts   int
	seq         int
	index       int
}

// ecbsOpenHeap orders by lower bound (Σ fMins), FIFO on ties.
type ecbsOpenHeap []*ecbsNode

func (h ecbsOpenHeap) Len() int { return len(h) }
func (h ecbsOpenHeap) Less(i, j int) bool {
	if h[i].lowerBound != h[j].lowerBound {
		return h[i].lowerBound < h[j].lowerBound
	}
	return h[i].seq < h[j].seq
}
func (h ecbsOpenHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *ecbsOpenHeap) Push(x any) {
	n := x.(*ecbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *ecbsOpenHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// ecbsFocalHeap orders by (conflict count, cost, seq).
type ecbsFocalHeap []*ecbsNode

func (h ecbsFocalHeap) Len() int { return len(h) }
func (h ecbsFocalHeap) Less(i, j int) bool {
	if h[i].conflicts != h[j].conflicts {
		return h[i].conflicts < h[j].conflicts
	}
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h ecbsFocalHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *ecbsFocalHeap) Push(x any)   { *h = append(*h, x.(*ecbsNode)) }
func (h *ecbsFocalHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Plan runs the focal constraint-tree search. The root plans agents in
// index order, counting low-level focal conflicts against the
// already-planned prefix.
func (e *ECBS) Plan() core.Solution {
	n := len(e.planners)
	root := &ecbsNode{
		constraints: map[int][]core.Constraint{},
		solution:    make(core.Solution, n),
		fMins:       make([]int, n),
	}
	for i, pl := range e.planners {
		path, fMin := pl.PlanFocal(nil, root.solution[:i])
		if path == nil {
			e.logger.Debugw("agent has no individual path", "agent", i)
			return nil
		}
		root.solution[i] = path
		root.fMins[i] = fMin
		root.lowerBound += fMin
	}
	root.cost = root.solution.Cost()
	root.conflicts = CountConflicts(root.solution)

	open := &ecbsOpenHeap{}
	heap.Init(open)
	e.push(open, root)
	generated := 1

	for open.Len() > 0 {
		// Admission into focal: cost within the weight factor of the
		// best lower bound in open. Rebuilt each iteration so the set
		// tracks the current bound.
		bound := int(e.weight * float64((*open)[0].lowerBound))
		focal := &ecbsFocalHeap{}
		for _, node := range *open {
			if node.cost <= bound {
				*focal = append(*focal, node)
			}
		}
		heap.Init(focal)

		var cur *ecbsNode
		if focal.Len() > 0 {
			cur = (*focal)[0]
			heap.Remove(open, cur.index)
		} else {
			cur = heap.Pop(open).(*ecbsNode)
		}

		conflict := FindFirstConflict(cur.solution)
		if conflict == nil {
			e.logger.Debugw("conflict-free solution", "cost", cur.cost, "lowerBound", cur.lowerBound, "generated", generated)
			return cur.solution
		}

		for _, agent := range conflict.Agents() {
			if vacuous(cur.solution[agent], conflict) {
				continue
			}
			constraints := withConstraint(cur.constraints, agent, conflict.ConstraintFor(agent))
			path, fMin := e.planners[agent].PlanFocal(constraints[agent], others(cur.solution, agent))
			if path == nil {
				continue
			}
			child := &ecbsNode{
				constraints: constraints,
				solution:    cur.solution.Clone(),
				fMins:       append([]int(nil), cur.fMins...),
			}
			child.solution[agent] = path
			child.fMins[agent] = fMin
			for _, f := range child.fMins {
				child.lowerBound += f
			}
			child.cost = child.solution.Cost()
			child.conflicts = CountConflicts(child.solution)
			e.push(open, child)
			generated++
		}
	}

	return nil
}

func (e *ECBS) push(open *ecbsOpenHeap, n *ecbsNode) {
	n.seq = e.seq
	e.seq++
	heap.Push(open, n)
}

// others returns every path but the given agent's, for low-level
// conflict counting.
func others(solution core.Solution, agent int) []core.Path {
	out := make([]core.Path, 0, len(solution)-1)
	for i, p := range solution {
		if i != agent {
			out = append(out, p)
		}
	}
	return out
}
