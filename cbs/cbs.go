package cbs

import (
	"container/heap"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
	"github.com/joonyeolsim/multi-agent-path-finding/stastar"
)

// CBS is Conflict-Based Search: optimal for sum-of-costs, since the
// low level is admissible and each conflict is resolved by
// disjunctively constraining each participant. Makespan is a documented
// alternative objective, not implemented.
type CBS struct {
	starts, goals []core.Point
	world         *core.World
	planners      []*stastar.Planner
	logger        golog.Logger
	seq           int
}

// New builds a CBS solver with one low-level planner per agent.
// Fails with core.ErrLengthMismatch when the start and goal counts
// differ, and propagates planner construction errors.
func New(starts, goals []core.Point, world *core.World, logger golog.Logger) (*CBS, error) {
	if len(starts) != len(goals) {
		return nil, errors.Wrapf(core.ErrLengthMismatch, "%d starts, %d goals", len(starts), len(goals))
	}
	planners := make([]*stastar.Planner, len(starts))
	for i := range starts {
		pl, err := stastar.New(starts[i], goals[i], world, logger)
		if err != nil {
			return nil, errors.Wrapf(err, "agent %d", i)
		}
		planners[i] = pl
	}
	return &CBS{
		starts:   starts,
		goals:    goals,
		world:    world,
		planners: planners,
		logger:   logger,
	}, nil
}

func (c *CBS) Name() string { return "CBS" }

// ctNode is a constraint-tree node: a per-agent constraint store, the
// joint solution satisfying it, and the sum-of-costs.
type ctNode struct {
	constraints map[int][]core.Constraint
	solution    core.Solution
	cost        int
	seq         int
	index       int
}

// ctHeap orders nodes by cost ascending, FIFO on ties.
type ctHeap []*ctNode

func (h ctHeap) Len() int { return len(h) }
func (h ctHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}
func (h ctHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *ctHeap) Push(x any) {
	n := x.(*ctNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *ctHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Plan runs the constraint-tree search. Returns nil when some agent has
// no individual path (root infeasibility) or the tree is exhausted.
func (c *CBS) Plan() core.Solution {
	root := &ctNode{
		constraints: map[int][]core.Constraint{},
		solution:    make(core.Solution, len(c.planners)),
	}
	for i, pl := range c.planners {
		path := pl.Plan(nil)
		if path == nil {
			c.logger.Debugw("agent has no individual path", "agent", i)
			return nil
		}
		root.solution[i] = path
	}
	root.cost = root.solution.Cost()

	open := &ctHeap{}
	heap.Init(open)
	c.push(open, root)
	generated := 1

	for open.Len() > 0 {
		cur := heap.Pop(open).(*ctNode)

		conflict := FindFirstConflict(cur.solution)
		if conflict == nil {
			c.logger.Debugw("conflict-free solution", "cost", cur.cost, "generated", generated)
			return cur.solution
		}

		for _, agent := range conflict.Agents() {
			if vacuous(cur.solution[agent], conflict) {
				continue
			}
			constraints := withConstraint(cur.constraints, agent, conflict.ConstraintFor(agent))
			path := c.planners[agent].Plan(constraints[agent])
			if path == nil {
				// this branch is infeasible
				continue
			}
			child := &ctNode{
				constraints: constraints,
				solution:    cur.solution.Clone(),
			}
			child.solution[agent] = path
			child.cost = child.solution.Cost()
			c.push(open, child)
			generated++
		}
	}

	return nil
}

func (c *CBS) push(open *ctHeap, n *ctNode) {
	n.seq = c.seq
	c.seq++
	heap.Push(open, n)
}

// vacuous reports whether splitting on the agent is pointless: its path
// already ended before the conflict, so it is merely dwelling at the
// goal and a constraint there cannot move it.
func vacuous(path core.Path, conflict *core.Conflict) bool {
	if conflict.IsEdge {
		return len(path) <= conflict.Time+1
	}
	return len(path) <= conflict.Time
}

// withConstraint copies the parent store at per-agent granularity:
// the outer map is shallow-copied, only the touched agent's sequence is
// duplicated before appending.
func withConstraint(parent map[int][]core.Constraint, agent int, c core.Constraint) map[int][]core.Constraint {
	out := make(map[int][]core.Constraint, len(parent)+1)
	for a, list := range parent {
		out[a] = list
	}
	list := make([]core.Constraint, len(parent[agent]), len(parent[agent])+1)
	copy(list, parent[agent])
	out[agent] = append(list, c)
	return out
}
