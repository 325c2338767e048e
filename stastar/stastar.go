// Package stastar implements the low-level single-agent planner:
// A* over the (cell, time) state space, honouring per-agent vertex and
// edge constraints in the presence of static and dynamic obstacles.
// PlanFocal exposes the ε-focal variant used by ECBS.
package stastar

import (
	"container/heap"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/joonyeolsim/multi-agent-path-finding/core"
)

// Planner runs space-time A* for a single agent between a fixed start
// and goal. A Planner is not safe for concurrent use; its arena is
// reused across Plan calls.
type Planner struct {
	start, goal core.Point
	world       *core.World
	weight      float64
	horizon     int // 0 = derive from the world per call
	logger      golog.Logger

	goalLastBlocked    int
	goalBlockedForever bool

	nodes []node
	seq   int
}

// Option configures a Planner.
type Option func(*Planner)

// WithWeight sets the focal suboptimality factor w >= 1 for PlanFocal.
func WithWeight(w float64) Option {
	return func(p *Planner) { p.weight = w }
}

// WithHorizon caps the search at a fixed number of timesteps instead of
// the derived bound.
func WithHorizon(h int) Option {
	return func(p *Planner) { p.horizon = h }
}

// New validates start and goal against the world and returns a planner.
// Fails with core.ErrDimensionMismatch or core.ErrOutOfBounds.
func New(start, goal core.Point, world *core.World, logger golog.Logger, opts ...Option) (*Planner, error) {
	if err := world.ValidatePoint(start); err != nil {
		return nil, errors.Wrap(err, "start point")
	}
	if err := world.ValidatePoint(goal); err != nil {
		return nil, errors.Wrap(err, "goal point")
	}
	p := &Planner{
		start:  start,
		goal:   goal,
		world:  world,
		weight: 1,
		logger: logger,
	}
	p.goalLastBlocked, p.goalBlockedForever = world.LastBlockedAt(goal)
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Plan returns a shortest path [(start,0), ..., (goal,L)] honouring the
// given constraints, or nil when the state space is exhausted. The
// arrival time must clear every constraint and every finite dynamic
// window on the goal, since the agent dwells there afterwards.
func (p *Planner) Plan(constraints []core.Constraint) core.Path {
	if p.goalBlockedForever {
		return nil
	}

	earliest, horizon := p.bounds(constraints)
	p.reset()

	open := &openHeap{nodes: &p.nodes}
	heap.Init(open)
	heap.Push(open, p.addNode(p.start, 0, 0, -1))

	closed := make(map[stateKey]struct{})

	for open.Len() > 0 {
		cur := heap.Pop(open).(int)
		n := &p.nodes[cur]
		if _, ok := closed[n.key]; ok {
			continue
		}
		closed[n.key] = struct{}{}

		if n.cell.Equal(p.goal) && n.key.time >= earliest {
			p.logger.Debugw("space-time A* done", "goal", p.goal, "length", n.key.time, "expanded", len(closed))
			return p.reconstruct(cur)
		}

		p.expand(cur, constraints, horizon, closed, nil, func(idx int) {
			heap.Push(open, idx)
		})
	}

	p.logger.Debugw("space-time A* exhausted", "start", p.start, "goal", p.goal, "horizon", horizon)
	return nil
}

// bounds returns the earliest admissible arrival time at the goal and
// the expansion horizon for this constraint set.
func (p *Planner) bounds(constraints []core.Constraint) (earliest, horizon int) {
	tMax := core.MaxConstraintTime(constraints)
	earliest = tMax
	if p.goalLastBlocked+1 > earliest {
		earliest = p.goalLastBlocked + 1
	}
	horizon = p.horizon
	if horizon == 0 {
		// Past every constraint and finite dynamic window the world is
		// effectively static, so any shortest path revisits no cell.
		horizon = tMax + p.world.LastFiniteDynamicEnd() + p.world.CellCount()
	}
	return earliest, horizon
}

func (p *Planner) reset() {
	p.nodes = p.nodes[:0]
	p.seq = 0
}

func (p *Planner) addNode(cell core.Point, t, conflicts, parent int) int {
	h := cell.Manhattan(p.goal)
	p.nodes = append(p.nodes, node{
		cell:      cell,
		key:       stateKey{cell: p.world.Index(cell), time: t},
		g:         t,
		h:         h,
		f:         t + h,
		conflicts: conflicts,
		parent:    parent,
		seq:       p.seq,
	})
	p.seq++
	return len(p.nodes) - 1
}

// expand generates the successors of the arena node cur at time+1 and
// hands their indices to push. Successors must stay within the horizon,
// clear of dynamic obstacles, and clear of this agent's constraints.
func (p *Planner) expand(cur int, constraints []core.Constraint, horizon int, closed map[stateKey]struct{}, others []core.Path, push func(int)) {
	from := p.nodes[cur].cell
	t := p.nodes[cur].key.time
	next := t + 1
	if next > horizon {
		return
	}

	for _, q := range p.world.Neighbours(from) {
		if p.world.IsDynamicallyBlocked(q, next) {
			continue
		}
		if violates(constraints, from, q, t) {
			continue
		}
		key := stateKey{cell: p.world.Index(q), time: next}
		if _, ok := closed[key]; ok {
			continue
		}
		conflicts := p.nodes[cur].conflicts
		if others != nil {
			conflicts += transitionConflicts(from, q, t, others)
		}
		push(p.addNode(q, next, conflicts, cur))
	}
}

// violates reports whether moving from -> to over (t, t+1) breaks any
// constraint: a vertex constraint on the target cell at t+1, or, for a
// true move, an edge constraint on this traversal.
func violates(constraints []core.Constraint, from, to core.Point, t int) bool {
	moving := !from.Equal(to)
	for _, c := range constraints {
		if c.IsEdge {
			if moving && c.Time == t && c.From.Equal(from) && c.To.Equal(to) {
				return true
			}
			continue
		}
		if c.Time == t+1 && c.Cell.Equal(to) {
			return true
		}
	}
	return false
}

func (p *Planner) reconstruct(idx int) core.Path {
	length := p.nodes[idx].key.time + 1
	path := make(core.Path, length)
	for i := idx; i >= 0; i = p.nodes[i].parent {
		n := &p.nodes[i]
		path[n.key.time] = core.TimedPoint{Cell: n.cell, Time: n.key.time}
	}
	return path
}
