package core

// Conflict records a collision between two agents. IsEdge tags the
// variant. For an edge conflict the agents swap: Agent1 traverses
// From -> To over (Time, Time+1) while Agent2 traverses To -> From.
type Conflict struct {
	Agent1 int
	Agent2 int
	IsEdge bool

	// Vertex variant: both agents occupy Cell at Time.
	Cell Point

	// Edge variant: Agent1's traversal endpoints.
	From Point
	To   Point

	// Vertex time, or the edge's departure time.
	Time int
}

// Agents returns the two participants in index order.
func (c *Conflict) Agents() [2]int { return [2]int{c.Agent1, c.Agent2} }

// ConstraintFor derives the constraint that forbids the given agent
// from participating in this conflict.
func (c *Conflict) ConstraintFor(agent int) Constraint {
	if !c.IsEdge {
		return NewVertexConstraint(agent, c.Cell, c.Time)
	}
	if agent == c.Agent1 {
		return NewEdgeConstraint(agent, c.From, c.To, c.Time)
	}
	return NewEdgeConstraint(agent, c.To, c.From, c.Time)
}
