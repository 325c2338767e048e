package stastar

import "github.com/joonyeolsim/multi-agent-path-finding/core"

// stateKey identifies a search state. Two nodes with the same key are
// the same (cell, time) state regardless of g/h/parent.
type stateKey struct {
	cell int // linearized cell index
	time int
}

// node is one entry in the planner's arena. Parent links are arena
// indices, so the search tree needs no pointer graph and resets with a
// single slice truncation.
type node struct {
	cell      core.Point
	key       stateKey
	g, h, f   int
	conflicts int // accumulated focal heuristic (ε-search only)
	parent    int // arena index, -1 at the root
	seq       int // insertion order, the final tie-break key
	closed    bool
}

// openHeap orders arena indices by (f, h, seq): lowest f first, closer
// to the goal on ties, then insertion order.
type openHeap struct {
	nodes *[]node
	items []int
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Less(i, j int) bool {
	a, b := &(*h.nodes)[h.items[i]], &(*h.nodes)[h.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (h *openHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *openHeap) Push(x any) { h.items = append(h.items, x.(int)) }

func (h *openHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}

// focalHeap orders arena indices by (conflicts, f, h, seq).
type focalHeap struct {
	nodes *[]node
	items []int
}

func (h *focalHeap) Len() int { return len(h.items) }

func (h *focalHeap) Less(i, j int) bool {
	a, b := &(*h.nodes)[h.items[i]], &(*h.nodes)[h.items[j]]
	if a.conflicts != b.conflicts {
		return a.conflicts < b.conflicts
	}
	if a.f != b.f {
		return a.f < b.f
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (h *focalHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *focalHeap) Push(x any) { h.items = append(h.items, x.(int)) }

func (h *focalHeap) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	h.items = old[:n-1]
	return x
}
