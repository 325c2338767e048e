// Package core defines the MAPF data model: lattice points, the grid
// world with static and time-windowed obstacles, time-indexed paths,
// and the constraint/conflict variants shared by both search layers.
package core

import (
	"fmt"
	"strings"
)

// Point is an integer lattice cell in d-dimensional space.
type Point []int

// Equal reports componentwise equality. Points of different lengths
// are never equal.
func (p Point) Equal(q Point) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Manhattan returns the L1 distance to q. Both points must have the
// same dimension.
func (p Point) Manhattan(q Point) int {
	d := 0
	for i := range p {
		if p[i] > q[i] {
			d += p[i] - q[i]
		} else {
			d += q[i] - p[i]
		}
	}
	return d
}

// Clone returns an independent copy.
func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

func (p Point) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, v := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteByte(')')
	return b.String()
}
