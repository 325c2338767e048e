package core

import (
	"github.com/pkg/errors"
)

// DynamicObstacle blocks a single cell for the inclusive time window
// [Start, End]. End < 0 means the window never closes.
type DynamicObstacle struct {
	Cell  Point
	Start int
	End   int
}

// World is an immutable description of the grid: dimension, per-axis
// extents, static obstacle cells and time-windowed dynamic obstacles.
type World struct {
	Dimension  int
	SpaceLimit []int

	static  map[int]struct{}
	dynamic []DynamicObstacle

	strides    []int
	cellCount  int
	lastDynEnd int
}

// NewWorld validates the obstacle sets against the given extents and
// returns the world. Obstacle cells of the wrong length fail with
// ErrDimensionMismatch, cells outside the extents with ErrOutOfBounds.
func NewWorld(dimension int, spaceLimit []int, static []Point, dynamic []DynamicObstacle) (*World, error) {
	if dimension < 1 {
		return nil, errors.Errorf("core: dimension must be positive, got %d", dimension)
	}
	if len(spaceLimit) != dimension {
		return nil, errors.Wrapf(ErrDimensionMismatch, "space limit has %d axes, want %d", len(spaceLimit), dimension)
	}
	for k, lim := range spaceLimit {
		if lim < 1 {
			return nil, errors.Errorf("core: space limit on axis %d must be positive, got %d", k, lim)
		}
	}

	w := &World{
		Dimension:  dimension,
		SpaceLimit: spaceLimit,
		static:     make(map[int]struct{}, len(static)),
		dynamic:    dynamic,
		lastDynEnd: 0,
	}

	w.strides = make([]int, dimension)
	stride := 1
	for k := dimension - 1; k >= 0; k-- {
		w.strides[k] = stride
		stride *= spaceLimit[k]
	}
	w.cellCount = stride

	for _, p := range static {
		if err := w.ValidatePoint(p); err != nil {
			return nil, errors.Wrapf(err, "static obstacle %s", p)
		}
		w.static[w.Index(p)] = struct{}{}
	}
	for _, d := range dynamic {
		if err := w.ValidatePoint(d.Cell); err != nil {
			return nil, errors.Wrapf(err, "dynamic obstacle %s", d.Cell)
		}
		if d.Start < 0 || (d.End >= 0 && d.End < d.Start) {
			return nil, errors.Wrapf(ErrBadInterval, "dynamic obstacle %s [%d,%d]", d.Cell, d.Start, d.End)
		}
		if d.End > w.lastDynEnd {
			w.lastDynEnd = d.End
		}
	}

	return w, nil
}

// InBounds reports whether p lies in [0, space_limit_k) on every axis.
// p must have the world dimension.
func (w *World) InBounds(p Point) bool {
	for k, v := range p {
		if v < 0 || v >= w.SpaceLimit[k] {
			return false
		}
	}
	return true
}

// ValidatePoint fails with ErrDimensionMismatch or ErrOutOfBounds.
func (w *World) ValidatePoint(p Point) error {
	if len(p) != w.Dimension {
		return errors.Wrapf(ErrDimensionMismatch, "point %s has %d axes, want %d", p, len(p), w.Dimension)
	}
	if !w.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "point %s, limits %v", p, w.SpaceLimit)
	}
	return nil
}

// Index linearizes an in-bounds point to a unique cell index.
func (w *World) Index(p Point) int {
	idx := 0
	for k, v := range p {
		idx += v * w.strides[k]
	}
	return idx
}

// CellCount returns the number of in-bounds cells.
func (w *World) CellCount() int { return w.cellCount }

// IsStaticObstacle reports whether the in-bounds cell is statically blocked.
func (w *World) IsStaticObstacle(p Point) bool {
	_, ok := w.static[w.Index(p)]
	return ok
}

// IsDynamicallyBlocked reports whether some dynamic obstacle occupies
// the cell at time t.
func (w *World) IsDynamicallyBlocked(p Point, t int) bool {
	for _, d := range w.dynamic {
		if d.Start <= t && (d.End < 0 || t <= d.End) && d.Cell.Equal(p) {
			return true
		}
	}
	return false
}

// LastBlockedAt returns the latest time any dynamic window covers the
// cell, and whether some window never closes.
func (w *World) LastBlockedAt(p Point) (last int, forever bool) {
	last = -1
	for _, d := range w.dynamic {
		if !d.Cell.Equal(p) {
			continue
		}
		if d.End < 0 {
			forever = true
		} else if d.End > last {
			last = d.End
		}
	}
	return last, forever
}

// LastFiniteDynamicEnd returns the latest finite end time over all
// dynamic obstacles, or 0 if there are none.
func (w *World) LastFiniteDynamicEnd() int { return w.lastDynEnd }

// Neighbours yields the cell itself (wait) followed by each unit
// axis-aligned move that stays in bounds and clear of static obstacles.
// The order is fixed (wait, then +e_k / -e_k per ascending axis) so
// that search tie-breaking is reproducible.
func (w *World) Neighbours(p Point) []Point {
	out := make([]Point, 0, 2*w.Dimension+1)
	out = append(out, p)
	for k := 0; k < w.Dimension; k++ {
		for _, dv := range [2]int{1, -1} {
			q := p.Clone()
			q[k] += dv
			if q[k] < 0 || q[k] >= w.SpaceLimit[k] {
				continue
			}
			if w.IsStaticObstacle(q) {
				continue
			}
			out = append(out, q)
		}
	}
	return out
}
