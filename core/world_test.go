package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWorldRejectsInvalidInput(t *testing.T) {
	_, err := NewWorld(2, []int{5}, nil, nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewWorld(2, []int{5, 5}, []Point{{1, 2, 3}}, nil)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewWorld(2, []int{5, 5}, []Point{{5, 0}}, nil)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewWorld(2, []int{5, 5}, nil, []DynamicObstacle{{Cell: Point{0, -1}, Start: 0, End: 1}})
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = NewWorld(2, []int{5, 5}, nil, []DynamicObstacle{{Cell: Point{0, 0}, Start: 3, End: 1}})
	require.ErrorIs(t, err, ErrBadInterval)
}

func TestValidatePoint(t *testing.T) {
	w, err := NewWorld(2, []int{3, 4}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, w.ValidatePoint(Point{2, 3}))
	require.ErrorIs(t, w.ValidatePoint(Point{3, 0}), ErrOutOfBounds)
	require.ErrorIs(t, w.ValidatePoint(Point{-1, 0}), ErrOutOfBounds)
	require.ErrorIs(t, w.ValidatePoint(Point{0, 0, 0}), ErrDimensionMismatch)
}

func TestNeighboursOrderAndFiltering(t *testing.T) {
	w, err := NewWorld(2, []int{3, 3}, []Point{{1, 0}}, nil)
	require.NoError(t, err)

	// wait first, then +e_k / -e_k per ascending axis; static and
	// out-of-bounds moves dropped
	require.Equal(t, []Point{{0, 0}, {0, 1}}, w.Neighbours(Point{0, 0}))
	require.Equal(t, []Point{{1, 1}, {2, 1}, {0, 1}, {1, 2}}, w.Neighbours(Point{1, 1}))
	require.Equal(t, []Point{{2, 2}, {1, 2}, {2, 1}}, w.Neighbours(Point{2, 2}))
}

func TestDynamicBlocking(t *testing.T) {
	w, err := NewWorld(2, []int{5, 5}, nil, []DynamicObstacle{
		{Cell: Point{2, 2}, Start: 2, End: 4},
		{Cell: Point{0, 0}, Start: 1, End: -1},
	})
	require.NoError(t, err)

	require.False(t, w.IsDynamicallyBlocked(Point{2, 2}, 1))
	require.True(t, w.IsDynamicallyBlocked(Point{2, 2}, 2))
	require.True(t, w.IsDynamicallyBlocked(Point{2, 2}, 4))
	require.False(t, w.IsDynamicallyBlocked(Point{2, 2}, 5))

	// negative end never closes
	require.False(t, w.IsDynamicallyBlocked(Point{0, 0}, 0))
	require.True(t, w.IsDynamicallyBlocked(Point{0, 0}, 1))
	require.True(t, w.IsDynamicallyBlocked(Point{0, 0}, 1000))

	last, forever := w.LastBlockedAt(Point{2, 2})
	require.Equal(t, 4, last)
	require.False(t, forever)

	_, forever = w.LastBlockedAt(Point{0, 0})
	require.True(t, forever)

	require.Equal(t, 4, w.LastFiniteDynamicEnd())
}

func TestIndexIsUnique(t *testing.T) {
	w, err := NewWorld(3, []int{3, 4, 5}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 60, w.CellCount())

	seen := make(map[int]bool)
	for x := 0; x < 3; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 5; z++ {
				idx := w.Index(Point{x, y, z})
				require.False(t, seen[idx], "duplicate index for (%d,%d,%d)", x, y, z)
				seen[idx] = true
			}
		}
	}
}
