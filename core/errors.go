package core

import "errors"

var (
	// ErrDimensionMismatch indicates a point whose length differs from the
	// world dimension.
	ErrDimensionMismatch = errors.New("core: point dimension does not match world dimension")
	// ErrOutOfBounds indicates a point outside [0, space_limit_k) on some axis.
	ErrOutOfBounds = errors.New("core: point is outside the space limits")
	// ErrLengthMismatch indicates start and goal lists of different lengths.
	ErrLengthMismatch = errors.New("core: start and goal counts differ")
	// ErrBadInterval indicates a dynamic obstacle whose interval starts
	// before time 0, or whose finite interval ends before it starts.
	ErrBadInterval = errors.New("core: dynamic obstacle interval starts before 0 or ends before it starts")
)
