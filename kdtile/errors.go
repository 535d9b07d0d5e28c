package kdtile

import "errors"

var (
	// ErrInvalidTriangleType is returned when a triangle type is outside 0..3.
	ErrInvalidTriangleType = errors.New("kdtile: invalid triangle type")

	// ErrInvalidGeometry is returned when a point is not a finite 2-D coordinate.
	ErrInvalidGeometry = errors.New("kdtile: point is not 2-D")

	// ErrInvalidDepth is returned by Build for a negative depth.
	ErrInvalidDepth = errors.New("kdtile: depth less than 0")

	// ErrInvalidRegion is returned for a rectangle or root area that cannot
	// produce a density.
	ErrInvalidRegion = errors.New("kdtile: invalid region")
)
