package kdtile

import (
	"fmt"
	"math"
)

// DensityConstant is the default target for DepthForRegion: roughly the
// number of leaf triangles wanted inside the region, whatever its size.
const DensityConstant = 1500.0

// Counts returns how many kite and dart halves a half-dart root has after d
// subdivisions. Kite halves split into two kites and a dart, dart halves
// into one of each.
func Counts(d int) (kites, darts uint64) {
	return CountsFrom(DartLeft, d)
}

// CountsFrom is Counts for a root of any type.
func CountsFrom(root Type, d int) (kites, darts uint64) {
	if root.Kind() == Kite {
		kites = 1
	} else {
		darts = 1
	}
	for ; d > 0; d-- {
		kites, darts = 2*kites+darts, kites+darts
	}
	return kites, darts
}

// DepthForRegion returns the smallest depth at which a half-dart root of
// area rootArea/2 puts at least densityConstant triangles into a square of
// side rectLength, assuming triangles spread evenly over the root. Pass
// RootArea(width) for rootArea.
//
// The result is not capped; callers apply their own depth limit.
func DepthForRegion(rectLength, densityConstant, rootArea float64) (int, error) {
	if !finite(rectLength) || rectLength <= 0 {
		return 0, fmt.Errorf("%w: side length %v", ErrInvalidRegion, rectLength)
	}
	if !finite(rootArea) || rootArea <= 0 {
		return 0, fmt.Errorf("%w: root area %v", ErrInvalidRegion, rootArea)
	}

	want := densityConstant / (rectLength * rectLength)
	kites, darts := 0.0, 1.0
	depth := 0
	for want > 2*(kites+darts)/rootArea {
		kites, darts = 2*kites+darts, kites+darts
		depth++
		if math.IsInf(kites, 1) {
			break
		}
	}
	Logger().Debug("kdtile: estimated depth",
		"side", rectLength,
		"density", densityConstant,
		"depth", depth)
	return depth, nil
}
