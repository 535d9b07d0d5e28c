package kdtile

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jbeda/geom"
)

// RootHeight is the height of the root half-dart with base width w.
func RootHeight(w float64) float64 {
	return w / 2 * math.Tan(math.Pi/5)
}

// RootArea is w times RootHeight(w), the area term DepthForRegion expects.
// It is twice the area of the root triangle.
func RootArea(w float64) float64 {
	return w * RootHeight(w)
}

// Root returns the standard root: a half-dart with its apex at the top
// centre and a horizontal base of width w along y = RootHeight(w).
func Root(w float64) (Triangle, error) {
	h := RootHeight(w)
	return NewTriangle(DartLeft,
		geom.Coord{X: w / 2, Y: 0},
		geom.Coord{X: 0, Y: h},
		geom.Coord{X: w, Y: h})
}

// RandomRegion picks a square inside the standard root of width base. The
// top edge stays at least buffer away from the apex and the base, the left
// or right edge starts inside the triangle's cross-section at that height,
// and the side is at least buffer/2.
func RandomRegion(rng *rand.Rand, base, buffer int) (Rect, error) {
	height := int(RootHeight(float64(base)))
	if buffer <= 0 || height-2*buffer <= 0 {
		return Rect{}, fmt.Errorf("%w: buffer %d does not fit root of height %d", ErrInvalidRegion, buffer, height)
	}

	y := rng.IntN(height-2*buffer) + buffer

	// Width of the triangle at y.
	span := math.Abs(2 * float64(y) / math.Tan(math.Pi/5))

	x := base / 2
	if half := int(span / 2); half > 0 {
		if rng.IntN(2) == 0 {
			x += rng.IntN(half)
		} else {
			x -= rng.IntN(half)
		}
	}

	limit := int(math.Min(float64(height-y), math.Abs(float64(base/2-x))+span/2)) - buffer
	if limit < 1 {
		limit = 1
	}
	length := rng.IntN(limit) + buffer/2

	// x so far is the outer edge; grow the square towards the centre line.
	if x >= base/2 {
		x -= length
	}
	return Rect{X: float64(x), Y: float64(y), Length: float64(length)}, nil
}
