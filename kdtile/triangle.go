// Package kdtile builds Penrose kite and dart tilings by recursive
// subdivision of isosceles half-tiles.
//
// A tiling starts from a single root triangle (usually a half-dart, see
// Root) and is expanded with Build. Every subdivision step passes the new
// children through a Filter, which is how region-bounded generation avoids
// expanding triangles that can never reach the region of interest.
//
// Coordinates follow screen conventions: X grows right, Y grows down.
package kdtile

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Type identifies one of the four half-tiles. 0 and 1 are the mirror halves
// of a kite, 2 and 3 the mirror halves of a dart.
type Type uint8

const (
	KiteLeft Type = iota
	KiteRight
	DartLeft
	DartRight
)

// Valid reports whether t is one of the four half-tile types.
func (t Type) Valid() bool {
	return t <= DartRight
}

// Kind returns the tile the half belongs to.
func (t Type) Kind() Kind {
	if t == KiteLeft || t == KiteRight {
		return Kite
	}
	return Dart
}

func (t Type) String() string {
	switch t {
	case KiteLeft:
		return "kite-left"
	case KiteRight:
		return "kite-right"
	case DartLeft:
		return "dart-left"
	case DartRight:
		return "dart-right"
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Kind is the full tile shape a half-triangle belongs to.
type Kind uint8

const (
	Kite Kind = iota
	Dart
)

func (k Kind) String() string {
	if k == Kite {
		return "kite"
	}
	return "dart"
}

// Triangle is an isosceles half-tile. p1 is the apex; the legs p1-p2 and
// p1-p3 are Phi times the base p2-p3 for kite halves and 1/Phi times the
// base for dart halves.
//
// Triangles are values. The only state that changes after construction is
// the interior flag, which Build sets on the copies it returns for
// triangles that were subdivided further.
type Triangle struct {
	typ        Type
	p1, p2, p3 geom.Coord
	interior   bool
}

// NewTriangle validates and returns a triangle of type t.
func NewTriangle(t Type, p1, p2, p3 geom.Coord) (Triangle, error) {
	if !t.Valid() {
		return Triangle{}, fmt.Errorf("%w: %d", ErrInvalidTriangleType, t)
	}
	for _, p := range [...]geom.Coord{p1, p2, p3} {
		if !finite(p.X) || !finite(p.Y) {
			return Triangle{}, fmt.Errorf("%w: (%v, %v)", ErrInvalidGeometry, p.X, p.Y)
		}
	}
	return Triangle{typ: t, p1: p1, p2: p2, p3: p3}, nil
}

// NewTriangleFromSlices builds a triangle from raw coordinate slices, as
// read from user input or a decoded document. Every slice must hold
// exactly two values.
func NewTriangleFromSlices(t int, p1, p2, p3 []float64) (Triangle, error) {
	if t < 0 || t > int(DartRight) {
		return Triangle{}, fmt.Errorf("%w: %d", ErrInvalidTriangleType, t)
	}
	pts := [3]geom.Coord{}
	for i, p := range [...][]float64{p1, p2, p3} {
		if len(p) != 2 {
			return Triangle{}, fmt.Errorf("%w: point %d has %d coordinates", ErrInvalidGeometry, i+1, len(p))
		}
		pts[i] = geom.Coord{X: p[0], Y: p[1]}
	}
	return NewTriangle(Type(t), pts[0], pts[1], pts[2])
}

// mk is the unchecked constructor used by the subdivision rules, whose
// inputs are already valid.
func mk(t Type, p1, p2, p3 geom.Coord) Triangle {
	return Triangle{typ: t, p1: p1, p2: p2, p3: p3}
}

func (t Triangle) Type() Type       { return t.typ }
func (t Triangle) Kind() Kind       { return t.typ.Kind() }
func (t Triangle) P1() geom.Coord   { return t.p1 }
func (t Triangle) P2() geom.Coord   { return t.p2 }
func (t Triangle) P3() geom.Coord   { return t.p3 }
func (t Triangle) IsInterior() bool { return t.interior }

// Points returns p1, p2, p3 in order.
func (t Triangle) Points() [3]geom.Coord {
	return [3]geom.Coord{t.p1, t.p2, t.p3}
}

func (t Triangle) withInterior() Triangle {
	t.interior = true
	return t
}

// EdgeLength returns the distance between points i and j (1-based).
func (t Triangle) EdgeLength(i, j int) float64 {
	pts := t.Points()
	return pts[i-1].DistanceFrom(pts[j-1])
}

// Base returns the length of the base p2-p3.
func (t Triangle) Base() float64 {
	return t.p2.DistanceFrom(t.p3)
}

// Area returns the unsigned area of the triangle.
func (t Triangle) Area() float64 {
	a, b, c := t.p1, t.p2, t.p3
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// Centroid returns the mean of the three points.
func (t Triangle) Centroid() geom.Coord {
	return t.p1.Plus(t.p2).Plus(t.p3).Times(1.0 / 3)
}

// Bounds returns the axis-aligned bounding box.
func (t Triangle) Bounds() geom.Rect {
	r := geom.Rect{Min: t.p1, Max: t.p1}
	r.ExpandToContainCoord(t.p2)
	r.ExpandToContainCoord(t.p3)
	return r
}

func (t Triangle) String() string {
	return fmt.Sprintf("%s[(%g,%g) (%g,%g) (%g,%g)]", t.typ,
		t.p1.X, t.p1.Y, t.p2.X, t.p2.Y, t.p3.X, t.p3.Y)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
