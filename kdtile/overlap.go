package kdtile

import "github.com/jbeda/geom"

// Tolerance is the default margin, in coordinate units, applied to every
// boundary comparison in Overlaps. It absorbs the drift accumulated over a
// dozen levels of subdivision so triangles on a region's edge are kept.
const Tolerance = 3.0

// Rect is an axis-aligned square with its top-left corner at (X, Y).
type Rect struct {
	X, Y   float64
	Length float64
}

// Valid reports whether the square has a finite position and a positive
// finite side.
func (r Rect) Valid() bool {
	return finite(r.X) && finite(r.Y) && finite(r.Length) && r.Length > 0
}

func (r Rect) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: r.X, Y: r.Y},
		Max: geom.Coord{X: r.X + r.Length, Y: r.Y + r.Length},
	}
}

// Corners returns top-left, bottom-left, top-right and bottom-right.
func (r Rect) Corners() [4]geom.Coord {
	return [4]geom.Coord{
		{X: r.X, Y: r.Y},
		{X: r.X, Y: r.Y + r.Length},
		{X: r.X + r.Length, Y: r.Y},
		{X: r.X + r.Length, Y: r.Y + r.Length},
	}
}

// Overlaps reports whether t and r intersect, touch, or one contains the
// other, using the default Tolerance.
func Overlaps(t Triangle, r Rect) bool {
	return OverlapsWithin(t, r, Tolerance)
}

// OverlapsWithin is Overlaps with an explicit tolerance. It never reports
// false for shapes that truly intersect; shapes separated by less than tol
// may be reported as overlapping.
func OverlapsWithin(t Triangle, r Rect, tol float64) bool {
	return vertexInRect(t, r, tol) ||
		cornerInTriangle(t, r, tol) ||
		legsCrossRect(t, r, tol)
}

// within reports lo-tol <= v <= hi+tol.
func within(v, lo, hi, tol float64) bool {
	return v+tol >= lo && v <= hi+tol
}

func minmax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

func vertexInRect(t Triangle, r Rect, tol float64) bool {
	for _, p := range t.Points() {
		if within(p.X, r.X, r.X+r.Length, tol) && within(p.Y, r.Y, r.Y+r.Length, tol) {
			return true
		}
	}
	return false
}

// cornerInTriangle casts a ray from the apex through each rectangle corner
// and intersects it with the base line. A corner is inside when it lies on
// the apex side of that intersection and the intersection lands on the base.
func cornerInTriangle(t Triangle, r Rect, tol float64) bool {
	apex, b1, b2 := t.p1, t.p2, t.p3

	baseVertical := b1.X == b2.X
	var m1, c1 float64
	if !baseVertical {
		m1 = (b2.Y - b1.Y) / (b2.X - b1.X)
		c1 = b1.Y - m1*b1.X
	}
	loX, hiX := minmax(b1.X, b2.X)
	loY, hiY := minmax(b1.Y, b2.Y)

	for _, c := range r.Corners() {
		if c == apex {
			return true
		}

		var hit geom.Coord
		rayVertical := c.X == apex.X
		switch {
		case rayVertical && baseVertical:
			continue
		case rayVertical:
			hit = geom.Coord{X: c.X, Y: m1*c.X + c1}
		case baseVertical:
			m2 := (c.Y - apex.Y) / (c.X - apex.X)
			hit = geom.Coord{X: b1.X, Y: apex.Y + m2*(b1.X-apex.X)}
		default:
			m2 := (c.Y - apex.Y) / (c.X - apex.X)
			if m2 == m1 {
				continue
			}
			c2 := apex.Y - m2*apex.X
			x := (c1 - c2) / (m2 - m1)
			hit = geom.Coord{X: x, Y: m1*x + c1}
		}

		// Behind the apex.
		toCorner, toHit := c.Minus(apex), hit.Minus(apex)
		if toCorner.X*toHit.X+toCorner.Y*toHit.Y < 0 {
			continue
		}
		// Past the base.
		if apex.DistanceFrom(c) > apex.DistanceFrom(hit) {
			continue
		}
		if within(hit.X, loX, hiX, tol) && within(hit.Y, loY, hiY, tol) {
			return true
		}
	}
	return false
}

// legsCrossRect intersects the legs p1-p2 and p1-p3 with the four sides of
// the rectangle. The base needs no test of its own: if only the base
// crossed the rectangle, a corner would lie inside the triangle.
func legsCrossRect(t Triangle, r Rect, tol float64) bool {
	left, right := r.X, r.X+r.Length
	top, bottom := r.Y, r.Y+r.Length

	for _, leg := range [...][2]geom.Coord{{t.p1, t.p2}, {t.p1, t.p3}} {
		a, b := leg[0], leg[1]
		loX, hiX := minmax(a.X, b.X)
		loY, hiY := minmax(a.Y, b.Y)
		onLeg := func(p geom.Coord) bool {
			return within(p.X, loX, hiX, tol) && within(p.Y, loY, hiY, tol)
		}

		if a.X == b.X {
			// Only the horizontal sides can cross a vertical leg.
			for _, y := range [...]float64{top, bottom} {
				p := geom.Coord{X: a.X, Y: y}
				if onLeg(p) && within(p.X, left, right, tol) {
					return true
				}
			}
			continue
		}

		m := (b.Y - a.Y) / (b.X - a.X)
		c := a.Y - m*a.X
		for _, x := range [...]float64{left, right} {
			p := geom.Coord{X: x, Y: m*x + c}
			if onLeg(p) && within(p.Y, top, bottom, tol) {
				return true
			}
		}
		if m == 0 {
			continue
		}
		for _, y := range [...]float64{top, bottom} {
			p := geom.Coord{X: (y - c) / m, Y: y}
			if onLeg(p) && within(p.X, left, right, tol) {
				return true
			}
		}
	}
	return false
}
