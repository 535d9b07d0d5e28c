package kdtile

import (
	"math"

	"github.com/jbeda/geom"
)

// Phi is the golden ratio relating the edges of parents and children.
const Phi = math.Phi

// lerp returns the point a fraction f of the way from a to b.
func lerp(a, b geom.Coord, f float64) geom.Coord {
	return a.Plus(b.Minus(a).Times(f))
}

// Children applies the kite/dart substitution rules to t. Kite halves
// produce one dart half and two kite halves; dart halves produce one of
// each. The result is freshly allocated and keeps rule order.
func Children(t Triangle) []Triangle {
	base := t.Base()
	side := base / Phi
	if t.Kind() == Kite {
		side = base * Phi
	}
	p1, p2, p3 := t.p1, t.p2, t.p3

	switch t.typ {
	case KiteLeft:
		r := base / side
		n1 := lerp(p1, p2, r)
		n2 := lerp(p3, p1, r)
		return []Triangle{
			mk(DartLeft, n2, p1, n1),
			mk(KiteRight, p3, n2, n1),
			mk(KiteLeft, p3, n1, p2),
		}
	case KiteRight:
		r := base / side
		n1 := lerp(p2, p1, r)
		n2 := lerp(p1, p3, r)
		return []Triangle{
			mk(DartRight, n1, n2, p1),
			mk(KiteLeft, p2, n2, n1),
			mk(KiteRight, p2, p3, n2),
		}
	case DartLeft:
		n1 := lerp(p2, p3, side/base)
		return []Triangle{
			mk(DartLeft, n1, p3, p1),
			mk(KiteRight, p2, n1, p1),
		}
	case DartRight:
		n1 := lerp(p2, p3, side/(Phi*base))
		return []Triangle{
			mk(DartRight, n1, p1, p2),
			mk(KiteLeft, p3, p1, n1),
		}
	}
	return nil
}

// Subdivide returns the children of t that f keeps. A child rejected by the
// filter is dropped, so none of its descendants are ever generated.
func Subdivide(t Triangle, f Filter) []Triangle {
	if f == nil {
		f = AcceptAll{}
	}
	children := Children(t)
	kept := children[:0]
	for _, c := range children {
		if c, ok := f.Apply(c); ok {
			kept = append(kept, c)
		}
	}
	return kept
}
