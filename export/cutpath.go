package export

import (
	"container/list"
	"math"

	"github.com/jbeda/geom"

	"penrose-kites/kdtile"
)

////////////////////////////////////////////////////////////////////////////
// Cut paths
//
// A cut plan is the tile outlines of a tiling as a few long polylines, in an
// order that keeps pen-up travel short. It is what a plotter or a laser
// cutter wants: every edge once, seams between the halves of a tile left
// out.

// Endpoints closer than this are the same point.
const pointQuantum = 1e-6

type pointKey [2]int64

func keyOf(p geom.Coord) pointKey {
	return pointKey{int64(math.Round(p.X / pointQuantum)), int64(math.Round(p.Y / pointQuantum))}
}

type edgeKey [2]pointKey

func edgeKeyOf(a, b geom.Coord) edgeKey {
	ka, kb := keyOf(a), keyOf(b)
	if kb[0] < ka[0] || (kb[0] == ka[0] && kb[1] < ka[1]) {
		ka, kb = kb, ka
	}
	return edgeKey{ka, kb}
}

// +++ CutLine
type CutLine struct {
	A, B geom.Coord
}

func (cl *CutLine) Reverse() {
	cl.A, cl.B = cl.B, cl.A
}

func (cl *CutLine) Length() float64 {
	return cl.A.DistanceFrom(cl.B)
}

// +++ Path
type Path struct {
	segs *list.List
}

func (me *Path) init() {
	if me.segs == nil {
		me.segs = new(list.List)
	}
}

func (me *Path) PushFront(cl *CutLine) {
	me.init()
	me.segs.PushFront(cl)
}

func (me *Path) PushBack(cl *CutLine) {
	me.init()
	me.segs.PushBack(cl)
}

func (me *Path) Len() int {
	if me.segs == nil {
		return 0
	}
	return me.segs.Len()
}

func (me *Path) Reverse() {
	newSegs := new(list.List)
	for e := me.segs.Front(); e != nil; e = e.Next() {
		e.Value.(*CutLine).Reverse()
		newSegs.PushFront(e.Value)
	}
	me.segs = newSegs
}

func (me *Path) FrontPoint() geom.Coord {
	return me.segs.Front().Value.(*CutLine).A
}

func (me *Path) BackPoint() geom.Coord {
	return me.segs.Back().Value.(*CutLine).B
}

// Points returns the vertices along the path, first to last.
func (me *Path) Points() []geom.Coord {
	if me.Len() == 0 {
		return nil
	}
	pts := []geom.Coord{me.FrontPoint()}
	for e := me.segs.Front(); e != nil; e = e.Next() {
		pts = append(pts, e.Value.(*CutLine).B)
	}
	return pts
}

func (me *Path) TotalLength() float64 {
	total := 0.0
	if me.segs == nil {
		return total
	}
	for e := me.segs.Front(); e != nil; e = e.Next() {
		total += e.Value.(*CutLine).Length()
	}
	return total
}

func (me *Path) IsClosed() bool {
	return me.Len() > 0 && keyOf(me.FrontPoint()) == keyOf(me.BackPoint())
}

// CutLines returns the distinct tile outline edges of the leaves in tris.
// The leg a half shares with its mirror is left out unless the mirror is
// missing from tris, as happens at the edge of a region.
func CutLines(tris []kdtile.Triangle) []*CutLine {
	var (
		cuts  []*CutLine
		seen  = map[edgeKey]bool{}
		seams = map[edgeKey]int{}
		lone  = map[edgeKey]*CutLine{}
	)
	add := func(a, b geom.Coord) {
		k := edgeKeyOf(a, b)
		if seen[k] {
			return
		}
		seen[k] = true
		cuts = append(cuts, &CutLine{a, b})
	}

	for _, t := range tris {
		if t.IsInterior() {
			continue
		}
		p := t.Points()
		seam, outer := p[1], p[2]
		if t.Type() == kdtile.KiteRight || t.Type() == kdtile.DartRight {
			seam, outer = p[2], p[1]
		}
		add(p[0], outer)
		add(p[1], p[2])

		k := edgeKeyOf(p[0], seam)
		seams[k]++
		lone[k] = &CutLine{p[0], seam}
	}

	for _, t := range tris {
		if t.IsInterior() {
			continue
		}
		p := t.Points()
		seam := p[1]
		if t.Type() == kdtile.KiteRight || t.Type() == kdtile.DartRight {
			seam = p[2]
		}
		k := edgeKeyOf(p[0], seam)
		if seams[k] == 1 && !seen[k] {
			seen[k] = true
			cuts = append(cuts, lone[k])
		}
	}
	return cuts
}

// JoinPaths chains cuts sharing endpoints into as few paths as a greedy
// walk finds. Each cut ends up in exactly one path and may be reversed.
func JoinPaths(cuts []*CutLine) []*Path {
	ends := map[pointKey][]int{}
	for i, cl := range cuts {
		ends[keyOf(cl.A)] = append(ends[keyOf(cl.A)], i)
		ends[keyOf(cl.B)] = append(ends[keyOf(cl.B)], i)
	}
	used := make([]bool, len(cuts))

	// next claims an unused cut touching p and orients it to start there.
	next := func(p geom.Coord) *CutLine {
		k := keyOf(p)
		for _, i := range ends[k] {
			if used[i] {
				continue
			}
			used[i] = true
			cl := cuts[i]
			if keyOf(cl.A) != k {
				cl.Reverse()
			}
			return cl
		}
		return nil
	}

	var paths []*Path
	for i, cl := range cuts {
		if used[i] {
			continue
		}
		used[i] = true
		path := new(Path)
		path.PushBack(cl)
		for c := next(path.BackPoint()); c != nil; c = next(path.BackPoint()) {
			path.PushBack(c)
		}
		for c := next(path.FrontPoint()); c != nil; c = next(path.FrontPoint()) {
			c.Reverse()
			path.PushFront(c)
		}
		paths = append(paths, path)
	}
	return paths
}

// Travel is the pen-up distance from the end of each path to the start of
// the next.
func Travel(paths []*Path) float64 {
	total := 0.0
	for i := 1; i < len(paths); i++ {
		total += paths[i-1].BackPoint().DistanceFrom(paths[i].FrontPoint())
	}
	return total
}

// OrderPaths reorders paths with a greedy nearest-neighbour walk from the
// first one, reversing a path when entering it from its back is closer.
func OrderPaths(paths []*Path) []*Path {
	if len(paths) < 2 {
		return paths
	}

	oldPaths := new(list.List)
	for _, p := range paths[1:] {
		oldPaths.PushBack(p)
	}

	newPaths := []*Path{paths[0]}
	lastPoint := paths[0].BackPoint()
	for oldPaths.Len() != 0 {
		bestDistance := math.MaxFloat64
		var best *list.Element
		bestReversed := false
		for e := oldPaths.Front(); e != nil; e = e.Next() {
			p := e.Value.(*Path)
			if d := lastPoint.DistanceFrom(p.FrontPoint()); d < bestDistance {
				bestDistance, best, bestReversed = d, e, false
			}
			if d := lastPoint.DistanceFrom(p.BackPoint()); d < bestDistance {
				bestDistance, best, bestReversed = d, e, true
			}
		}
		p := oldPaths.Remove(best).(*Path)
		if bestReversed {
			p.Reverse()
		}
		newPaths = append(newPaths, p)
		lastPoint = p.BackPoint()
	}
	return newPaths
}

// CutPlan is the ordered cut paths of a tiling.
type CutPlan struct {
	Paths  []*Path
	Cuts   int
	Length float64
	Travel float64
}

// PlanCuts builds the cut plan for the leaves of tris.
func PlanCuts(tris []kdtile.Triangle) *CutPlan {
	cuts := CutLines(tris)
	plan := &CutPlan{Cuts: len(cuts)}
	plan.Paths = OrderPaths(JoinPaths(cuts))
	for _, p := range plan.Paths {
		plan.Length += p.TotalLength()
	}
	plan.Travel = Travel(plan.Paths)
	return plan
}
