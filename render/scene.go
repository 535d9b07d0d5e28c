// Package render draws generated tilings as SVG documents or PNG images.
//
// Subdivided ("ghost") triangles are drawn as unfilled gray outlines
// beneath the leaves. Leaves are filled by kind, with the seam between the
// two halves of a tile stroked in the fill colour so each kite and dart
// reads as a single shape.
package render

import (
	"github.com/jbeda/geom"

	"penrose-kites/config"
	"penrose-kites/kdtile"
)

// DefaultStyle returns the built-in palette.
func DefaultStyle() config.Style {
	return config.Default().Style
}

// Transform maps tiling coordinates to output coordinates:
// Ratio * (p - Origin).
type Transform struct {
	Origin geom.Coord
	Ratio  float64
}

func Identity() Transform {
	return Transform{Ratio: 1}
}

// Fullscreen scales the square r up to fill a screen of side screen.
func Fullscreen(r kdtile.Rect, screen float64) Transform {
	return Transform{
		Origin: geom.Coord{X: r.X, Y: r.Y},
		Ratio:  screen / r.Length,
	}
}

func (t Transform) Apply(p geom.Coord) geom.Coord {
	return p.Minus(t.Origin).Times(t.Ratio)
}

// Scene is what gets drawn: a build result on a Size by Size canvas, with an
// optional region. A Fullscreen scene with a region draws only the leaves,
// scaled so the region fills the canvas.
type Scene struct {
	Triangles  []kdtile.Triangle
	Size       int
	Region     *kdtile.Rect
	Fullscreen bool
}

func (s Scene) transform() Transform {
	if s.Fullscreen && s.Region != nil {
		return Fullscreen(*s.Region, float64(s.Size))
	}
	return Identity()
}

// canvas is the drawing surface shared by the SVG and PNG backends.
type canvas interface {
	polygon(pts [3]geom.Coord, fill string)
	line(a, b geom.Coord, color string, width float64)
	square(corner geom.Coord, side float64, color string, width float64)
}

func draw(c canvas, s Scene, st config.Style) {
	tr := s.transform()
	ghosts, leaves := kdtile.Partition(s.Triangles)

	if !s.Fullscreen {
		for _, g := range ghosts {
			p := g.Points()
			c.line(p[0], p[1], st.GhostColor, st.LineWidth)
			c.line(p[0], p[2], st.GhostColor, st.LineWidth)
			c.line(p[1], p[2], st.GhostColor, st.LineWidth)
		}
	}

	for _, l := range leaves {
		p := l.Points()
		for i := range p {
			p[i] = tr.Apply(p[i])
		}
		drawLeaf(c, l.Type(), p, st)
	}

	if s.Region != nil && !s.Fullscreen {
		r := s.Region
		c.square(geom.Coord{X: r.X, Y: r.Y}, r.Length, st.RegionColor, 2*st.LineWidth)
	}
}

// drawLeaf fills the half-tile and strokes its edges. The leg shared with
// the mirror half is stroked in the fill colour, the other leg and the base
// in the line colour.
func drawLeaf(c canvas, typ kdtile.Type, p [3]geom.Coord, st config.Style) {
	fill := st.DartColor
	if typ.Kind() == kdtile.Kite {
		fill = st.KiteColor
	}
	c.polygon(p, fill)

	seam, outer := p[1], p[2]
	if typ == kdtile.KiteRight || typ == kdtile.DartRight {
		seam, outer = p[2], p[1]
	}
	c.line(p[0], seam, fill, st.LineWidth)
	c.line(p[0], outer, st.LineColor, st.LineWidth)
	c.line(p[1], p[2], st.LineColor, st.LineWidth)
}
