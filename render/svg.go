package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jbeda/geom"

	"penrose-kites/config"
)

////////////////////////////////////////////////////////////////////////////
// SVG serialization helper

type SVG struct {
	writer io.Writer
	err    error
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

// Err returns the first write error, if any.
func (svg *SVG) Err() error {
	return svg.err
}

func (svg *SVG) printf(format string, a ...interface{}) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// Each extra parameter is either a raw attribute (name='value') or a bare
// style string.
// BUGBUG: not quoting aware
func extraparams(s []string) string {
	var ep strings.Builder
	for _, p := range s {
		if strings.Index(p, "=") > 0 {
			ep.WriteString(p + " ")
		} else if len(p) > 0 {
			fmt.Fprintf(&ep, "style='%s' ", p)
		}
	}
	return ep.String()
}

func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), extraparams(s))
}

func (svg *SVG) End() {
	svg.printf("</svg>\n")
}

func (svg *SVG) Line(p1 geom.Coord, p2 geom.Coord, s ...string) {
	svg.printf("<line x1='%f' y1='%f' x2='%f' y2='%f' %s/>\n", p1.X, p1.Y, p2.X, p2.Y, extraparams(s))
}

func (svg *SVG) Rect(r geom.Rect, s ...string) {
	svg.printf("<rect x='%f' y='%f' width='%f' height='%f' %s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), extraparams(s))
}

func (svg *SVG) StartPath(p1 geom.Coord, s ...string) {
	svg.printf("<path %sd='M%f,%f", extraparams(s), p1.X, p1.Y)
}

func (svg *SVG) PathLineTo(p geom.Coord) {
	svg.printf(" L%f,%f", p.X, p.Y)
}

func (svg *SVG) EndPath() {
	svg.printf(" Z'/>\n")
}

// svgCanvas adapts SVG to the shared drawing routine.
type svgCanvas struct {
	*SVG
}

func (c svgCanvas) polygon(pts [3]geom.Coord, fill string) {
	c.StartPath(pts[0], fmt.Sprintf("fill: %s; stroke: none", fill))
	c.PathLineTo(pts[1])
	c.PathLineTo(pts[2])
	c.EndPath()
}

func (c svgCanvas) line(a, b geom.Coord, color string, width float64) {
	c.Line(a, b, fmt.Sprintf("stroke: %s; stroke-width: %g; stroke-linecap: round", color, width))
}

func (c svgCanvas) square(corner geom.Coord, side float64, color string, width float64) {
	r := geom.Rect{Min: corner, Max: corner.Plus(geom.Coord{X: side, Y: side})}
	c.Rect(r, fmt.Sprintf("fill: none; stroke: %s; stroke-width: %g", color, width))
}

// WriteSVG renders s as a standalone SVG document.
func WriteSVG(w io.Writer, s Scene, st config.Style) error {
	svg := NewSVG(w)
	size := float64(s.Size)
	svg.Start(geom.Rect{Max: geom.Coord{X: size, Y: size}},
		fmt.Sprintf("width='%d'", s.Size), fmt.Sprintf("height='%d'", s.Size))
	svg.Rect(geom.Rect{Max: geom.Coord{X: size, Y: size}}, "fill: "+st.Background)
	draw(svgCanvas{svg}, s, st)
	svg.End()
	return svg.Err()
}
