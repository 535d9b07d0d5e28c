package render

import (
	"io"

	"github.com/gogpu/gg"
	"github.com/jbeda/geom"

	"penrose-kites/config"
)

// ggCanvas rasterizes onto a gg drawing context. gg reports fill and stroke
// failures per call; the first one is kept.
type ggCanvas struct {
	dc  *gg.Context
	err error
}

func (c *ggCanvas) keep(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *ggCanvas) polygon(pts [3]geom.Coord, fill string) {
	c.dc.SetColor(gg.Hex(fill))
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	c.dc.LineTo(pts[1].X, pts[1].Y)
	c.dc.LineTo(pts[2].X, pts[2].Y)
	c.dc.ClosePath()
	c.keep(c.dc.Fill())
}

func (c *ggCanvas) line(a, b geom.Coord, color string, width float64) {
	c.dc.SetColor(gg.Hex(color))
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	c.keep(c.dc.Stroke())
}

func (c *ggCanvas) square(corner geom.Coord, side float64, color string, width float64) {
	c.dc.SetColor(gg.Hex(color))
	c.dc.SetLineWidth(width)
	c.dc.DrawRectangle(corner.X, corner.Y, side, side)
	c.keep(c.dc.Stroke())
}

// WritePNG rasterizes s and encodes it as PNG.
func WritePNG(w io.Writer, s Scene, st config.Style) error {
	dc := gg.NewContext(s.Size, s.Size)
	defer dc.Close()

	dc.ClearWithColor(gg.Hex(st.Background))
	c := &ggCanvas{dc: dc}
	draw(c, s, st)
	if c.err != nil {
		return c.err
	}
	if err := dc.FlushGPU(); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}
