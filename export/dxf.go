package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"

	"penrose-kites/kdtile"
)

// DXF layer names.
const (
	LayerKite   = "kite"
	LayerDart   = "dart"
	LayerGhost  = "ghost"
	LayerRegion = "region"
	LayerCut    = "cut"
)

// SaveDXF writes tris to path as closed lightweight polylines, one layer
// per kind, with subdivided triangles on the ghost layer. region, when
// non-nil, goes on its own layer.
func SaveDXF(path string, tris []kdtile.Triangle, region *kdtile.Rect) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	layers := []struct {
		name string
		cl   color.ColorNumber
	}{
		{LayerKite, color.Green},
		{LayerDart, color.Red},
		{LayerGhost, color.White},
		{LayerRegion, color.Blue},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.cl, dxf.DefaultLineType, false); err != nil {
			return err
		}
	}

	for _, t := range tris {
		layer := LayerGhost
		if !t.IsInterior() {
			layer = LayerDart
			if t.Kind() == kdtile.Kite {
				layer = LayerKite
			}
		}
		if err := d.ChangeLayer(layer); err != nil {
			return err
		}
		rg := ring(t)
		lwp := entity.NewLwPolyline(len(rg))
		for j, pt := range rg {
			lwp.Vertices[j] = []float64{pt[0], pt[1]}
		}
		d.AddEntity(lwp)
	}

	if region != nil {
		if err := d.ChangeLayer(LayerRegion); err != nil {
			return err
		}
		rg := RegionFeature(*region).Geometry.Bound().ToRing()
		lwp := entity.NewLwPolyline(len(rg))
		for j, pt := range rg {
			lwp.Vertices[j] = []float64{pt[0], pt[1]}
		}
		d.AddEntity(lwp)
	}

	return d.SaveAs(path)
}

// SaveCutDXF writes the paths of plan to path as open polylines on the cut
// layer, in plan order.
func SaveCutDXF(path string, plan *CutPlan) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0
	if _, err := d.AddLayer(LayerCut, color.Red, dxf.DefaultLineType, true); err != nil {
		return err
	}
	for _, p := range plan.Paths {
		pts := p.Points()
		lwp := entity.NewLwPolyline(len(pts))
		for j, pt := range pts {
			lwp.Vertices[j] = []float64{pt.X, pt.Y}
		}
		d.AddEntity(lwp)
	}
	return d.SaveAs(path)
}
