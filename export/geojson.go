// Package export writes generated tilings in interchange formats: GeoJSON
// for web maps and GIS tools, DXF for CAD and cutting machines.
package export

import (
	"errors"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"penrose-kites/kdtile"
)

var errNotTriangle = errors.New("export: feature is not a triangle")

func ring(t kdtile.Triangle) orb.Ring {
	p := t.Points()
	return orb.Ring{
		{p[0].X, p[0].Y},
		{p[1].X, p[1].Y},
		{p[2].X, p[2].Y},
		{p[0].X, p[0].Y},
	}
}

// FeatureCollection returns one polygon feature per triangle, in build
// order, carrying its type, kind and interior flag as properties.
func FeatureCollection(tris []kdtile.Triangle) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, t := range tris {
		f := geojson.NewFeature(orb.Polygon{ring(t)})
		f.Properties["type"] = int(t.Type())
		f.Properties["kind"] = t.Kind().String()
		f.Properties["interior"] = t.IsInterior()
		fc.Append(f)
	}
	return fc
}

// RegionFeature returns the region square as a polygon feature.
func RegionFeature(r kdtile.Rect) *geojson.Feature {
	b := orb.Bound{
		Min: orb.Point{r.X, r.Y},
		Max: orb.Point{r.X + r.Length, r.Y + r.Length},
	}
	f := geojson.NewFeature(b.ToPolygon())
	f.Properties["region"] = true
	return f
}

// WriteGeoJSON encodes tris, plus the region when non-nil, as a GeoJSON
// feature collection.
func WriteGeoJSON(w io.Writer, tris []kdtile.Triangle, region *kdtile.Rect) error {
	fc := FeatureCollection(tris)
	if region != nil {
		fc.Append(RegionFeature(*region))
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadGeoJSON decodes the leaf triangles of a document written by
// WriteGeoJSON. Interior and region features are skipped.
func ReadGeoJSON(r io.Reader) ([]kdtile.Triangle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, err
	}

	var out []kdtile.Triangle
	for _, f := range fc.Features {
		if flag(f.Properties, "region") || flag(f.Properties, "interior") {
			continue
		}
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok || len(poly) == 0 || len(poly[0]) < 3 {
			return nil, errNotTriangle
		}
		typ, ok := f.Properties["type"].(float64)
		if !ok {
			return nil, errNotTriangle
		}
		rg := poly[0]
		t, err := kdtile.NewTriangleFromSlices(int(typ),
			[]float64{rg[0][0], rg[0][1]},
			[]float64{rg[1][0], rg[1][1]},
			[]float64{rg[2][0], rg[2][1]})
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func flag(p geojson.Properties, key string) bool {
	b, _ := p[key].(bool)
	return b
}
