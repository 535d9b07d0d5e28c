package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/jbeda/geom"

	"penrose-kites/kdtile"
)

func build(t *testing.T, depth int, f kdtile.Filter) []kdtile.Triangle {
	t.Helper()
	root, err := kdtile.Root(900)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := kdtile.Build(root, depth, f)
	if err != nil {
		t.Fatal(err)
	}
	return tris
}

func TestTransform(t *testing.T) {
	tr := Fullscreen(kdtile.Rect{X: 100, Y: 50, Length: 300}, 900)
	if tr.Ratio != 3 {
		t.Fatalf("Ratio = %v, want 3", tr.Ratio)
	}
	got := tr.Apply(geom.Coord{X: 200, Y: 150})
	if got.X != 300 || got.Y != 300 {
		t.Errorf("Apply = %+v, want (300, 300)", got)
	}
	id := Identity().Apply(geom.Coord{X: 7, Y: 9})
	if id.X != 7 || id.Y != 9 {
		t.Errorf("Identity().Apply = %+v", id)
	}
}

// recorder counts what draw asks a canvas to do.
type recorder struct {
	polygons []string
	lines    map[string]int
	squares  int
	maxX     float64
}

func (r *recorder) polygon(pts [3]geom.Coord, fill string) {
	r.polygons = append(r.polygons, fill)
	for _, p := range pts {
		r.maxX = math.Max(r.maxX, p.X)
	}
}

func (r *recorder) line(a, b geom.Coord, color string, width float64) {
	if r.lines == nil {
		r.lines = map[string]int{}
	}
	r.lines[color]++
}

func (r *recorder) square(geom.Coord, float64, string, float64) { r.squares++ }

func TestDrawGhostsAndLeaves(t *testing.T) {
	st := DefaultStyle()
	tris := build(t, 3, kdtile.AcceptAll{})
	ghosts, leaves := kdtile.Partition(tris)

	rec := &recorder{}
	draw(rec, Scene{Triangles: tris, Size: 900}, st)

	if len(rec.polygons) != len(leaves) {
		t.Errorf("polygons = %d, want %d", len(rec.polygons), len(leaves))
	}
	if got := rec.lines[st.GhostColor]; got != 3*len(ghosts) {
		t.Errorf("ghost lines = %d, want %d", got, 3*len(ghosts))
	}
	if got := rec.lines[st.LineColor]; got != 2*len(leaves) {
		t.Errorf("outline lines = %d, want %d", got, 2*len(leaves))
	}
	if rec.squares != 0 {
		t.Error("scene without a region drew a square")
	}
}

func TestDrawFullscreen(t *testing.T) {
	st := DefaultStyle()
	rect := kdtile.Rect{X: 400, Y: 150, Length: 100}
	tris := build(t, 6, kdtile.NewRegionBounded(rect))

	rec := &recorder{}
	draw(rec, Scene{Triangles: tris, Size: 900, Region: &rect, Fullscreen: true}, st)

	if rec.lines[st.GhostColor] != 0 {
		t.Error("fullscreen scene drew ghosts")
	}
	if rec.squares != 0 {
		t.Error("fullscreen scene drew the region outline")
	}
	// Scaled by 9 about the region's corner, leaves reach far past 900.
	if rec.maxX < 900 {
		t.Errorf("max x = %v, expected scaled coordinates", rec.maxX)
	}
}

func TestWriteSVG(t *testing.T) {
	rect := kdtile.Rect{X: 300, Y: 150, Length: 100}
	tris := build(t, 4, kdtile.NewRegionBounded(rect))
	_, leaves := kdtile.Partition(tris)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, Scene{Triangles: tris, Size: 900, Region: &rect}, DefaultStyle()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("not a complete SVG document")
	}
	if got := strings.Count(out, "<path "); got != len(leaves) {
		t.Errorf("paths = %d, want %d", got, len(leaves))
	}
	// Background plus region outline.
	if got := strings.Count(out, "<rect "); got != 2 {
		t.Errorf("rects = %d, want 2", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVGError(t *testing.T) {
	err := WriteSVG(failWriter{}, Scene{Triangles: build(t, 1, nil), Size: 100}, DefaultStyle())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("WriteSVG error = %v", err)
	}
}

func TestWritePNG(t *testing.T) {
	st := DefaultStyle()
	var buf bytes.Buffer
	if err := WritePNG(&buf, Scene{Triangles: build(t, 0, nil), Size: 900}, st); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 900 || b.Dy() != 900 {
		t.Fatalf("size = %v", b)
	}

	near := func(x, y int, want uint32) {
		t.Helper()
		r, g, b, _ := img.At(x, y).RGBA()
		wr, wg, wb := (want>>16)&0xff, (want>>8)&0xff, want&0xff
		if d(r>>8, wr) > 3 || d(g>>8, wg) > 3 || d(b>>8, wb) > 3 {
			t.Errorf("pixel (%d,%d) = %02x%02x%02x, want %06x", x, y, r>>8, g>>8, b>>8, want)
		}
	}
	near(450, 200, 0x90ee90) // inside the single dart half
	near(20, 20, 0xffffff)   // background
	near(450, 600, 0xffffff) // below the root
}

func d(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}
