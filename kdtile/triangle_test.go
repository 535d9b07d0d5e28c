package kdtile

import (
	"errors"
	"math"
	"testing"

	"github.com/jbeda/geom"
)

// exampleRoot is the 900-wide root used throughout the tests.
func exampleRoot(t *testing.T) Triangle {
	t.Helper()
	root, err := NewTriangle(DartLeft,
		geom.Coord{X: 450, Y: 0},
		geom.Coord{X: 0, Y: 327.36},
		geom.Coord{X: 900, Y: 327.36})
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	return root
}

func TestNewTriangle(t *testing.T) {
	a, b, c := geom.Coord{X: 0, Y: 0}, geom.Coord{X: 1, Y: 0}, geom.Coord{X: 0, Y: 1}
	tests := []struct {
		name    string
		typ     Type
		p1      geom.Coord
		wantErr error
	}{
		{"kite left", KiteLeft, a, nil},
		{"dart right", DartRight, a, nil},
		{"type 4", Type(4), a, ErrInvalidTriangleType},
		{"type 255", Type(255), a, ErrInvalidTriangleType},
		{"NaN point", KiteLeft, geom.Coord{X: math.NaN(), Y: 0}, ErrInvalidGeometry},
		{"Inf point", KiteLeft, geom.Coord{X: 0, Y: math.Inf(-1)}, ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri, err := NewTriangle(tt.typ, tt.p1, b, c)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTriangle() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if tri.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tri.Type(), tt.typ)
			}
			if tri.IsInterior() {
				t.Error("new triangle should not be interior")
			}
		})
	}
}

func TestNewTriangleFromSlices(t *testing.T) {
	ok := []float64{1, 2}
	tests := []struct {
		name       string
		typ        int
		p1, p2, p3 []float64
		wantErr    error
	}{
		{"valid", 2, ok, ok, ok, nil},
		{"negative type", -1, ok, ok, ok, ErrInvalidTriangleType},
		{"type too large", 4, ok, ok, ok, ErrInvalidTriangleType},
		{"3-D point", 0, []float64{1, 2, 3}, ok, ok, ErrInvalidGeometry},
		{"1-D point", 1, ok, []float64{1}, ok, ErrInvalidGeometry},
		{"nil point", 3, ok, ok, nil, ErrInvalidGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleFromSlices(tt.typ, tt.p1, tt.p2, tt.p3)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTriangleFromSlices() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTypeKind(t *testing.T) {
	want := map[Type]Kind{KiteLeft: Kite, KiteRight: Kite, DartLeft: Dart, DartRight: Dart}
	for typ, kind := range want {
		if got := typ.Kind(); got != kind {
			t.Errorf("%v.Kind() = %v, want %v", typ, got, kind)
		}
	}
	if Type(7).Valid() {
		t.Error("Type(7).Valid() = true")
	}
}

func TestTriangleMeasures(t *testing.T) {
	tri, err := NewTriangle(KiteLeft,
		geom.Coord{X: 0, Y: 0},
		geom.Coord{X: 3, Y: 0},
		geom.Coord{X: 0, Y: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got := tri.EdgeLength(2, 3); got != 5 {
		t.Errorf("EdgeLength(2, 3) = %v, want 5", got)
	}
	if got := tri.EdgeLength(1, 3); got != 4 {
		t.Errorf("EdgeLength(1, 3) = %v, want 4", got)
	}
	if got := tri.Base(); got != 5 {
		t.Errorf("Base() = %v, want 5", got)
	}
	if got := tri.Area(); got != 6 {
		t.Errorf("Area() = %v, want 6", got)
	}
	b := tri.Bounds()
	if b.Min.X != 0 || b.Min.Y != 0 || b.Max.X != 3 || b.Max.Y != 4 {
		t.Errorf("Bounds() = %+v", b)
	}
	c := tri.Centroid()
	if math.Abs(c.X-1) > 1e-12 || math.Abs(c.Y-4.0/3) > 1e-12 {
		t.Errorf("Centroid() = %+v", c)
	}
}
