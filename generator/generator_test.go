package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"

	"penrose-kites/config"
	"penrose-kites/kdtile"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := New(config.Default(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.BaseLength = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New error = %v, want config.ErrInvalid", err)
	}
}

func TestGenerateDirect(t *testing.T) {
	g := newTestGenerator(t)
	res, err := g.Generate(context.Background(), Request{Depth: 5})
	if err != nil {
		t.Fatal(err)
	}
	kites, darts := kdtile.Counts(5)
	if uint64(res.Stats.Leaves) != kites+darts {
		t.Errorf("leaves = %d, want %d", res.Stats.Leaves, kites+darts)
	}
	if res.Region != nil {
		t.Error("direct mode produced a region")
	}
	if res.ID == "" {
		t.Error("missing result id")
	}
}

func TestGenerateDepthPolicy(t *testing.T) {
	g := newTestGenerator(t)
	tests := []struct {
		depth   int
		wantErr error
	}{
		{0, nil},
		{12, nil},
		{13, ErrDepthTooLarge},
		{-1, kdtile.ErrInvalidDepth},
	}
	for _, tt := range tests {
		if tt.depth == 12 && testing.Short() {
			continue
		}
		_, err := g.Generate(context.Background(), Request{Depth: tt.depth})
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("depth %d: error = %v, want %v", tt.depth, err, tt.wantErr)
		}
	}
}

func TestGenerateRegion(t *testing.T) {
	g := newTestGenerator(t)
	rect := kdtile.Rect{X: 400, Y: 150, Length: 100}
	res, err := g.Generate(context.Background(), Request{Region: &rect})
	if err != nil {
		t.Fatal(err)
	}
	if res.Depth != 11 {
		t.Errorf("depth = %d, want 11", res.Depth)
	}
	if res.Region == nil || *res.Region != rect {
		t.Errorf("region = %v", res.Region)
	}
	for _, tri := range res.Triangles[1:] {
		if !kdtile.Overlaps(tri, rect) {
			t.Fatalf("%v outside the region", tri)
		}
	}
}

func TestGenerateRegionClampsDepth(t *testing.T) {
	g := newTestGenerator(t)
	rect := kdtile.Rect{X: 440, Y: 200, Length: 20}
	res, err := g.Generate(context.Background(), Request{Region: &rect})
	if err != nil {
		t.Fatal(err)
	}
	if res.Depth != g.Config().MaxDepth {
		t.Errorf("depth = %d, want clamp to %d", res.Depth, g.Config().MaxDepth)
	}
}

func TestGenerateInvalidRegion(t *testing.T) {
	g := newTestGenerator(t)
	rect := kdtile.Rect{X: 0, Y: 0, Length: 0}
	if _, err := g.Generate(context.Background(), Request{Region: &rect}); !errors.Is(err, kdtile.ErrInvalidRegion) {
		t.Errorf("error = %v, want ErrInvalidRegion", err)
	}
}

func TestGenerateRandomSeeded(t *testing.T) {
	g := newTestGenerator(t)
	a, err := g.Generate(context.Background(), Request{Random: true, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate(context.Background(), Request{Random: true, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}
	if *a.Region != *b.Region || !reflect.DeepEqual(a.Triangles, b.Triangles) {
		t.Error("same seed produced different tilings")
	}
	if a.ID == b.ID {
		t.Error("results share an id")
	}
}

func TestGenerateCanceled(t *testing.T) {
	g := newTestGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx, Request{Depth: 3}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
