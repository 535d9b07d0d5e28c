// Package generator turns user requests into tilings. It owns the policy the
// kdtile engine leaves to callers: the depth cap, the choice between a full
// tiling and a bounded region, and where random regions come from.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"penrose-kites/config"
	"penrose-kites/kdtile"
)

// ErrDepthTooLarge is returned for a requested depth above the configured
// maximum. Past kdtile.MaxAccurateDepth floating-point drift between
// neighbouring triangles becomes visible.
var ErrDepthTooLarge = errors.New("generator: depth too large")

// Request selects what to generate. A nil Region with Random unset is a
// full tiling at Depth; otherwise Depth is ignored and derived from the
// region's size.
type Request struct {
	Depth  int
	Region *kdtile.Rect
	Random bool
	Seed   uint64
}

// Result is a generated tiling.
type Result struct {
	ID        string
	Root      kdtile.Triangle
	Depth     int
	Region    *kdtile.Rect
	Triangles []kdtile.Triangle
	Stats     kdtile.Stats
}

type Generator struct {
	cfg config.Config
	log *slog.Logger
}

type Option func(*Generator)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

func New(cfg config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{cfg: cfg, log: slog.Default()}
	for _, o := range opts {
		o(g)
	}
	return g, nil
}

func (g *Generator) Config() config.Config { return g.cfg }

// Generate builds the tiling described by req. It checks ctx once before
// starting; the build itself runs to completion.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base := float64(g.cfg.BaseLength)
	root, err := kdtile.Root(base)
	if err != nil {
		return nil, err
	}

	res := &Result{ID: uuid.New().String(), Root: root}
	var filter kdtile.Filter = kdtile.AcceptAll{}

	if req.Random || req.Region != nil {
		rect, err := g.region(req)
		if err != nil {
			return nil, err
		}
		depth, err := kdtile.DepthForRegion(rect.Length, g.cfg.DensityConstant, kdtile.RootArea(base))
		if err != nil {
			return nil, err
		}
		if depth > g.cfg.MaxDepth {
			g.log.Warn("estimated depth clamped",
				"id", res.ID, "estimated", depth, "max", g.cfg.MaxDepth)
			depth = g.cfg.MaxDepth
		}
		res.Region = &rect
		res.Depth = depth
		filter = kdtile.RegionBounded{Rect: rect, Tolerance: g.cfg.Tolerance}
	} else {
		if req.Depth > g.cfg.MaxDepth {
			return nil, fmt.Errorf("%w: %d > %d", ErrDepthTooLarge, req.Depth, g.cfg.MaxDepth)
		}
		res.Depth = req.Depth
	}

	res.Triangles, err = kdtile.BuildConcurrent(root, res.Depth, filter)
	if err != nil {
		return nil, err
	}
	res.Stats = kdtile.Summarize(res.Triangles)

	attrs := []any{"id", res.ID, "depth", res.Depth, "triangles", len(res.Triangles), "leaves", res.Stats.Leaves}
	if res.Region != nil {
		attrs = append(attrs, "x", res.Region.X, "y", res.Region.Y, "length", res.Region.Length)
	}
	g.log.Info("tiling generated", attrs...)
	return res, nil
}

func (g *Generator) region(req Request) (kdtile.Rect, error) {
	if req.Region != nil {
		if !req.Region.Valid() {
			return kdtile.Rect{}, fmt.Errorf("%w: %+v", kdtile.ErrInvalidRegion, *req.Region)
		}
		return *req.Region, nil
	}
	rng := rand.New(rand.NewPCG(req.Seed, req.Seed^0x9e3779b97f4a7c15))
	return kdtile.RandomRegion(rng, g.cfg.BaseLength, g.cfg.Buffer)
}
