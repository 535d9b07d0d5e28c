package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"penrose-kites/config"
	"penrose-kites/export"
	"penrose-kites/generator"
	"penrose-kites/kdtile"
	"penrose-kites/render"
	"penrose-kites/server"
)

// Output formats understood by -format.
const (
	FORMAT_SVG     = "svg"
	FORMAT_PNG     = "png"
	FORMAT_GEOJSON = "geojson"
	FORMAT_DXF     = "dxf"
	FORMAT_CUT     = "cut"
)

type options struct {
	configPath string
	depth      int
	x, y       float64
	length     float64
	random     bool
	seed       uint64
	fullscreen bool
	format     string
	out        string
	serve      bool
	addr       string
	verbose    bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("penrose", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "XML config file (built-in defaults when empty)")
	fs.IntVar(&o.depth, "depth", 5, "subdivision depth for a full tiling")
	fs.Float64Var(&o.x, "x", 0, "region left edge")
	fs.Float64Var(&o.y, "y", 0, "region top edge")
	fs.Float64Var(&o.length, "length", 0, "region side; a positive value selects region mode")
	fs.BoolVar(&o.random, "random", false, "tile a random region")
	fs.Uint64Var(&o.seed, "seed", uint64(time.Now().UnixNano()), "seed for -random")
	fs.BoolVar(&o.fullscreen, "fullscreen", false, "scale the region to fill the image")
	fs.StringVar(&o.format, "format", FORMAT_SVG, "output format: svg, png, geojson, dxf or cut")
	fs.StringVar(&o.out, "o", "", "output file (stdout when empty; required for dxf and cut)")
	fs.BoolVar(&o.serve, "serve", false, "serve tilings over HTTP instead of writing one")
	fs.StringVar(&o.addr, "addr", "", "listen address for -serve (overrides the config)")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch o.format {
	case FORMAT_SVG, FORMAT_PNG, FORMAT_GEOJSON:
	case FORMAT_DXF, FORMAT_CUT:
		if o.out == "" && !o.serve {
			return nil, fmt.Errorf("-format %s needs -o", o.format)
		}
	default:
		return nil, fmt.Errorf("unknown -format %q", o.format)
	}
	return o, nil
}

func (o *options) request() generator.Request {
	switch {
	case o.random:
		return generator.Request{Random: true, Seed: o.seed}
	case o.length > 0:
		return generator.Request{Region: &kdtile.Rect{X: o.x, Y: o.y, Length: o.length}}
	}
	return generator.Request{Depth: o.depth}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

////////////////////////////////////////////////////////////////////////////
// Output

func write(o *options, cfg config.Config, res *generator.Result) error {
	switch o.format {
	case FORMAT_DXF:
		return export.SaveDXF(o.out, res.Triangles, res.Region)
	case FORMAT_CUT:
		plan := export.PlanCuts(res.Triangles)
		slog.Info("cut plan",
			"cuts", plan.Cuts, "paths", len(plan.Paths),
			"length", plan.Length, "travel", plan.Travel)
		return export.SaveCutDXF(o.out, plan)
	}

	var w io.Writer = os.Stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	scene := render.Scene{
		Triangles:  res.Triangles,
		Size:       cfg.BaseLength,
		Region:     res.Region,
		Fullscreen: o.fullscreen,
	}
	switch o.format {
	case FORMAT_PNG:
		return render.WritePNG(w, scene, cfg.Style)
	case FORMAT_GEOJSON:
		return export.WriteGeoJSON(w, res.Triangles, res.Region)
	}
	return render.WriteSVG(w, scene, cfg.Style)
}

func serve(ctx context.Context, addr string, gen *generator.Generator, log *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(gen, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func run(ctx context.Context, args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)
	kdtile.SetLogger(log.With("pkg", "kdtile"))

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	gen, err := generator.New(cfg, generator.WithLogger(log))
	if err != nil {
		return err
	}

	if o.serve {
		addr := cfg.Server.Addr
		if o.addr != "" {
			addr = o.addr
		}
		return serve(ctx, addr, gen, log)
	}

	res, err := gen.Generate(ctx, o.request())
	if err != nil {
		return err
	}
	if res.Region != nil {
		log.Info("region",
			"x", res.Region.X, "y", res.Region.Y, "length", res.Region.Length,
			"depth", res.Depth)
	}
	return write(o, cfg, res)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "penrose:", err)
		os.Exit(1)
	}
}
