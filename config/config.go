// Package config loads the generator's tunables from an XML file.
package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"

	"penrose-kites/kdtile"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	XMLName xml.Name `xml:"config"`

	// BaseLength is the width of the root triangle and the side of the
	// square scene.
	BaseLength int `xml:"baseLength"`

	// DensityConstant controls how many triangles a region shows.
	DensityConstant float64 `xml:"densityConstant"`

	// Buffer keeps random regions away from the root's extremes and sets
	// their minimum side (Buffer/2).
	Buffer int `xml:"buffer"`

	// MaxDepth caps user-supplied and estimated depths.
	MaxDepth int `xml:"maxDepth"`

	// Tolerance is the overlap test's margin.
	Tolerance float64 `xml:"tolerance"`

	Style  Style  `xml:"style"`
	Server Server `xml:"server"`
}

// Style holds renderer colours as #rrggbb strings.
type Style struct {
	KiteColor   string  `xml:"kite"`
	DartColor   string  `xml:"dart"`
	LineColor   string  `xml:"line"`
	GhostColor  string  `xml:"ghost"`
	RegionColor string  `xml:"region"`
	Background  string  `xml:"background"`
	LineWidth   float64 `xml:"lineWidth"`
}

type Server struct {
	Addr string `xml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseLength:      900,
		DensityConstant: kdtile.DensityConstant,
		Buffer:          60,
		MaxDepth:        kdtile.MaxAccurateDepth,
		Tolerance:       kdtile.Tolerance,
		Style: Style{
			KiteColor:   "#228b22", // forest green
			DartColor:   "#90ee90", // light green
			LineColor:   "#000000",
			GhostColor:  "#808080",
			RegionColor: "#0000ff",
			Background:  "#ffffff",
			LineWidth:   1,
		},
		Server: Server{Addr: ":8426"},
	}
}

// Load reads path over the defaults. Elements missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := xml.NewDecoder(f).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.BaseLength <= 0:
		return fmt.Errorf("%w: baseLength %d", ErrInvalid, c.BaseLength)
	case c.DensityConstant < 0:
		return fmt.Errorf("%w: densityConstant %v", ErrInvalid, c.DensityConstant)
	case c.Buffer <= 0:
		return fmt.Errorf("%w: buffer %d", ErrInvalid, c.Buffer)
	case c.MaxDepth < 0 || c.MaxDepth > kdtile.MaxAccurateDepth:
		return fmt.Errorf("%w: maxDepth %d outside 0..%d", ErrInvalid, c.MaxDepth, kdtile.MaxAccurateDepth)
	case c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %v", ErrInvalid, c.Tolerance)
	case c.Style.LineWidth <= 0:
		return fmt.Errorf("%w: lineWidth %v", ErrInvalid, c.Style.LineWidth)
	}
	return nil
}
