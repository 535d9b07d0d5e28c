package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	doc := `<config>
	<baseLength>1000</baseLength>
	<maxDepth>10</maxDepth>
	<style><kite>#ff0000</kite></style>
</config>`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseLength != 1000 || cfg.MaxDepth != 10 {
		t.Errorf("BaseLength=%d MaxDepth=%d", cfg.BaseLength, cfg.MaxDepth)
	}
	if cfg.Style.KiteColor != "#ff0000" {
		t.Errorf("KiteColor = %q", cfg.Style.KiteColor)
	}
	def := Default()
	if cfg.DensityConstant != def.DensityConstant || cfg.Style.DartColor != def.Style.DartColor {
		t.Error("unset elements lost their defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestLoadRejectsDeepMaxDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	if err := os.WriteFile(path, []byte(`<config><maxDepth>20</maxDepth></config>`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero base", func(c *Config) { c.BaseLength = 0 }},
		{"negative density", func(c *Config) { c.DensityConstant = -1 }},
		{"zero buffer", func(c *Config) { c.Buffer = 0 }},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative tolerance", func(c *Config) { c.Tolerance = -0.5 }},
		{"zero line width", func(c *Config) { c.Style.LineWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}
