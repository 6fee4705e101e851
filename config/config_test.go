package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.Grid.Width <= 0 || cfg.Grid.Height <= 0 {
		t.Errorf("defaults must carry grid dimensions, got %dx%d", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Simulation.FadeRate <= 0 || cfg.Simulation.FadeRate > 1 {
		t.Errorf("default fade rate out of (0,1]: %f", cfg.Simulation.FadeRate)
	}
	if cfg.Simulation.Iterations < 1 {
		t.Errorf("default iterations must be >= 1, got %d", cfg.Simulation.Iterations)
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	user := []byte("simulation:\n  viscosity: 0.5\ngrid:\n  width: 64\n")
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading user config: %v", err)
	}

	if cfg.Simulation.Viscosity != 0.5 {
		t.Errorf("user viscosity not applied, got %f", cfg.Simulation.Viscosity)
	}
	if cfg.Grid.Width != 64 {
		t.Errorf("user grid width not applied, got %d", cfg.Grid.Width)
	}
	// fields absent from the user file keep their defaults
	if cfg.Simulation.Iterations < 1 {
		t.Errorf("default iterations lost in merge, got %d", cfg.Simulation.Iterations)
	}
}

func TestParamsMapping(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	p := cfg.Params()
	if float64(p.FadeRate)-cfg.Simulation.FadeRate > 1e-6 {
		t.Errorf("fade rate mapping mismatch: %f vs %f", p.FadeRate, cfg.Simulation.FadeRate)
	}
	if p.Iterations != cfg.Simulation.Iterations {
		t.Errorf("iterations mapping mismatch: %d vs %d", p.Iterations, cfg.Simulation.Iterations)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Simulation.BrushRadius = 11

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading yaml: %v", err)
	}
	if back.Simulation.BrushRadius != 11 {
		t.Errorf("round trip lost brush radius, got %f", back.Simulation.BrushRadius)
	}
}
