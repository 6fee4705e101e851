// Package config provides configuration loading and access for the
// fluid simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yjkh17/Fluid-Simulator/fluid"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all application configuration.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Grid       GridConfig       `yaml:"grid"`
	Simulation SimulationConfig `yaml:"simulation"`
	Turbulence TurbulenceConfig `yaml:"turbulence"`
	Input      InputConfig      `yaml:"input"`
	Remote     RemoteConfig     `yaml:"remote"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds solver grid dimensions in cells. The grid is much
// coarser than the screen; the renderer upscales.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SimulationConfig holds the solver parameters.
type SimulationConfig struct {
	TimeStep        float64 `yaml:"time_step"`        // seconds per tick
	Viscosity       float64 `yaml:"viscosity"`        // velocity diffusion rate
	DiffusionRate   float64 `yaml:"diffusion_rate"`   // density diffusion rate
	FadeRate        float64 `yaml:"fade_rate"`        // multiplicative decay per tick
	ForceMultiplier float64 `yaml:"force_multiplier"` // scales pointer velocity deltas
	Iterations      int     `yaml:"iterations"`       // Jacobi/pressure-solve rounds
	BrushRadius     float64 `yaml:"brush_radius"`     // splat radius in cells
}

// TurbulenceConfig holds the optional Perlin background forcing.
type TurbulenceConfig struct {
	Strength float64 `yaml:"strength"` // 0 disables
	Scale    float64 `yaml:"scale"`    // noise frequency per cell
}

// InputConfig holds pointer-to-force mapping parameters.
type InputConfig struct {
	VelocityScale float64 `yaml:"velocity_scale"` // pointer speed -> velocity delta
	EmitterRate   float64 `yaml:"emitter_rate"`   // emitter dye strength per tick
}

// RemoteConfig holds the websocket input server settings.
type RemoteConfig struct {
	Address string `yaml:"address"` // listen address, empty disables
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	CellsPerPixelX float32 // grid cells per screen pixel, horizontal
	CellsPerPixelY float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded
// defaults if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	if c.Screen.Width > 0 {
		c.Derived.CellsPerPixelX = float32(c.Grid.Width) / float32(c.Screen.Width)
	}
	if c.Screen.Height > 0 {
		c.Derived.CellsPerPixelY = float32(c.Grid.Height) / float32(c.Screen.Height)
	}
}

// Params maps the simulation section onto solver parameters. The solver
// re-clamps on its side, so a hand-edited config cannot destabilize it.
func (c *Config) Params() fluid.Params {
	return fluid.Params{
		TimeStep:        float32(c.Simulation.TimeStep),
		Viscosity:       float32(c.Simulation.Viscosity),
		DiffusionRate:   float32(c.Simulation.DiffusionRate),
		FadeRate:        float32(c.Simulation.FadeRate),
		ForceMultiplier: float32(c.Simulation.ForceMultiplier),
		Iterations:      c.Simulation.Iterations,
		BrushRadius:     float32(c.Simulation.BrushRadius),

		TurbulenceStrength: float32(c.Turbulence.Strength),
		TurbulenceScale:    float32(c.Turbulence.Scale),
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
