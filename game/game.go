// Package game wires the fluid solver to the raylib front end: input,
// rendering, dye emitters, the tuning panel and telemetry output.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/yjkh17/Fluid-Simulator/config"
	"github.com/yjkh17/Fluid-Simulator/fluid"
	"github.com/yjkh17/Fluid-Simulator/telemetry"
)

// Options configures game construction.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StepsPerUpdate int
	OutputDir      string
}

// Game holds the complete application state.
type Game struct {
	sim *fluid.Simulator
	rng *rand.Rand

	// Emitter entities
	world         *ecs.World
	emitterMapper *ecs.Map3[EmitterPos, EmitterFlow, EmitterTint]
	emitterFilter *ecs.Filter3[EmitterPos, EmitterFlow, EmitterTint]

	renderer *FluidRenderer
	panel    *Panel

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	screenWidth  float32
	screenHeight float32

	paused         bool
	stepsPerUpdate int
	tick           uint64

	logStats         bool
	statsWindowTicks uint64

	// Pointer drag state
	mouseDown bool
	lastMouse rl.Vector2
	brushHue  float32
}

// NewGame creates a game from the global config and the given options.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	sim, err := fluid.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Params(), opts.Seed)
	if err != nil {
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		sim.Close()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	world := ecs.NewWorld()

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	windowTicks := uint64(cfg.Telemetry.StatsWindow / cfg.Simulation.TimeStep)
	if windowTicks < 1 {
		windowTicks = 60
	}

	g := &Game{
		sim:              sim,
		rng:              rand.New(rand.NewSource(opts.Seed)),
		world:            world,
		emitterMapper:    ecs.NewMap3[EmitterPos, EmitterFlow, EmitterTint](world),
		emitterFilter:    ecs.NewFilter3[EmitterPos, EmitterFlow, EmitterTint](world),
		collector:        telemetry.NewCollector(),
		perf:             telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:           output,
		screenWidth:      float32(cfg.Screen.Width),
		screenHeight:     float32(cfg.Screen.Height),
		stepsPerUpdate:   stepsPerUpdate,
		logStats:         opts.LogStats,
		statsWindowTicks: windowTicks,
	}

	sim.SetTimer(g.perf)

	if !opts.Headless {
		g.renderer = NewFluidRenderer(cfg.Grid.Width, cfg.Grid.Height)
		g.panel = NewPanel(sim)
	}

	return g, nil
}

// Update runs input handling and simulation ticks for one frame.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.perf.RecordFrame()
}

// UpdateHeadless runs simulation ticks without any input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step advances the solver one tick and records telemetry.
func (g *Game) step() {
	g.updateEmitters()

	g.perf.StartTick()
	g.sim.Step(0)
	g.perf.EndTick()

	g.tick++

	dt := float64(g.sim.Params().TimeStep)
	g.collector.Record(g.sim.TotalMass(), float64(g.sim.MaxSpeed()), 0, dt)

	if g.tick%g.statsWindowTicks == 0 {
		g.flushTelemetry()
	}
}

// flushTelemetry finalizes the stats window and writes it out.
func (g *Game) flushTelemetry() {
	// MaxDivergence is a full-grid scan, so sample it once per window
	// rather than per tick.
	g.collector.Record(g.sim.TotalMass(), float64(g.sim.MaxSpeed()), float64(g.sim.MaxDivergence()),
		float64(g.sim.Params().TimeStep))

	ws := g.collector.Finalize(g.tick, g.sim.SplatCount(), g.sim.NaNScrubs())
	perfStats := g.perf.Stats()

	if g.logStats {
		slog.Info("stats", "window", ws)
		perfStats.LogStats()
	}
	if err := g.output.WriteTelemetry(ws); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// Tick returns the number of ticks simulated.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Sim exposes the solver for remote input wiring.
func (g *Game) Sim() *fluid.Simulator {
	return g.sim
}

// Unload releases solver workers, GPU resources and output files.
func (g *Game) Unload() {
	if g.renderer != nil {
		g.renderer.Unload()
	}
	g.sim.Close()
	if err := g.output.Close(); err != nil {
		slog.Warn("closing output", "error", err)
	}
}
