package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/yjkh17/Fluid-Simulator/config"
	"github.com/yjkh17/Fluid-Simulator/fluid"
	"github.com/yjkh17/Fluid-Simulator/game"
	"github.com/yjkh17/Fluid-Simulator/remote"
	"github.com/yjkh17/Fluid-Simulator/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	terminalMode := flag.Bool("terminal", false, "Render as ASCII in the terminal")
	remoteAddr := flag.String("remote", "", "Websocket input listen address (overrides config)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	addr := cfg.Remote.Address
	if *remoteAddr != "" {
		addr = *remoteAddr
	}

	if *terminalMode {
		runTerminal(cfg, rngSeed, addr)
		return
	}

	opts := game.Options{
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		StepsPerUpdate: *stepsPerUpdate,
		OutputDir:      *outputDir,
	}

	if *headless {
		runHeadless(opts, addr, *maxTicks)
		return
	}

	runGraphical(cfg, opts, addr, *maxTicks)
}

// startRemote launches the websocket input server if an address is
// configured. Returns a stop function.
func startRemote(addr string, sim *fluid.Simulator) func() {
	if addr == "" {
		return func() {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	srv := remote.NewServer(addr, sim)
	go func() {
		if err := srv.Run(ctx); err != nil {
			slog.Error("remote server failed", "error", err)
		}
	}()
	return cancel
}

func runTerminal(cfg *config.Config, seed int64, addr string) {
	sim, err := fluid.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Params(), seed)
	if err != nil {
		slog.Error("failed to create simulator", "error", err)
		os.Exit(1)
	}
	defer sim.Close()

	stopRemote := startRemote(addr, sim)
	defer stopRemote()

	if err := terminal.New(sim).Run(); err != nil {
		slog.Error("terminal mode failed", "error", err)
		os.Exit(1)
	}
}

func runHeadless(opts game.Options, addr string, maxTicks int) {
	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	stopRemote := startRemote(addr, g.Sim())
	defer stopRemote()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigc:
			slog.Info("interrupted", "tick", g.Tick())
			return
		default:
		}

		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return
		}
	}
}

func runGraphical(cfg *config.Config, opts game.Options, addr string, maxTicks int) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Fluid Simulator")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	stopRemote := startRemote(addr, g.Sim())
	defer stopRemote()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}
