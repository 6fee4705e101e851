package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/yjkh17/Fluid-Simulator/config"
	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// Fitness weights. Scrubs dominate: any NaN in a run means the
// parameter set is unusable regardless of how pretty it looks.
const (
	scrubWeight      = 1000.0
	divergenceWeight = 50.0
	livelinessWeight = 4.0

	// Mean mass a good-looking run settles around under the scripted
	// drag pattern.
	targetMeanMass = 8.0
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastDetails RunDetails
}

// RunDetails carries the components of the most recent evaluation for
// progress reporting.
type RunDetails struct {
	Scrubs        uint64
	MaxDivergence float64
	MeanMass      float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastDetails returns the component scores from the most recent
// Evaluate call.
func (fe *FitnessEvaluator) LastDetails() RunDetails {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDetails
}

// Evaluate computes fitness for a raw parameter vector, averaged over
// all seeds. Lower is better.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	clamped := fe.params.Clamp(raw)

	p := fluid.DefaultParams()
	p.TimeStep = float32(fe.baseConfig.Simulation.TimeStep)
	p.Viscosity = float32(clamped[0])
	p.DiffusionRate = float32(clamped[1])
	p.FadeRate = float32(clamped[2])
	p.ForceMultiplier = float32(clamped[3])
	p.Iterations = int(clamped[4])
	p.TurbulenceStrength = float32(clamped[5])
	p.TurbulenceScale = float32(fe.baseConfig.Turbulence.Scale)

	var total float64
	var details RunDetails
	for _, seed := range fe.seeds {
		fit, det := fe.runSeed(p, seed)
		total += fit
		details.Scrubs += det.Scrubs
		if det.MaxDivergence > details.MaxDivergence {
			details.MaxDivergence = det.MaxDivergence
		}
		details.MeanMass += det.MeanMass / float64(len(fe.seeds))
	}

	fe.mu.Lock()
	fe.lastDetails = details
	fe.mu.Unlock()

	return total / float64(len(fe.seeds))
}

// runSeed drives one headless run with a scripted drag pattern and
// scores it.
func (fe *FitnessEvaluator) runSeed(p fluid.Params, seed int64) (float64, RunDetails) {
	cfg := fe.baseConfig
	sim, err := fluid.New(cfg.Grid.Width, cfg.Grid.Height, p, seed)
	if err != nil {
		return math.Inf(1), RunDetails{}
	}
	defer sim.Close()

	rng := rand.New(rand.NewSource(seed))

	var massSum float64
	var maxDiv float64
	samples := 0

	for tick := 0; tick < fe.maxTicks; tick++ {
		// A drag every 20 ticks keeps the field exercised the way an
		// interactive session would.
		if tick%20 == 0 {
			sim.AddForce(fluid.Splat{
				X:      0.2 + rng.Float32()*0.6,
				Y:      0.2 + rng.Float32()*0.6,
				DX:     (rng.Float32() - 0.5) * 0.1,
				DY:     (rng.Float32() - 0.5) * 0.1,
				Radius: p.BrushRadius,
				R:      rng.Float32(),
				G:      rng.Float32(),
				B:      rng.Float32(),
			})
		}

		sim.Step(0)

		if tick%30 == 0 {
			massSum += sim.TotalMass()
			samples++
			if d := float64(sim.MaxDivergence()); d > maxDiv {
				maxDiv = d
			}
		}
	}

	meanMass := massSum / float64(samples)
	scrubs := sim.NaNScrubs()

	massErr := (meanMass - targetMeanMass) / targetMeanMass
	fitness := float64(scrubs)*scrubWeight +
		maxDiv*divergenceWeight +
		massErr*massErr*livelinessWeight

	return fitness, RunDetails{
		Scrubs:        scrubs,
		MaxDivergence: maxDiv,
		MeanMass:      meanMass,
	}
}
