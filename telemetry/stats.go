package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated solver statistics for one stats window.
// Mass is the sum of the density field; a healthy run keeps it finite
// and non-negative indefinitely.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	MassMean  float64 `csv:"mass_mean"`
	MassStd   float64 `csv:"mass_std"`
	MassLast  float64 `csv:"mass_last"`
	MassDrift float64 `csv:"mass_drift"` // last minus first sample

	MaxSpeed      float64 `csv:"max_speed"`
	MaxDivergence float64 `csv:"max_divergence"`

	Splats    uint64 `csv:"splats"`
	NaNScrubs uint64 `csv:"nan_scrubs"`
}

// Collector accumulates per-tick samples and aggregates them into
// WindowStats at window boundaries.
type Collector struct {
	windowStart uint64
	simTime     float64

	massSamples []float64
	maxSpeed    float64
	maxDiv      float64

	splatsAtStart uint64
	scrubsAtStart uint64
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{massSamples: make([]float64, 0, 256)}
}

// Record adds one tick's measurements.
func (c *Collector) Record(mass, maxSpeed, maxDiv, dt float64) {
	c.massSamples = append(c.massSamples, mass)
	if maxSpeed > c.maxSpeed {
		c.maxSpeed = maxSpeed
	}
	if maxDiv > c.maxDiv {
		c.maxDiv = maxDiv
	}
	c.simTime += dt
}

// Finalize aggregates the window ending at endTick and resets the
// collector for the next window. splats and scrubs are cumulative
// counters from the simulator.
func (c *Collector) Finalize(endTick, splats, scrubs uint64) WindowStats {
	ws := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   endTick,
		SimTimeSec:      c.simTime,
		MaxSpeed:        c.maxSpeed,
		MaxDivergence:   c.maxDiv,
		Splats:          splats - c.splatsAtStart,
		NaNScrubs:       scrubs - c.scrubsAtStart,
	}

	if n := len(c.massSamples); n > 0 {
		ws.MassMean = stat.Mean(c.massSamples, nil)
		if n > 1 {
			ws.MassStd = stat.StdDev(c.massSamples, nil)
		}
		ws.MassLast = c.massSamples[n-1]
		ws.MassDrift = c.massSamples[n-1] - c.massSamples[0]
	}

	c.windowStart = endTick
	c.massSamples = c.massSamples[:0]
	c.maxSpeed = 0
	c.maxDiv = 0
	c.splatsAtStart = splats
	c.scrubsAtStart = scrubs

	return ws
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("mass_mean", s.MassMean),
		slog.Float64("mass_std", s.MassStd),
		slog.Float64("mass_last", s.MassLast),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("max_divergence", s.MaxDivergence),
		slog.Uint64("splats", s.Splats),
		slog.Uint64("nan_scrubs", s.NaNScrubs),
	)
}
