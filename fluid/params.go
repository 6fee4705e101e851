package fluid

// Params holds the tunable solver parameters. A copy is snapshotted at
// the start of every step, so changes take effect on the next tick
// without a restart.
type Params struct {
	TimeStep        float32 // seconds per tick
	Viscosity       float32 // velocity diffusion rate
	DiffusionRate   float32 // density diffusion rate; color diffuses at half this
	FadeRate        float32 // multiplicative decay per tick, in (0,1]
	ForceMultiplier float32 // scales injected velocity deltas
	Iterations      int     // Jacobi rounds for diffusion and the pressure solve
	BrushRadius     float32 // default splat radius in cells

	// Optional Perlin background forcing. Zero strength disables it.
	TurbulenceStrength float32
	TurbulenceScale    float32
}

// DefaultParams returns parameters tuned for interactive framerates on
// grids around 100x200 cells.
func DefaultParams() Params {
	return Params{
		TimeStep:        1.0 / 60.0,
		Viscosity:       0.0001,
		DiffusionRate:   0.0001,
		FadeRate:        0.99,
		ForceMultiplier: 60.0,
		Iterations:      20,
		BrushRadius:     6.0,

		TurbulenceStrength: 0,
		TurbulenceScale:    0.08,
	}
}

// sanitize clamps parameters into ranges the solver tolerates. Degenerate
// values (zero dt, negative rates, fade outside (0,1]) fall back to the
// defaults rather than propagating instability into the step.
func (p Params) sanitize() Params {
	def := DefaultParams()

	if p.TimeStep <= 0 || isBad(p.TimeStep) {
		p.TimeStep = def.TimeStep
	}
	p.TimeStep = clampf(p.TimeStep, 1e-4, 0.25)

	if isBad(p.Viscosity) {
		p.Viscosity = def.Viscosity
	}
	p.Viscosity = clampf(p.Viscosity, 0, 10)

	if isBad(p.DiffusionRate) {
		p.DiffusionRate = def.DiffusionRate
	}
	p.DiffusionRate = clampf(p.DiffusionRate, 0, 10)

	if p.FadeRate <= 0 || p.FadeRate > 1 || isBad(p.FadeRate) {
		p.FadeRate = def.FadeRate
	}

	if p.ForceMultiplier < 0 || isBad(p.ForceMultiplier) {
		p.ForceMultiplier = 0
	}
	p.ForceMultiplier = clampf(p.ForceMultiplier, 0, 1e6)

	if p.Iterations < 1 {
		p.Iterations = 1
	}
	if p.Iterations > 200 {
		p.Iterations = 200
	}

	if p.BrushRadius <= 0 || isBad(p.BrushRadius) {
		p.BrushRadius = def.BrushRadius
	}
	p.BrushRadius = clampf(p.BrushRadius, 1, 64)

	if p.TurbulenceStrength < 0 || isBad(p.TurbulenceStrength) {
		p.TurbulenceStrength = 0
	}
	if p.TurbulenceScale <= 0 || isBad(p.TurbulenceScale) {
		p.TurbulenceScale = def.TurbulenceScale
	}

	return p
}
