// Package fluid implements a real-time grid-based incompressible
// Navier-Stokes solver: implicit Jacobi diffusion, a pressure-Poisson
// projection, semi-Lagrangian advection, and localized force/dye
// injection from pointer events. Fields are double-buffered float32
// grids; every stage is row-parallel but stage-sequential.
//
// The target is visually plausible, stable, interactive motion at small
// grid resolutions, not physical accuracy.
package fluid

import (
	"fmt"
	"sync"
)

// Activity thresholds for the empty-field fast path: when total density
// and peak speed both sit below these, a step is a no-op.
const (
	quietMassEps  = 1e-5
	quietSpeedEps = 1e-5
)

// Simulator owns the complete solver state: velocity, density and color
// fields plus the pressure/divergence scratch grids. All public methods
// serialize on one mutex, so steps, injections, clears and resizes never
// interleave; within a step, stages run row-parallel on a persistent
// worker pool.
type Simulator struct {
	mu sync.Mutex

	w, h int

	u, v             *doubleBuffer // velocity components, cells/tick
	dens             *doubleBuffer // smoke opacity, [0,1]
	colR, colG, colB *doubleBuffer // additive dye, per channel [0,1]

	p, div  *field // projection scratch
	scratch *field // Jacobi previous-iterate buffer

	params Params
	pool   *workerPool
	turb   *turbulence
	timer  PhaseTimer

	// measured during the end-of-step scrub pass
	lastMass     float64
	lastMaxSpeed float32
	active       bool

	ticks     uint64
	splats    uint64
	nanScrubs uint64
}

// New allocates a simulator at the given grid size. Fields are
// zero-initialized and persist for the simulator's lifetime; the worker
// pool starts immediately. Dimensions below 3x3 cannot hold an interior
// cell and are rejected.
func New(width, height int, p Params, seed int64) (*Simulator, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("fluid: grid %dx%d too small, need at least 3x3", width, height)
	}

	s := &Simulator{
		w:      width,
		h:      height,
		params: p.sanitize(),
		pool:   newWorkerPool(),
		turb:   newTurbulence(seed),
	}
	s.allocFields()
	s.pool.start()
	return s, nil
}

func (s *Simulator) allocFields() {
	s.u = newDoubleBuffer(s.w, s.h)
	s.v = newDoubleBuffer(s.w, s.h)
	s.dens = newDoubleBuffer(s.w, s.h)
	s.colR = newDoubleBuffer(s.w, s.h)
	s.colG = newDoubleBuffer(s.w, s.h)
	s.colB = newDoubleBuffer(s.w, s.h)
	s.p = newField(s.w, s.h)
	s.div = newField(s.w, s.h)
	s.scratch = newField(s.w, s.h)
}

// Close stops the worker pool. The simulator must not be used after.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool.stop()
}

// Size returns the grid dimensions.
func (s *Simulator) Size() (int, int) {
	return s.w, s.h
}

// Configure replaces the simulation parameters, effective on the next
// step. Values are clamped to sane ranges first.
func (s *Simulator) Configure(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p.sanitize()
}

// Params returns the current (sanitized) parameters.
func (s *Simulator) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params
}

// AddForce injects a localized velocity/dye disturbance directly into
// the authoritative buffers. Injection is immediate and serialized with
// steps by the simulator lock.
func (s *Simulator) AddForce(sp Splat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splat(sp, s.params)
	s.splats++
	s.active = true
}

// Step advances the simulation one tick. A positive dt overrides the
// configured time step for this tick only. Parameters are snapshotted
// at entry, so a concurrent Configure lands on the next step.
func (s *Simulator) Step(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.params
	if dt > 0 {
		p.TimeStep = clampf(dt, 1e-4, 0.25)
	}

	if !s.active && p.TurbulenceStrength <= 0 {
		// Provably empty field: skip the tick. Front buffers are
		// untouched, so successive reads stay consistent.
		s.ticks++
		return
	}

	s.stepLocked(p)
	s.ticks++
}

// stepLocked runs the fixed stage sequence. Projection runs twice on
// velocity, before and after self-advection; color diffuses at half the
// density rate.
func (s *Simulator) stepLocked(p Params) {
	dt := p.TimeStep
	iters := p.Iterations

	// forcing
	s.phase(PhaseForcing)
	s.turb.apply(s.u.front(), s.v.front(), p.TurbulenceStrength, p.TurbulenceScale, dt, s.pool)

	// velocity: diffuse, project, self-advect, project
	s.phase(PhaseDiffuseVelocity)
	s.diffuseField(s.u, p.Viscosity, dt, iters)
	s.diffuseField(s.v, p.Viscosity, dt, iters)
	s.phase(PhaseProject)
	s.project(s.u.front(), s.v.front(), iters)

	s.phase(PhaseAdvectVelocity)
	uc, vc := s.u.front(), s.v.front()
	s.advectVelocity(uc, vc, dt)
	s.phase(PhaseProject)
	s.project(s.u.front(), s.v.front(), iters)

	// density: diffuse, advect by the fresh velocity, fade
	s.phase(PhaseDensity)
	s.diffuseField(s.dens, p.DiffusionRate, dt, iters)
	s.advectField(s.dens, s.u.front(), s.v.front(), dt)
	s.fadeField(s.dens, p.FadeRate)

	// color: same pipeline at half the diffusion rate
	s.phase(PhaseColor)
	half := p.DiffusionRate * 0.5
	for _, ch := range [3]*doubleBuffer{s.colR, s.colG, s.colB} {
		s.diffuseField(ch, half, dt, iters)
		s.advectField(ch, s.u.front(), s.v.front(), dt)
		s.fadeField(ch, p.FadeRate)
	}

	s.phase(PhaseScrub)
	s.scrub()
}

// advectVelocity self-advects both components along a consistent
// carrier: both traces read the same pre-advection fronts, both writes
// land in the back slots, then both buffers swap.
func (s *Simulator) advectVelocity(uc, vc *field, dt float32) {
	s.advectField(s.u, uc, vc, dt)
	s.advectField(s.v, uc, vc, dt)
}

// fadeField applies the multiplicative per-tick decay in place on the
// authoritative slot.
func (s *Simulator) fadeField(db *doubleBuffer, rate float32) {
	if rate >= 1 {
		return
	}
	d := db.front().data
	s.pool.run(0, db.front().h, func(y0, y1 int) {
		w := db.front().w
		for i := y0 * w; i < y1*w; i++ {
			d[i] *= rate
		}
	})
}

// scrub is the NaN/Inf guard at the orchestrator boundary: degenerate
// parameter combinations must never propagate corruption indefinitely.
// It also measures total mass and peak speed, which drive the
// empty-field skip and the telemetry read-backs.
func (s *Simulator) scrub() {
	var mass float64
	var maxSpeed float32

	ud := s.u.front().data
	vd := s.v.front().data
	dd := s.dens.front().data

	for i := range dd {
		if isBad(dd[i]) || dd[i] < 0 {
			dd[i] = 0
			s.nanScrubs++
		}
		if isBad(ud[i]) {
			ud[i] = 0
			s.nanScrubs++
		}
		if isBad(vd[i]) {
			vd[i] = 0
			s.nanScrubs++
		}
		mass += float64(dd[i])
		speed := absf(ud[i]) + absf(vd[i])
		if speed > maxSpeed {
			maxSpeed = speed
		}
	}

	var colorMass float64
	for _, ch := range [3]*doubleBuffer{s.colR, s.colG, s.colB} {
		cd := ch.front().data
		for i := range cd {
			if isBad(cd[i]) || cd[i] < 0 {
				cd[i] = 0
				s.nanScrubs++
			}
			colorMass += float64(cd[i])
		}
	}

	s.lastMass = mass
	s.lastMaxSpeed = maxSpeed
	s.active = mass > quietMassEps || colorMass > quietMassEps ||
		float64(maxSpeed) > quietSpeedEps
}

// Clear zeroes every field. Idempotent; tick and splat counters keep
// counting across clears.
func (s *Simulator) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u.clear()
	s.v.clear()
	s.dens.clear()
	s.colR.clear()
	s.colG.clear()
	s.colB.clear()
	s.p.clear()
	s.div.clear()
	s.lastMass = 0
	s.lastMaxSpeed = 0
	s.active = false
}

// Resize reallocates every field at the new dimensions and zeroes them.
// Previous fluid state is intentionally lost. Serialized with steps and
// injections by the simulator lock.
func (s *Simulator) Resize(width, height int) error {
	if width < 3 || height < 3 {
		return fmt.Errorf("fluid: grid %dx%d too small, need at least 3x3", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w, s.h = width, height
	s.allocFields()
	s.lastMass = 0
	s.lastMaxSpeed = 0
	s.active = false
	return nil
}

// Density returns the authoritative density buffer, row-major w*h.
// The slice is live solver memory: read it between steps and do not
// retain it across Resize.
func (s *Simulator) Density() []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dens.front().data
}

// Color returns the authoritative color channel buffers, row-major w*h.
// Same aliasing rules as Density.
func (s *Simulator) Color() (r, g, b []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.colR.front().data, s.colG.front().data, s.colB.front().data
}

// TotalMass returns the sum of the density field. Bounded and
// non-negative over arbitrarily long runs; the long-run soak tests key
// off this read-back.
func (s *Simulator) TotalMass() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, d := range s.dens.front().data {
		sum += float64(d)
	}
	return sum
}

// MaxSpeed returns the peak |u|+|v| measured at the end of the last
// step.
func (s *Simulator) MaxSpeed() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastMaxSpeed
}

// MaxDivergence scans interior cells and returns the largest absolute
// divergence of the current velocity field. After projection this
// should sit within a small numerical tolerance of zero.
func (s *Simulator) MaxDivergence() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, v := s.u.front(), s.v.front()
	var worst float32
	for y := 1; y < s.h-1; y++ {
		for x := 1; x < s.w-1; x++ {
			d := absf(s.divergenceAt(u, v, x, y))
			if d > worst {
				worst = d
			}
		}
	}
	return worst
}

// Ticks returns the number of steps taken, including skipped ones.
func (s *Simulator) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

// SplatCount returns the number of injections since construction.
func (s *Simulator) SplatCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.splats
}

// NaNScrubs returns how many non-finite samples the step guard has
// zeroed since construction. Nonzero values indicate a degenerate
// parameter combination.
func (s *Simulator) NaNScrubs() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nanScrubs
}
