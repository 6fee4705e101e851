package fluid

import (
	"math"
	"testing"
)

func newTestSim(t *testing.T, w, h int) *Simulator {
	t.Helper()
	s, err := New(w, h, DefaultParams(), 42)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	t.Cleanup(s.Close)
	return s
}

func centerSplat(r, g, b float32) Splat {
	return Splat{X: 0.5, Y: 0.5, Radius: 5, R: r, G: g, B: b}
}

func TestNewRejectsTinyGrid(t *testing.T) {
	for _, dims := range [][2]int{{0, 0}, {2, 32}, {32, 2}, {-1, 10}} {
		if _, err := New(dims[0], dims[1], DefaultParams(), 1); err == nil {
			t.Errorf("expected error for grid %dx%d", dims[0], dims[1])
		}
	}
}

func TestMassBoundedOverLongRun(t *testing.T) {
	s := newTestSim(t, 32, 32)
	s.AddForce(Splat{X: 0.5, Y: 0.5, DX: 2, DY: -1, Radius: 6, R: 1, G: 0.5, B: 0.2})

	upper := float64(32 * 32) // density is clamped to [0,1] per cell
	for i := 0; i < 1000; i++ {
		if i%100 == 0 {
			s.AddForce(Splat{X: 0.3, Y: 0.7, DX: -1, DY: 2, Radius: 4, G: 1})
		}
		s.Step(0)

		mass := s.TotalMass()
		if mass < 0 {
			t.Fatalf("tick %d: negative mass %f", i, mass)
		}
		if mass > upper {
			t.Fatalf("tick %d: mass %f exceeds cell-count bound %f", i, mass, upper)
		}
		if math.IsNaN(mass) || math.IsInf(mass, 0) {
			t.Fatalf("tick %d: non-finite mass", i)
		}
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := newTestSim(t, 32, 32)
	s.AddForce(centerSplat(1, 0, 0))
	s.Step(0)

	s.Clear()
	if mass := s.TotalMass(); mass != 0 {
		t.Fatalf("expected zero mass after clear, got %f", mass)
	}

	for i := 0; i < 20; i++ {
		s.Step(0)
	}
	if mass := s.TotalMass(); mass != 0 {
		t.Errorf("mass reappeared after clear with no injection: %f", mass)
	}

	s.Clear()
	if mass := s.TotalMass(); mass != 0 {
		t.Errorf("second clear changed mass: %f", mass)
	}
}

func TestBoundaryCellsStayFixed(t *testing.T) {
	s := newTestSim(t, 24, 40)
	s.AddForce(Splat{X: 0.1, Y: 0.1, DX: 5, DY: 5, Radius: 8, R: 1})

	for step := 1; step <= 30; step++ {
		s.Step(0)

		w, h := s.Size()
		u := s.u.front()
		v := s.v.front()
		dens := s.dens.front()
		for x := 0; x < w; x++ {
			for _, y := range []int{0, h - 1} {
				if u.at(x, y) != 0 || v.at(x, y) != 0 || dens.at(x, y) != 0 {
					t.Fatalf("step %d: edge cell (%d,%d) not zero", step, x, y)
				}
			}
		}
		for y := 0; y < h; y++ {
			for _, x := range []int{0, w - 1} {
				if u.at(x, y) != 0 || v.at(x, y) != 0 || dens.at(x, y) != 0 {
					t.Fatalf("step %d: edge cell (%d,%d) not zero", step, x, y)
				}
			}
		}
	}
}

func TestInjectionLocality(t *testing.T) {
	s := newTestSim(t, 64, 64)

	radius := float32(5)
	s.AddForce(Splat{X: 0.25, Y: 0.25, Radius: radius, R: 1})

	w, h := s.Size()
	cx := 0.25 * float32(w-1)
	cy := 0.25 * float32(h-1)

	dens := s.dens.front()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float32(x) - cx
			dy := float32(y) - cy
			if sqrtf(dx*dx+dy*dy) > radius+0.5 {
				if v := dens.at(x, y); v != 0 {
					t.Fatalf("cell (%d,%d) outside radius changed: %f", x, y, v)
				}
			}
		}
	}
}

func TestResizeResetsState(t *testing.T) {
	s := newTestSim(t, 32, 32)
	s.AddForce(centerSplat(0, 1, 0))
	if s.TotalMass() <= 0 {
		t.Fatal("setup: expected non-zero mass before resize")
	}

	if err := s.Resize(48, 24); err != nil {
		t.Fatalf("resize: %v", err)
	}
	if w, h := s.Size(); w != 48 || h != 24 {
		t.Errorf("expected 48x24 after resize, got %dx%d", w, h)
	}
	if mass := s.TotalMass(); mass != 0 {
		t.Errorf("expected zero mass immediately after resize, got %f", mass)
	}

	if err := s.Resize(2, 2); err == nil {
		t.Error("expected error for resize below minimum dimensions")
	}
}

func TestSingleSplatDecays(t *testing.T) {
	s := newTestSim(t, 32, 32)

	p := DefaultParams()
	p.FadeRate = 0.99
	p.TurbulenceStrength = 0
	s.Configure(p)

	s.AddForce(Splat{X: 0.5, Y: 0.5, Radius: 5, R: 1})
	prev := s.TotalMass()
	if prev <= 0 {
		t.Fatal("expected positive mass after splat")
	}

	for i := 0; i < 10; i++ {
		s.Step(0)
		mass := s.TotalMass()
		if mass <= 0 {
			t.Fatalf("tick %d: mass dropped to %f, expected >0", i, mass)
		}
		if mass >= prev {
			t.Fatalf("tick %d: mass %f did not decrease from %f", i, mass, prev)
		}
		prev = mass
	}
}

func TestProjectionRemovesDivergence(t *testing.T) {
	s := newTestSim(t, 30, 30)

	// arbitrary non-zero velocity pattern
	u := s.u.front()
	v := s.v.front()
	for y := 1; y < s.h-1; y++ {
		for x := 1; x < s.w-1; x++ {
			u.set(x, y, 0.1*float32(math.Sin(float64(x)*0.7))*float32(math.Cos(float64(y)*0.3)))
			v.set(x, y, 0.1*float32(math.Cos(float64(x)*0.4))*float32(math.Sin(float64(y)*0.9)))
		}
	}

	before := s.MaxDivergence()
	if before == 0 {
		t.Fatal("setup: seeded field should have non-zero divergence")
	}

	s.project(u, v, 200)
	s.project(u, v, 200)
	s.project(u, v, 200)

	after := s.MaxDivergence()
	if after >= before {
		t.Fatalf("projection did not reduce divergence: before=%g after=%g", before, after)
	}
	if after > 1e-3 {
		t.Errorf("residual divergence %g exceeds tolerance 1e-3", after)
	}
}

func TestStepScrubsNaN(t *testing.T) {
	s := newTestSim(t, 16, 16)
	s.AddForce(centerSplat(1, 1, 1))

	nan := float32(math.NaN())
	s.dens.front().set(8, 8, nan)
	s.u.front().set(8, 8, nan)

	s.Step(0)

	if s.NaNScrubs() == 0 {
		t.Error("expected the guard to count scrubbed samples")
	}
	for i, d := range s.dens.front().data {
		if isBad(d) {
			t.Fatalf("NaN survived in density at index %d", i)
		}
	}
	mass := s.TotalMass()
	if math.IsNaN(mass) || math.IsInf(mass, 0) {
		t.Errorf("mass still non-finite after scrub: %f", mass)
	}
}

func TestEmptyFieldSkipKeepsContract(t *testing.T) {
	s := newTestSim(t, 32, 32)

	front := s.dens.front()
	for i := 0; i < 5; i++ {
		s.Step(0)
	}
	if s.Ticks() != 5 {
		t.Errorf("skipped steps must still count ticks, got %d", s.Ticks())
	}
	if s.dens.front() != front {
		t.Error("empty-field skip must leave the authoritative buffer stable")
	}
	if mass := s.TotalMass(); mass != 0 {
		t.Errorf("empty field produced mass %f", mass)
	}
}

func TestConfigureTakesEffectNextStep(t *testing.T) {
	s := newTestSim(t, 32, 32)
	s.AddForce(centerSplat(1, 0, 0))
	s.Step(0)

	p := s.Params()
	p.FadeRate = 0.5
	s.Configure(p)

	before := s.TotalMass()
	s.Step(0)
	after := s.TotalMass()

	// fade 0.5 halves mass up to small diffusion/advection losses
	if after > before*0.55 {
		t.Errorf("new fade rate not applied: before=%f after=%f", before, after)
	}
}

func TestDtOverrideIsPerTick(t *testing.T) {
	s := newTestSim(t, 16, 16)
	base := s.Params().TimeStep

	s.AddForce(centerSplat(1, 0, 0))
	s.Step(base * 2)

	if got := s.Params().TimeStep; got != base {
		t.Errorf("dt override must not stick: got %f want %f", got, base)
	}
}

func TestTurbulenceKeepsQuietFieldMoving(t *testing.T) {
	s := newTestSim(t, 32, 32)
	p := DefaultParams()
	p.TurbulenceStrength = 2
	s.Configure(p)

	for i := 0; i < 5; i++ {
		s.Step(0)
	}
	if s.MaxSpeed() == 0 {
		t.Error("expected turbulence forcing to produce velocity")
	}
}
