package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/yjkh17/Fluid-Simulator/fluid"
)

const (
	panelWidth   = 280
	sliderHeight = 20
	rowAdvance   = 35
)

// Panel is the right-side tuning panel. Slider changes are pushed to
// the solver immediately and land on the next step.
type Panel struct {
	sim     *fluid.Simulator
	visible bool
	bounds  rl.Rectangle
}

// NewPanel creates the panel, hidden by default.
func NewPanel(sim *fluid.Simulator) *Panel {
	return &Panel{sim: sim}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() {
	p.visible = !p.visible
}

// ContainsMouse reports whether the pointer is over the visible panel,
// so drags on sliders never splash into the fluid.
func (p *Panel) ContainsMouse() bool {
	if !p.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), p.bounds)
}

// Draw renders the panel and applies any parameter edits.
func (p *Panel) Draw(screenWidth float32) {
	if !p.visible {
		return
	}

	params := p.sim.Params()
	changed := false

	panelX := screenWidth - panelWidth - 10
	panelY := float32(10)
	p.bounds = rl.Rectangle{X: panelX - 10, Y: 0, Width: panelWidth + 20, Height: 480}

	rl.DrawRectangleRec(p.bounds, rl.Fade(rl.Black, 0.6))
	rl.DrawText("Solver Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
	panelY += 35

	slider := func(label, fmtStr string, val, min, max float32) float32 {
		rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		next := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: sliderHeight},
			"", "",
			val, min, max,
		)
		rl.DrawText(fmt.Sprintf(fmtStr, val), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.RayWhite)
		panelY += rowAdvance - 18
		return next
	}

	if v := slider("Viscosity", "%.5f", params.Viscosity, 0, 0.002); v != params.Viscosity {
		params.Viscosity = v
		changed = true
	}
	if v := slider("Diffusion", "%.5f", params.DiffusionRate, 0, 0.002); v != params.DiffusionRate {
		params.DiffusionRate = v
		changed = true
	}
	if v := slider("Fade", "%.3f", params.FadeRate, 0.90, 1.0); v != params.FadeRate {
		params.FadeRate = v
		changed = true
	}
	if v := slider("Force", "%.0f", params.ForceMultiplier, 1, 200); v != params.ForceMultiplier {
		params.ForceMultiplier = v
		changed = true
	}
	if v := slider("Brush radius", "%.1f", params.BrushRadius, 1, 20); v != params.BrushRadius {
		params.BrushRadius = v
		changed = true
	}
	if v := slider("Iterations", "%.0f", float32(params.Iterations), 4, 60); int(v) != params.Iterations {
		params.Iterations = int(v)
		changed = true
	}
	if v := slider("Turbulence", "%.2f", params.TurbulenceStrength, 0, 2); v != params.TurbulenceStrength {
		params.TurbulenceStrength = v
		changed = true
	}
	if v := slider("Turb. scale", "%.3f", params.TurbulenceScale, 0.01, 0.5); v != params.TurbulenceScale {
		params.TurbulenceScale = v
		changed = true
	}

	panelY += 10
	if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Clear") {
		p.sim.Clear()
	}
	if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Defaults") {
		params = fluid.DefaultParams()
		changed = true
	}

	if changed {
		p.sim.Configure(params)
	}
}
