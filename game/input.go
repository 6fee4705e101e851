package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/yjkh17/Fluid-Simulator/config"
	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.sim.Clear()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyTab) && g.panel != nil {
		g.panel.Toggle()
	}

	// Emitters
	if rl.IsKeyPressed(rl.KeyE) {
		mouse := rl.GetMousePosition()
		g.spawnEmitter(mouse.X/g.screenWidth, mouse.Y/g.screenHeight)
	}
	if rl.IsKeyPressed(rl.KeyX) {
		g.silenceEmitters()
	}

	g.handleMouse()
}

// handleMouse turns left-button drags into force and dye injections.
func (g *Game) handleMouse() {
	if g.panel != nil && g.panel.ContainsMouse() {
		g.mouseDown = false
		return
	}

	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if g.mouseDown {
			g.injectDrag(g.lastMouse, mouse)
		}
		g.mouseDown = true
		g.lastMouse = mouse
	} else {
		g.mouseDown = false
	}
}

// injectDrag converts a pointer move into a splat. Positions and deltas
// are normalized to [0,1] so the solver stays resolution independent.
func (g *Game) injectDrag(from, to rl.Vector2) {
	cfg := config.Cfg()
	scale := float32(cfg.Input.VelocityScale)

	dx := (to.X - from.X) / g.screenWidth * scale
	dy := (to.Y - from.Y) / g.screenHeight * scale

	// Slowly cycle the brush color so long drags leave a rainbow trail.
	g.brushHue += 0.004
	if g.brushHue >= 1 {
		g.brushHue -= 1
	}
	r, gr, b := hueToRGB(g.brushHue)

	g.sim.AddForce(fluid.Splat{
		X:      to.X / g.screenWidth,
		Y:      to.Y / g.screenHeight,
		DX:     dx,
		DY:     dy,
		Radius: g.sim.Params().BrushRadius,
		R:      r,
		G:      gr,
		B:      b,
	})
}

// handleResize propagates window resizes to the screen mapping.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.screenWidth = float32(rl.GetScreenWidth())
	g.screenHeight = float32(rl.GetScreenHeight())
}

// hueToRGB converts a hue in [0,1) at full saturation and value.
func hueToRGB(h float32) (r, g, b float32) {
	sector := h * 6
	i := int(sector) % 6
	f := sector - float32(math.Floor(float64(sector)))

	switch i {
	case 0:
		return 1, f, 0
	case 1:
		return 1 - f, 1, 0
	case 2:
		return 0, 1, f
	case 3:
		return 0, 1 - f, 1
	case 4:
		return f, 0, 1
	default:
		return 1, 0, 1 - f
	}
}
