package game

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FluidRenderer uploads the solver's density and color fields to a GPU
// texture and draws it upscaled to the window.
type FluidRenderer struct {
	tex    rl.Texture2D
	pixels []color.RGBA
	w, h   int
}

// NewFluidRenderer creates the grid-sized texture. Must be called after
// the raylib window exists.
func NewFluidRenderer(gridW, gridH int) *FluidRenderer {
	img := rl.GenImageColor(gridW, gridH, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.UnloadImage(img)

	return &FluidRenderer{
		tex:    tex,
		pixels: make([]color.RGBA, gridW*gridH),
		w:      gridW,
		h:      gridH,
	}
}

// Update converts the field data to RGBA and uploads it. Dye drives the
// color; density adds a soft white body so undyed smoke stays visible.
func (r *FluidRenderer) Update(dens, colR, colG, colB []float32) {
	if len(dens) != r.w*r.h {
		return
	}

	for i := range r.pixels {
		body := dens[i] * 0.25
		r.pixels[i] = color.RGBA{
			R: toByte(colR[i] + body),
			G: toByte(colG[i] + body),
			B: toByte(colB[i] + body),
			A: 255,
		}
	}

	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the field texture stretched over the given screen size.
func (r *FluidRenderer) Draw(screenW, screenH float32) {
	srcRect := rl.Rectangle{X: 0, Y: 0, Width: float32(r.w), Height: float32(r.h)}
	dstRect := rl.Rectangle{X: 0, Y: 0, Width: screenW, Height: screenH}
	rl.DrawTexturePro(r.tex, srcRect, dstRect, rl.Vector2{}, 0, rl.White)
}

// Unload frees the GPU texture.
func (r *FluidRenderer) Unload() {
	rl.UnloadTexture(r.tex)
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}

// Draw renders the frame: fluid, tuning panel and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	dens := g.sim.Density()
	colR, colG, colB := g.sim.Color()
	g.renderer.Update(dens, colR, colG, colB)
	g.renderer.Draw(g.screenWidth, g.screenHeight)

	if g.panel != nil {
		g.panel.Draw(g.screenWidth)
	}

	g.drawHUD()

	rl.EndDrawing()
}

// drawHUD paints the status line in the top-left corner.
func (g *Game) drawHUD() {
	status := fmt.Sprintf("%d fps  tick %d  mass %.1f  emitters %d",
		rl.GetFPS(), g.tick, g.sim.TotalMass(), g.countEmitters())
	rl.DrawText(status, 10, 10, 18, rl.RayWhite)

	if g.paused {
		rl.DrawText("PAUSED", 10, 32, 18, rl.Orange)
	}
	if g.stepsPerUpdate > 1 {
		rl.DrawText(fmt.Sprintf("%dx speed", g.stepsPerUpdate), 10, 54, 18, rl.SkyBlue)
	}
}
