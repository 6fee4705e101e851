package game

import (
	"math"

	"github.com/yjkh17/Fluid-Simulator/config"
	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// EmitterPos is an emitter's normalized [0,1] position.
type EmitterPos struct {
	X, Y float32
}

// EmitterFlow drives an emitter's rotating jet. Rate 0 silences the
// emitter without removing its entity.
type EmitterFlow struct {
	Angle float32 // radians
	Spin  float32 // radians per second
	Rate  float32 // dye strength per tick
}

// EmitterTint is an emitter's dye color.
type EmitterTint struct {
	R, G, B float32
}

// spawnEmitter creates a dye emitter entity at a normalized position
// with a random tint and spin direction.
func (g *Game) spawnEmitter(x, y float32) {
	cfg := config.Cfg()

	spin := 0.6 + g.rng.Float32()*1.2
	if g.rng.Float32() < 0.5 {
		spin = -spin
	}

	r, gr, b := hueToRGB(g.rng.Float32())

	pos := EmitterPos{X: x, Y: y}
	flow := EmitterFlow{
		Angle: g.rng.Float32() * 2 * math.Pi,
		Spin:  spin,
		Rate:  float32(cfg.Input.EmitterRate),
	}
	tint := EmitterTint{R: r, G: gr, B: b}

	g.emitterMapper.NewEntity(&pos, &flow, &tint)
}

// updateEmitters advances each active emitter and injects its splat.
func (g *Game) updateEmitters() {
	dt := g.sim.Params().TimeStep
	radius := g.sim.Params().BrushRadius * 0.7

	query := g.emitterFilter.Query()
	for query.Next() {
		pos, flow, tint := query.Get()
		if flow.Rate <= 0 {
			continue
		}

		flow.Angle += flow.Spin * dt
		dx := float32(math.Cos(float64(flow.Angle))) * flow.Rate
		dy := float32(math.Sin(float64(flow.Angle))) * flow.Rate

		g.sim.AddForce(fluid.Splat{
			X:      pos.X,
			Y:      pos.Y,
			DX:     dx * dt,
			DY:     dy * dt,
			Radius: radius,
			R:      tint.R * flow.Rate,
			G:      tint.G * flow.Rate,
			B:      tint.B * flow.Rate,
		})
	}
}

// silenceEmitters zeroes every emitter's rate. Entities stay around so
// a later feature can revive or reskin them.
func (g *Game) silenceEmitters() {
	query := g.emitterFilter.Query()
	for query.Next() {
		_, flow, _ := query.Get()
		flow.Rate = 0
	}
}

// countEmitters returns the number of active emitters.
func (g *Game) countEmitters() int {
	n := 0
	query := g.emitterFilter.Query()
	for query.Next() {
		_, flow, _ := query.Get()
		if flow.Rate > 0 {
			n++
		}
	}
	return n
}
