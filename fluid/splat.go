package fluid

// Splat describes one localized pointer disturbance: a position in
// normalized [0,1] coordinates, a velocity delta in cells/tick, a brush
// radius in cells (non-positive means the configured BrushRadius), and
// an additive dye color with channels in [0,1].
type Splat struct {
	X, Y    float32
	DX, DY  float32
	Radius  float32
	R, G, B float32
}

// Gains applied to injected dye. Density saturates quickly so a single
// drag reads as opaque smoke; color accumulates additively.
const (
	splatDensityGain = 0.8
	splatColorGain   = 1.0
)

// splat writes the disturbance directly into the authoritative buffers
// with a smooth 1-smoothstep falloff. Edge cells are skipped so the
// boundary stays at its fixed value; cells outside the grid are simply
// never visited.
func (s *Simulator) splat(sp Splat, p Params) {
	radius := sp.Radius
	if radius <= 0 {
		radius = p.BrushRadius
	}

	cx := clampf(sp.X, 0, 1) * float32(s.w-1)
	cy := clampf(sp.Y, 0, 1) * float32(s.h-1)

	x0 := int(cx - radius)
	x1 := int(cx + radius + 1)
	y0 := int(cy - radius)
	y1 := int(cy + radius + 1)
	if x0 < 1 {
		x0 = 1
	}
	if y0 < 1 {
		y0 = 1
	}
	if x1 > s.w-1 {
		x1 = s.w - 1
	}
	if y1 > s.h-1 {
		y1 = s.h - 1
	}

	u := s.u.front()
	v := s.v.front()
	dens := s.dens.front()
	cr := s.colR.front()
	cg := s.colG.front()
	cb := s.colB.front()

	force := p.ForceMultiplier * p.TimeStep

	for y := y0; y < y1; y++ {
		dy := float32(y) - cy
		row := y * s.w
		for x := x0; x < x1; x++ {
			dx := float32(x) - cx
			d := sqrtf(dx*dx + dy*dy)
			if d >= radius {
				continue
			}
			fall := 1 - smoothstep(0, radius, d)
			i := row + x

			u.data[i] += sp.DX * fall * force
			v.data[i] += sp.DY * fall * force
			dens.data[i] = clamp01(dens.data[i] + fall*splatDensityGain)
			cr.data[i] = clamp01(cr.data[i] + sp.R*fall*splatColorGain)
			cg.data[i] = clamp01(cg.data[i] + sp.G*fall*splatColorGain)
			cb.data[i] = clamp01(cb.data[i] + sp.B*fall*splatColorGain)
		}
	}
}
