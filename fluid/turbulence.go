package fluid

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// perlin noise shape parameters; the time axis of Noise3D animates the
// field slowly so still fluid keeps drifting.
const (
	turbAlpha   = 2.0
	turbBeta    = 2.0
	turbOctaves = 3
)

// turbulence adds a gentle Perlin-driven push to the velocity field.
// The noise value at each cell picks a direction; strength scales the
// magnitude. Disabled entirely at zero strength.
type turbulence struct {
	noise *perlin.Perlin
	t     float64
}

func newTurbulence(seed int64) *turbulence {
	return &turbulence{noise: perlin.NewPerlin(turbAlpha, turbBeta, turbOctaves, seed)}
}

func (tb *turbulence) apply(u, v *field, strength, scale, dt float32, pool *workerPool) {
	if strength <= 0 {
		return
	}
	tb.t += float64(dt) * 0.5

	w, h := u.w, u.h
	amp := strength * dt

	pool.run(1, h-1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * w
			fy := float64(y) * float64(scale)
			for x := 1; x < w-1; x++ {
				n := tb.noise.Noise3D(float64(x)*float64(scale), fy, tb.t)
				angle := n * 2 * math.Pi
				i := row + x
				u.data[i] += float32(math.Cos(angle)) * amp
				v.data[i] += float32(math.Sin(angle)) * amp
			}
		}
	})
}
