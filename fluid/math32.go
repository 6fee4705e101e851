package fluid

import "math"

// Float32 helpers for hot-path cell loops. These avoid the
// float32->float64 round trips Go's math package requires.

// clampf clamps x to [lo, hi]. NaN collapses to lo, so a corrupted
// backward trace can never turn into an invalid array index.
func clampf(x, lo, hi float32) float32 {
	if !(x >= lo) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// smoothstep is the Hermite ramp: 0 at edge0, 1 at edge1.
func smoothstep(edge0, edge1, x float32) float32 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func sqrtf(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Sqrt(float64(x)))
}

// isBad reports whether x is NaN or infinite.
func isBad(x float32) bool {
	if x != x {
		return true
	}
	return x > math.MaxFloat32 || x < -math.MaxFloat32
}
