package fluid

// boundaryKind selects how a field's four edges are enforced after a
// stencil pass.
type boundaryKind int

const (
	// boundaryZero forces edge cells to zero. Used for velocity, density
	// and color: a Dirichlet wall that keeps energy from entering at the
	// domain edge.
	boundaryZero boundaryKind = iota

	// boundaryClamp copies the nearest interior value onto the edge.
	// Used for the pressure solve, which needs a zero-gradient edge to
	// stay well-posed.
	boundaryClamp
)

// applyBoundary enforces the edge condition on all four sides.
func applyBoundary(f *field, kind boundaryKind) {
	w, h := f.w, f.h
	d := f.data

	switch kind {
	case boundaryZero:
		for x := 0; x < w; x++ {
			d[x] = 0
			d[(h-1)*w+x] = 0
		}
		for y := 1; y < h-1; y++ {
			d[y*w] = 0
			d[y*w+w-1] = 0
		}

	case boundaryClamp:
		for x := 1; x < w-1; x++ {
			d[x] = d[w+x]
			d[(h-1)*w+x] = d[(h-2)*w+x]
		}
		for y := 1; y < h-1; y++ {
			d[y*w] = d[y*w+1]
			d[y*w+w-1] = d[y*w+w-2]
		}
		// corners average their two edge neighbors
		d[0] = 0.5 * (d[1] + d[w])
		d[w-1] = 0.5 * (d[w-2] + d[2*w-1])
		d[(h-1)*w] = 0.5 * (d[(h-1)*w+1] + d[(h-2)*w])
		d[h*w-1] = 0.5 * (d[h*w-2] + d[(h-1)*w+w-1])
	}
}
