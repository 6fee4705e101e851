package fluid

// linSolve runs Jacobi relaxation on x for the system implied by the
// source term b: x[i] = (b[i] + a*sum(4 neighbors of x)) / c. Each round
// reads the previous iterate from scratch and writes x, so rows can be
// relaxed in parallel without races, then enforces the boundary.
//
// Diffusion uses a = dt*rate*w*h, c = 1+4a (implicit form, stable for
// any rate*dt). The pressure solve uses a = 1, c = 4.
func (s *Simulator) linSolve(x, b *field, a, c float32, iters int, kind boundaryKind) {
	w, h := x.w, x.h
	prev := s.scratch
	invC := 1 / c

	for k := 0; k < iters; k++ {
		copy(prev.data, x.data)
		s.pool.run(1, h-1, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				row := y * w
				for xi := 1; xi < w-1; xi++ {
					i := row + xi
					x.data[i] = (b.data[i] + a*(prev.data[i-1]+prev.data[i+1]+
						prev.data[i-w]+prev.data[i+w])) * invC
				}
			}
		})
		applyBoundary(x, kind)
	}
}

// diffuseField smooths the authoritative slot into the scratch slot by
// implicit Jacobi relaxation, then swaps. A zero rate leaves the field
// untouched.
func (s *Simulator) diffuseField(db *doubleBuffer, rate, dt float32, iters int) {
	if rate <= 0 {
		return
	}
	a := dt * rate * float32(s.w) * float32(s.h)
	dst, src := db.back(), db.front()
	copy(dst.data, src.data)
	s.linSolve(dst, src, a, 1+4*a, iters, boundaryZero)
	db.swap()
}
