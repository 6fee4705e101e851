package fluid

// project forces the velocity field toward zero divergence: compute
// per-cell divergence, solve the pressure Poisson equation with Jacobi
// relaxation, then subtract the pressure gradient from velocity. The
// pressure field is re-seeded to zero before every solve.
func (s *Simulator) project(u, v *field, iters int) {
	w, h := u.w, u.h
	scale := float32(w)
	div, p := s.div, s.p

	s.pool.run(1, h-1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * w
			for x := 1; x < w-1; x++ {
				i := row + x
				div.data[i] = -0.5 * ((u.data[i+1] - u.data[i-1]) +
					(v.data[i+w] - v.data[i-w])) / scale
			}
		}
	})
	applyBoundary(div, boundaryZero)

	p.clear()
	s.linSolve(p, div, 1, 4, iters, boundaryClamp)

	s.pool.run(1, h-1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * w
			for x := 1; x < w-1; x++ {
				i := row + x
				u.data[i] -= 0.5 * (p.data[i+1] - p.data[i-1]) * scale
				v.data[i] -= 0.5 * (p.data[i+w] - p.data[i-w]) * scale
			}
		}
	})
	applyBoundary(u, boundaryZero)
	applyBoundary(v, boundaryZero)
}

// divergenceAt computes the divergence of the current velocity at an
// interior cell, in the same units project drives toward zero.
func (s *Simulator) divergenceAt(u, v *field, x, y int) float32 {
	i := y*u.w + x
	return -0.5 * ((u.data[i+1] - u.data[i-1]) +
		(v.data[i+u.w] - v.data[i-u.w])) / float32(u.w)
}
