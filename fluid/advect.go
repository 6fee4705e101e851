package fluid

// advectField transports the authoritative slot along the velocity
// field (u, v) with a semi-Lagrangian backward trace: each interior cell
// traces to its source position, clamps the trace so the 4-sample
// stencil stays in bounds, and bilinearly resamples the previous state.
// Writes land in the scratch slot, then the buffer swaps.
//
// Velocity is in cells/tick scaled by grid width, matching the
// divergence and gradient unit factor in project.
func (s *Simulator) advectField(db *doubleBuffer, u, v *field, dt float32) {
	dst, src := db.back(), db.front()
	w, h := dst.w, dst.h
	dt0 := dt * float32(w)

	maxX := float32(w) - 1.5
	maxY := float32(h) - 1.5

	s.pool.run(1, h-1, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * w
			for x := 1; x < w-1; x++ {
				i := row + x

				fx := float32(x) - dt0*u.data[i]
				fy := float32(y) - dt0*v.data[i]
				fx = clampf(fx, 0.5, maxX)
				fy = clampf(fy, 0.5, maxY)

				x0 := int(fx)
				y0i := int(fy)
				x1 := x0 + 1
				y1i := y0i + 1

				sx := fx - float32(x0)
				sy := fy - float32(y0i)

				i00 := y0i*w + x0
				i01 := y0i*w + x1
				i10 := y1i*w + x0
				i11 := y1i*w + x1

				dst.data[i] = (1-sx)*(1-sy)*src.data[i00] +
					sx*(1-sy)*src.data[i01] +
					(1-sx)*sy*src.data[i10] +
					sx*sy*src.data[i11]
			}
		}
	})

	applyBoundary(dst, boundaryZero)
	db.swap()
}
