package fluid

// field is a scalar quantity over the grid: row-major float32, one
// value per cell, index y*w+x.
type field struct {
	w, h int
	data []float32
}

func newField(w, h int) *field {
	return &field{w: w, h: h, data: make([]float32, w*h)}
}

func (f *field) idx(x, y int) int { return y*f.w + x }

// at reads the cell at (x, y). Out-of-range coordinates clamp to the
// nearest edge cell, so stencil reads near the boundary stay defined.
func (f *field) at(x, y int) float32 {
	if x < 0 {
		x = 0
	} else if x >= f.w {
		x = f.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.h {
		y = f.h - 1
	}
	return f.data[y*f.w+x]
}

// set writes the cell at (x, y). Out-of-range writes are silent no-ops.
func (f *field) set(x, y int, v float32) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	f.data[y*f.w+x] = v
}

func (f *field) clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}

// doubleBuffer pairs two preallocated fields of identical size. cur
// selects the slot holding the authoritative state; the other slot is
// scratch for the next stage. Swap is O(1) and never reallocates, so a
// reader that grabbed the front slice before a stage keeps valid memory.
type doubleBuffer struct {
	slots [2]*field
	cur   int
}

func newDoubleBuffer(w, h int) *doubleBuffer {
	return &doubleBuffer{slots: [2]*field{newField(w, h), newField(w, h)}}
}

// front returns the authoritative slot.
func (d *doubleBuffer) front() *field { return d.slots[d.cur] }

// back returns the scratch slot.
func (d *doubleBuffer) back() *field { return d.slots[1-d.cur] }

func (d *doubleBuffer) swap() { d.cur = 1 - d.cur }

func (d *doubleBuffer) clear() {
	d.slots[0].clear()
	d.slots[1].clear()
}
