package fluid

import "testing"

func TestFieldOutOfBoundsAccess(t *testing.T) {
	f := newField(4, 4)
	f.set(2, 2, 7)

	// reads outside the grid clamp to the nearest edge cell
	if got := f.at(-5, 2); got != f.at(0, 2) {
		t.Errorf("expected clamped read left, got %f", got)
	}
	if got := f.at(2, 100); got != f.at(2, 3) {
		t.Errorf("expected clamped read bottom, got %f", got)
	}

	// writes outside the grid are silent no-ops
	f.set(-1, 0, 99)
	f.set(4, 0, 99)
	f.set(0, -1, 99)
	f.set(0, 4, 99)
	for i, v := range f.data {
		if v == 99 {
			t.Fatalf("out-of-bounds write landed at index %d", i)
		}
	}
}

func TestDoubleBufferSwap(t *testing.T) {
	db := newDoubleBuffer(3, 3)
	front := db.front()
	back := db.back()

	if front == back {
		t.Fatal("front and back must be distinct storage")
	}

	front.set(1, 1, 1.5)
	db.swap()

	if db.front() != back {
		t.Error("swap did not flip the current index")
	}
	if db.back() != front {
		t.Error("swap invalidated the previous front")
	}
	// the previous front's memory is intact after the swap
	if got := db.back().at(1, 1); got != 1.5 {
		t.Errorf("expected 1.5 in previous front after swap, got %f", got)
	}

	db.swap()
	if db.front() != front {
		t.Error("double swap must return to the original slot")
	}
}

func TestDoubleBufferClear(t *testing.T) {
	db := newDoubleBuffer(3, 3)
	db.front().set(1, 1, 2)
	db.back().set(1, 1, 3)
	db.clear()
	if db.front().at(1, 1) != 0 || db.back().at(1, 1) != 0 {
		t.Error("clear must zero both slots")
	}
}
