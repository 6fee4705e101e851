package terminal

import (
	"testing"

	"github.com/nsf/termbox-go"
)

func TestCellForRampEndpoints(t *testing.T) {
	ch, _ := cellFor(0, 0, 0, 0)
	if ch != ' ' {
		t.Errorf("zero density cell = %q, want space", ch)
	}

	ch, _ = cellFor(1, 0, 0, 0)
	if ch != '@' {
		t.Errorf("full density cell = %q, want @", ch)
	}

	// out-of-range densities clamp instead of indexing out of bounds
	ch, _ = cellFor(3.5, 0, 0, 0)
	if ch != '@' {
		t.Errorf("over-range density cell = %q, want @", ch)
	}
	ch, _ = cellFor(-1, 0, 0, 0)
	if ch != ' ' {
		t.Errorf("negative density cell = %q, want space", ch)
	}
}

func TestCellForDominantChannel(t *testing.T) {
	_, fg := cellFor(0.5, 0.9, 0.1, 0.1)
	if fg != termbox.ColorRed {
		t.Errorf("red-dominant dye mapped to %v", fg)
	}
	_, fg = cellFor(0.5, 0.1, 0.9, 0.1)
	if fg != termbox.ColorGreen {
		t.Errorf("green-dominant dye mapped to %v", fg)
	}
	_, fg = cellFor(0.5, 0.1, 0.1, 0.9)
	if fg != termbox.ColorBlue {
		t.Errorf("blue-dominant dye mapped to %v", fg)
	}
	_, fg = cellFor(0.5, 0, 0, 0)
	if fg != termbox.ColorWhite {
		t.Errorf("undyed smoke mapped to %v, want white", fg)
	}
}
