// Package terminal renders the fluid as ASCII shading in a termbox
// session and feeds mouse drags back into the solver.
package terminal

import (
	"log/slog"
	"time"

	"github.com/nsf/termbox-go"

	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// shade ramp from empty to saturated.
var ramp = []rune(" .:-=+*#%@")

// Runner owns a termbox session over a simulator.
type Runner struct {
	sim *fluid.Simulator

	lastMX, lastMY int
	dragging       bool
}

// New creates a terminal runner for the given simulator.
func New(sim *fluid.Simulator) *Runner {
	return &Runner{sim: sim, lastMX: -1, lastMY: -1}
}

// Run enters the terminal loop and blocks until Esc or q. The solver
// steps on a fixed ticker; termbox events arrive on their own
// goroutine because PollEvent blocks.
func (r *Runner) Run() error {
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)

	events := make(chan termbox.Event, 16)
	go func() {
		for {
			ev := termbox.PollEvent()
			events <- ev
			if ev.Type == termbox.EventInterrupt {
				return
			}
		}
	}()

	dt := r.sim.Params().TimeStep
	ticker := time.NewTicker(time.Duration(float64(time.Second) * float64(dt)))
	defer ticker.Stop()

	slog.Info("terminal mode", "hint", "drag to stir, c clears, esc quits")

	for {
		select {
		case ev := <-events:
			if done := r.handleEvent(ev); done {
				return nil
			}
		case <-ticker.C:
			r.sim.Step(0)
			r.draw()
		}
	}
}

func (r *Runner) handleEvent(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
			return true
		}
		if ev.Ch == 'c' {
			r.sim.Clear()
		}
	case termbox.EventMouse:
		r.handleMouse(ev)
	case termbox.EventResize:
		termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	}
	return false
}

// handleMouse converts drag motion to a splat, mirroring the pointer
// mapping of the graphical front end at terminal resolution.
func (r *Runner) handleMouse(ev termbox.Event) {
	if ev.Key != termbox.MouseLeft {
		r.dragging = false
		return
	}

	tw, th := termbox.Size()
	if tw < 1 || th < 1 {
		return
	}

	x := float32(ev.MouseX) / float32(tw)
	y := float32(ev.MouseY) / float32(th)

	var dx, dy float32
	if r.dragging {
		dx = float32(ev.MouseX-r.lastMX) / float32(tw)
		dy = float32(ev.MouseY-r.lastMY) / float32(th)
	}

	r.sim.AddForce(fluid.Splat{
		X:      x,
		Y:      y,
		DX:     dx * 2,
		DY:     dy * 2,
		Radius: r.sim.Params().BrushRadius,
		R:      1, G: 1, B: 1,
	})

	r.dragging = true
	r.lastMX, r.lastMY = ev.MouseX, ev.MouseY
}

// draw samples the density field into terminal cells.
func (r *Runner) draw() {
	tw, th := termbox.Size()
	if tw < 1 || th < 1 {
		return
	}

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	gw, gh := r.sim.Size()
	dens := r.sim.Density()
	cr, cg, cb := r.sim.Color()

	for ty := 0; ty < th; ty++ {
		gy := ty * gh / th
		for tx := 0; tx < tw; tx++ {
			gx := tx * gw / tw
			i := gy*gw + gx

			ch, fg := cellFor(dens[i], cr[i], cg[i], cb[i])
			if ch != ' ' {
				termbox.SetCell(tx, ty, ch, fg, termbox.ColorDefault)
			}
		}
	}

	termbox.Flush()
}

// cellFor maps density to a ramp rune and the dominant dye channel to
// a terminal color.
func cellFor(d, r, g, b float32) (rune, termbox.Attribute) {
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	idx := int(d * float32(len(ramp)-1))
	ch := ramp[idx]

	fg := termbox.ColorWhite
	switch {
	case r >= g && r >= b && r > 0.1:
		fg = termbox.ColorRed
	case g >= r && g >= b && g > 0.1:
		fg = termbox.ColorGreen
	case b > 0.1:
		fg = termbox.ColorBlue
	}
	return ch, fg
}
