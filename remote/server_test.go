package remote

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// waitFor polls until cond holds or the deadline passes. The server
// processes frames on its own goroutine, so asserts must wait.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

// recordingInjector captures splats instead of running a solver.
type recordingInjector struct {
	mu     sync.Mutex
	splats []fluid.Splat
}

func (r *recordingInjector) AddForce(sp fluid.Splat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splats = append(r.splats, sp)
}

func (r *recordingInjector) Params() fluid.Params {
	return fluid.DefaultParams()
}

func (r *recordingInjector) snapshot() []fluid.Splat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fluid.Splat, len(r.splats))
	copy(out, r.splats)
	return out
}

func dialTestServer(t *testing.T, inj Injector) *websocket.Conn {
	t.Helper()

	srv := NewServer("", inj)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPointerEventBecomesSplat(t *testing.T) {
	inj := &recordingInjector{}
	conn := dialTestServer(t, inj)

	msg := `{"x":0.5,"y":0.25,"dx":0.01,"dy":-0.02,"r":1,"g":0.5,"b":0}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatal(err)
	}
	// A clean close drains the read loop before we assert.
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	waitFor(t, func() bool { return len(inj.snapshot()) == 1 })

	sp := inj.snapshot()[0]
	if sp.X != 0.5 || sp.Y != 0.25 {
		t.Errorf("splat position = (%f, %f), want (0.5, 0.25)", sp.X, sp.Y)
	}
	if sp.DX != 0.01 {
		t.Errorf("splat dx = %f, want 0.01", sp.DX)
	}
	if sp.Radius != fluid.DefaultParams().BrushRadius {
		t.Errorf("splat radius = %f, want configured brush radius", sp.Radius)
	}
}

func TestMalformedEventIsIgnored(t *testing.T) {
	inj := &recordingInjector{}
	conn := dialTestServer(t, inj)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"x":0.1,"y":0.1}`)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(inj.snapshot()) == 1 })

	if got := len(inj.snapshot()); got != 1 {
		t.Errorf("splat count = %d, want 1 (malformed frame dropped)", got)
	}
}

func TestServerDrivesRealSolver(t *testing.T) {
	sim, err := fluid.New(32, 32, fluid.DefaultParams(), 1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sim.Close)

	conn := dialTestServer(t, sim)

	msg := `{"x":0.5,"y":0.5,"dx":0.05,"dy":0,"r":1,"g":0,"b":0}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return sim.SplatCount() == 1 })

	if sim.TotalMass() <= 0 {
		t.Error("remote splat left the density field empty")
	}
}
