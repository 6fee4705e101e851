// Package remote exposes a websocket endpoint that turns pointer
// events from a remote client into solver injections.
package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yjkh17/Fluid-Simulator/fluid"
)

// PointerEvent is the wire format a remote client sends per pointer
// move. Coordinates and deltas are normalized to [0,1].
type PointerEvent struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	R  float64 `json:"r"`
	G  float64 `json:"g"`
	B  float64 `json:"b"`
}

// Injector is the solver surface the server needs. *fluid.Simulator
// satisfies it.
type Injector interface {
	AddForce(sp fluid.Splat)
	Params() fluid.Params
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server accepts websocket connections and forwards pointer events to
// the injector.
type Server struct {
	inj  Injector
	http *http.Server
}

// NewServer creates a server bound to the given listen address.
func NewServer(addr string, inj Injector) *Server {
	s := &Server{inj: inj}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	s.http = &http.Server{Addr: addr, Handler: mux}

	return s
}

// Handler exposes the mux for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving connections until Shutdown.
func (s *Server) ListenAndServe() error {
	slog.Info("remote input listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// wsHandler upgrades the connection and pumps pointer events into the
// solver until the client goes away.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	defer conn.Close()

	slog.Info("remote client connected", "remote", r.RemoteAddr)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("remote client error", "error", err)
			}
			return
		}

		var ev PointerEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			slog.Warn("bad pointer event", "error", err)
			continue
		}

		s.inject(ev)
	}
}

func (s *Server) inject(ev PointerEvent) {
	s.inj.AddForce(fluid.Splat{
		X:      float32(ev.X),
		Y:      float32(ev.Y),
		DX:     float32(ev.DX),
		DY:     float32(ev.DY),
		Radius: s.inj.Params().BrushRadius,
		R:      float32(ev.R),
		G:      float32(ev.G),
		B:      float32(ev.B),
	})
}

// Run starts the server and shuts it down when the context ends.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- s.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}
