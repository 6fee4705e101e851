package fluid

// Phase names reported to a PhaseTimer during a step.
const (
	PhaseForcing         = "forcing"
	PhaseDiffuseVelocity = "diffuse_velocity"
	PhaseProject         = "project"
	PhaseAdvectVelocity  = "advect_velocity"
	PhaseDensity         = "density"
	PhaseColor           = "color"
	PhaseScrub           = "scrub"
)

// PhaseTimer receives stage boundaries during a step. Implementations
// must be cheap; the solver calls StartPhase a handful of times per
// tick while holding its lock.
type PhaseTimer interface {
	StartPhase(name string)
}

// SetTimer installs a per-stage timer. Pass nil to disable.
func (s *Simulator) SetTimer(t PhaseTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = t
}

func (s *Simulator) phase(name string) {
	if s.timer != nil {
		s.timer.StartPhase(name)
	}
}
