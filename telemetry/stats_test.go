package telemetry

import (
	"math"
	"testing"
)

func TestCollectorAggregatesWindow(t *testing.T) {
	c := NewCollector()

	masses := []float64{10, 12, 14}
	for _, m := range masses {
		c.Record(m, 0.5, 0.01, 1.0/60)
	}
	c.Record(16, 2.0, 0.05, 1.0/60)

	ws := c.Finalize(4, 3, 1)

	if ws.WindowStartTick != 0 || ws.WindowEndTick != 4 {
		t.Errorf("window bounds = [%d, %d], want [0, 4]", ws.WindowStartTick, ws.WindowEndTick)
	}
	if math.Abs(ws.MassMean-13) > 1e-9 {
		t.Errorf("mass mean = %f, want 13", ws.MassMean)
	}
	if ws.MassLast != 16 {
		t.Errorf("mass last = %f, want 16", ws.MassLast)
	}
	if ws.MassDrift != 6 {
		t.Errorf("mass drift = %f, want 6", ws.MassDrift)
	}
	if ws.MaxSpeed != 2.0 {
		t.Errorf("max speed = %f, want 2.0", ws.MaxSpeed)
	}
	if ws.MaxDivergence != 0.05 {
		t.Errorf("max divergence = %f, want 0.05", ws.MaxDivergence)
	}
	if ws.Splats != 3 || ws.NaNScrubs != 1 {
		t.Errorf("counters = (%d, %d), want (3, 1)", ws.Splats, ws.NaNScrubs)
	}
}

func TestCollectorResetsBetweenWindows(t *testing.T) {
	c := NewCollector()
	c.Record(100, 5, 1, 1.0/60)
	c.Finalize(1, 10, 2)

	c.Record(1, 0.1, 0.001, 1.0/60)
	ws := c.Finalize(2, 12, 2)

	if ws.WindowStartTick != 1 {
		t.Errorf("second window start = %d, want 1", ws.WindowStartTick)
	}
	if ws.MassMean != 1 {
		t.Errorf("second window mass mean = %f, want 1 (first window leaked)", ws.MassMean)
	}
	if ws.MaxSpeed != 0.1 {
		t.Errorf("second window max speed = %f, want 0.1", ws.MaxSpeed)
	}
	// cumulative counters become per-window deltas
	if ws.Splats != 2 {
		t.Errorf("second window splats = %d, want 2", ws.Splats)
	}
	if ws.NaNScrubs != 0 {
		t.Errorf("second window scrubs = %d, want 0", ws.NaNScrubs)
	}
}

func TestCollectorEmptyWindow(t *testing.T) {
	c := NewCollector()
	ws := c.Finalize(0, 0, 0)

	if ws.MassMean != 0 || ws.MassStd != 0 {
		t.Errorf("empty window must produce zero stats, got mean=%f std=%f", ws.MassMean, ws.MassStd)
	}
}

func TestCollectorSingleSampleHasZeroStddev(t *testing.T) {
	c := NewCollector()
	c.Record(42, 0, 0, 1.0/60)
	ws := c.Finalize(1, 0, 0)

	if ws.MassMean != 42 {
		t.Errorf("mass mean = %f, want 42", ws.MassMean)
	}
	if ws.MassStd != 0 {
		t.Errorf("single-sample stddev = %f, want 0", ws.MassStd)
	}
}
