package engine

import (
	"errors"
	"testing"

	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/status"
)

func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	sim, err := NewSimulation(DefaultConfig(testDomain), status.NewRegistry())
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	return sim
}

// TestSimulationLifecycle walks Idle -> Running -> Paused -> Running -> Stopped
func TestSimulationLifecycle(t *testing.T) {
	sim := newTestSimulation(t)
	sim.AddBody(physics.NewBody(0, physics.Box(100, 100, 10, 10), 1))

	if sim.State() != StateIdle {
		t.Fatalf("Expected idle, got %s", sim.State())
	}

	// Idle does not advance
	res, err := sim.Step(1.0 / 60)
	if err != nil || res.Tick != 0 {
		t.Errorf("Expected no tick while idle, got tick=%d err=%v", res.Tick, err)
	}

	if err := sim.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	res, err = sim.Step(1.0 / 60)
	if err != nil || res.Tick != 1 {
		t.Fatalf("Expected tick 1, got tick=%d err=%v", res.Tick, err)
	}
	y := res.Bodies[0].Box.Y

	if err := sim.Pause(); err != nil {
		t.Fatalf("Pause failed: %v", err)
	}
	paused, _ := sim.Step(1.0 / 60)
	if paused.Tick != 1 || paused.Bodies[0].Box.Y != y {
		t.Error("Expected paused step to return the last snapshot")
	}

	if err := sim.Resume(); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	res, _ = sim.Step(1.0 / 60)
	if res.Tick != 2 || res.Bodies[0].Box.Y <= y {
		t.Errorf("Expected body to keep falling after resume, tick=%d y=%v", res.Tick, res.Bodies[0].Box.Y)
	}

	sim.Stop()
	sim.Stop()
	if _, err := sim.Step(1.0 / 60); !errors.Is(err, ErrStopped) {
		t.Errorf("Expected ErrStopped, got %v", err)
	}
	if err := sim.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition from stopped, got %v", err)
	}
}

// TestSimulationInvalidTransitions verifies illegal moves are rejected without state change
func TestSimulationInvalidTransitions(t *testing.T) {
	sim := newTestSimulation(t)

	if err := sim.Pause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected pause from idle to fail, got %v", err)
	}
	if err := sim.Resume(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected resume from idle to fail, got %v", err)
	}
	_ = sim.Start()
	if err := sim.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected double start to fail, got %v", err)
	}
	if sim.State() != StateRunning {
		t.Errorf("Expected running, got %s", sim.State())
	}
}

// TestSimulationSnapshotIsolation verifies returned snapshots are not mutated by later ticks
func TestSimulationSnapshotIsolation(t *testing.T) {
	sim := newTestSimulation(t)
	sim.AddBody(physics.NewBody(0, physics.Box(100, 100, 10, 10), 1))
	_ = sim.Start()

	first, _ := sim.Step(1.0 / 60)
	y := first.Bodies[0].Box.Y
	_, _ = sim.Step(1.0 / 60)

	if first.Bodies[0].Box.Y != y {
		t.Error("Snapshot mutated by subsequent tick")
	}

	bodies := sim.Bodies()
	bodies[0].Box.Y = -1000
	if sim.Bodies()[0].Box.Y == -1000 {
		t.Error("Bodies() must return a copy")
	}
}

// TestSimulationMetrics verifies the registry receives tick counters
func TestSimulationMetrics(t *testing.T) {
	reg := status.NewRegistry()
	sim, err := NewSimulation(DefaultConfig(testDomain), reg)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	sim.AddBody(physics.NewBody(0, physics.Box(100, 100, 10, 10), 1))
	sim.AddBody(physics.NewBody(0, physics.Box(105, 100, 10, 10), 1))
	_ = sim.Start()

	for i := 0; i < 3; i++ {
		if _, err := sim.Step(1.0 / 60); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if got := reg.Ints.Get("engine.ticks").Load(); got != 3 {
		t.Errorf("Expected 3 ticks, got %d", got)
	}
	if got := reg.Ints.Get("engine.collisions").Load(); got < 1 {
		t.Errorf("Expected at least one collision counted, got %d", got)
	}
	if got := reg.Ints.Get("engine.bodies").Load(); got != 2 {
		t.Errorf("Expected 2 bodies, got %d", got)
	}
	if got := reg.Strings.Get("engine.state").Load(); got != "running" {
		t.Errorf("Expected state running, got %q", got)
	}
}

// TestSimulationIDs verifies automatic ID assignment
func TestSimulationIDs(t *testing.T) {
	sim := newTestSimulation(t)
	a := sim.AddBody(physics.NewBody(0, physics.Box(0, 0, 1, 1), 1))
	b := sim.AddBody(physics.NewBody(10, physics.Box(5, 5, 1, 1), 1))
	c := sim.AddBody(physics.NewBody(0, physics.Box(9, 9, 1, 1), 1))

	if a != 1 || b != 10 || c != 11 {
		t.Errorf("Expected IDs 1, 10, 11, got %d, %d, %d", a, b, c)
	}
}

func TestNewSimulationRejectsConfig(t *testing.T) {
	if _, err := NewSimulation(Config{}, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
	if CanTransition(StateStopped, StateRunning) {
		t.Error("Stopped must be terminal")
	}
}
