package main

import (
	"errors"
	"testing"
	"time"

	"github.com/lixenwraith/boxphys/audio"
	"github.com/lixenwraith/boxphys/config"
	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/loop"
	"github.com/lixenwraith/boxphys/physics"
)

func TestApplyConfigRefreshesDemo(t *testing.T) {
	sim, err := engine.NewSimulation(engine.DefaultConfig(physics.Box(0, 0, 800, 600)), nil)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	sched := loop.NewScheduler(sim, nil, time.Millisecond)
	if err := sched.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer sched.Stop()

	d := newDemo(sched, nil, audio.NewSoundManager(), 1)
	d.refresh()

	// Rejected reloads do not signal the UI loop
	d.applyConfig(config.Settings{}, errors.New("bad file"))
	select {
	case <-d.reloaded:
		t.Fatal("Expected no refresh after a rejected reload")
	default:
	}

	next := physics.Box(0, 0, 400, 300)
	d.applyConfig(config.Settings{Engine: engine.DefaultConfig(next)}, nil)

	select {
	case <-d.reloaded:
		d.refresh()
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for reload signal")
	}
	if d.cfg.Domain != next {
		t.Errorf("Expected demo domain %v after reload, got %v", next, d.cfg.Domain)
	}
}
