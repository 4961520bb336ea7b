package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/status"
)

func TestSpan(t *testing.T) {
	tests := []struct {
		name     string
		lo, size float64
		a, b     int
	}{
		{"aligned cell", 0, 10, 0, 0},
		{"straddles two cells", 5, 10, 0, 1},
		{"sub-cell box", 33, 0.1, 3, 3},
		{"clamped right", 95, 50, 9, 9},
		{"clamped left", -50, 55, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := span(tt.lo, tt.size, 0, 100, 10)
			if a != tt.a || b != tt.b {
				t.Errorf("Expected [%d,%d], got [%d,%d]", tt.a, tt.b, a, b)
			}
		})
	}
}

func TestRendererDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(10, 11)

	cfg := engine.DefaultConfig(physics.Box(0, 0, 100, 100))
	res := engine.TickResult{
		Tick: 3,
		Bodies: []physics.RigidBody{
			physics.NewBody(1, physics.Box(0, 0, 10, 10), 1),
			physics.NewStaticBody(2, physics.Box(0, 90, 100, 10)),
		},
	}

	r := NewRenderer(screen, status.NewRegistry())
	r.Draw(res, cfg, engine.StateRunning, false)

	cells, w, h := screen.GetContents()
	if w != 10 || h != 11 {
		t.Fatalf("Expected 10x11 screen, got %dx%d", w, h)
	}
	at := func(x, y int) rune {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}

	if got := at(0, 0); got != '█' {
		t.Errorf("Expected dynamic body at (0,0), got %q", got)
	}
	if got := at(1, 1); got != ' ' {
		t.Errorf("Expected empty cell at (1,1), got %q", got)
	}
	for x := 0; x < w; x++ {
		if got := at(x, 9); got != '▒' {
			t.Errorf("Expected static floor at (%d,9), got %q", x, got)
		}
	}
	if got := at(1, 10); got == ' ' {
		t.Error("Expected status bar text on the last row")
	}
}
