package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/status"
)

// Body colors cycle by ID
var palette = []tcell.Color{
	tcell.ColorGreen,
	tcell.ColorBlue,
	tcell.ColorYellow,
	tcell.ColorPurple,
	tcell.ColorTeal,
	tcell.ColorOrange,
}

var (
	styleStatic  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleContact = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	stylePaused  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Reverse(true)
)

// viewport maps domain coordinates onto a terminal rectangle
type viewport struct {
	domain physics.AABB
	cols   int
	rows   int
}

// span maps the world interval [lo, lo+size) onto inclusive cell indices, at least one cell wide
func span(lo, size, dlo, dsize float64, n int) (int, int) {
	a := int(math.Floor((lo - dlo) / dsize * float64(n)))
	b := int(math.Ceil((lo+size-dlo)/dsize*float64(n))) - 1
	a = max(0, min(a, n-1))
	b = max(a, min(b, n-1))
	return a, b
}

// rect returns the inclusive cell block covered by box
func (v viewport) rect(box physics.AABB) (x0, y0, x1, y1 int) {
	x0, x1 = span(box.X, box.Width, v.domain.X, v.domain.Width, v.cols)
	y0, y1 = span(box.Y, box.Height, v.domain.Y, v.domain.Height, v.rows)
	return x0, y0, x1, y1
}

// Renderer draws simulation snapshots into a tcell screen
type Renderer struct {
	screen tcell.Screen
	reg    *status.Registry
}

// NewRenderer binds a screen and a metrics registry for the status bar
func NewRenderer(screen tcell.Screen, reg *status.Registry) *Renderer {
	return &Renderer{screen: screen, reg: reg}
}

// Draw renders res; the last terminal row is the status bar
func (r *Renderer) Draw(res engine.TickResult, cfg engine.Config, state engine.State, muted bool) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w < 2 || h < 2 {
		r.screen.Show()
		return
	}

	vp := viewport{domain: cfg.Domain, cols: w, rows: h - 1}

	contact := make(map[int]bool, len(res.Collisions)*2)
	for _, c := range res.Collisions {
		contact[c.Pair.A] = true
		contact[c.Pair.B] = true
	}

	for i := range res.Bodies {
		b := &res.Bodies[i]
		if !b.Box.Valid() {
			continue
		}

		ch, style := '█', tcell.StyleDefault.Foreground(palette[(b.ID%len(palette)+len(palette))%len(palette)])
		switch {
		case b.Static:
			ch, style = '▒', styleStatic
		case contact[i]:
			style = styleContact
		}

		x0, y0, x1, y1 := vp.rect(b.Box)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r.screen.SetContent(x, y, ch, nil, style)
			}
		}
	}

	r.drawStatus(w, h-1, res, cfg, state, muted)
	r.screen.Show()
}

func (r *Renderer) drawStatus(w, row int, res engine.TickResult, cfg engine.Config, state engine.State, muted bool) {
	mode := res.Stats.Mode.String()
	if res.Stats.Mode == engine.DetectSpatialHash {
		mode = fmt.Sprintf("%s cell=%.1f cells=%d", mode, res.Stats.CellSize, res.Stats.Cells)
	}
	sound := "on"
	if muted {
		sound = "off"
	}

	text := fmt.Sprintf(" %s | tick %d | bodies %d | contacts %d | candidates %d | %s | warn %d | sound %s | [space] pause [n] spawn [h] hash [m] mute [q] quit",
		state, res.Tick, len(res.Bodies), len(res.Collisions), res.Stats.Candidates, mode,
		r.reg.Ints.Get("engine.warnings").Load(), sound)

	style := styleStatus
	if state == engine.StatePaused {
		style = stylePaused
	}

	col := 0
	for _, ch := range text {
		if col >= w {
			break
		}
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col < w; col++ {
		r.screen.SetContent(col, row, ' ', nil, style)
	}
}
