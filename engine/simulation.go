package engine

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/status"
	"github.com/lixenwraith/boxphys/vmath"
)

// Simulation owns a body list across ticks and gates stepping through the lifecycle
// Idle -> Running -> Paused <-> Running -> Stopped
// Single-writer: all methods must be called from the goroutine driving Step
type Simulation struct {
	cfg    Config
	ctx    *Context
	bodies []physics.RigidBody
	state  State
	last   TickResult
	nextID int

	// Cached metric pointers
	statusReg     *status.Registry
	statTicks     *atomic.Int64
	statColl      *atomic.Int64
	statCand      *atomic.Int64
	statWarn      *atomic.Int64
	statBodies    *atomic.Int64
	statDt        *status.AtomicFloat
	statPeakSpeed *status.AtomicFloat
	statState     *status.AtomicString
}

// NewSimulation validates cfg and creates an idle simulation
// reg may be nil, a private registry is created then
func NewSimulation(cfg Config, reg *status.Registry) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	s := &Simulation{
		cfg:           cfg,
		ctx:           NewContext(),
		state:         StateIdle,
		statusReg:     reg,
		statTicks:     reg.Ints.Get("engine.ticks"),
		statColl:      reg.Ints.Get("engine.collisions"),
		statCand:      reg.Ints.Get("engine.candidates"),
		statWarn:      reg.Ints.Get("engine.warnings"),
		statBodies:    reg.Ints.Get("engine.bodies"),
		statDt:        reg.Floats.Get("engine.dt"),
		statPeakSpeed: reg.Floats.Get("engine.peak_speed"),
		statState:     reg.Strings.Get("engine.state"),
	}
	s.statState.Store(s.state.String())
	return s, nil
}

// Registry returns the metrics registry the simulation reports into
func (s *Simulation) Registry() *status.Registry {
	return s.statusReg
}

// State returns the lifecycle state
func (s *Simulation) State() State {
	return s.state
}

// Config returns the active configuration
func (s *Simulation) Config() Config {
	return s.cfg
}

// SetConfig swaps the configuration, effective from the next tick
func (s *Simulation) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.cfg = cfg
	return nil
}

// AddBody appends a body, assigning a fresh ID when b.ID is zero, and returns the ID
func (s *Simulation) AddBody(b physics.RigidBody) int {
	if b.ID == 0 {
		s.nextID++
		b.ID = s.nextID
	} else if b.ID > s.nextID {
		s.nextID = b.ID
	}
	s.bodies = append(s.bodies, b)
	s.statBodies.Store(int64(len(s.bodies)))
	return b.ID
}

// SetBodies replaces the owned body list with a copy of bodies
func (s *Simulation) SetBodies(bodies []physics.RigidBody) {
	s.bodies = append(s.bodies[:0], bodies...)
	for _, b := range bodies {
		s.nextID = max(s.nextID, b.ID)
	}
	s.statBodies.Store(int64(len(s.bodies)))
}

// Bodies returns a copy of the owned body list
func (s *Simulation) Bodies() []physics.RigidBody {
	return slices.Clone(s.bodies)
}

// Last returns the most recent completed tick
func (s *Simulation) Last() TickResult {
	return s.last
}

// Start moves Idle -> Running
func (s *Simulation) Start() error {
	return s.transition(StateRunning, StateIdle)
}

// Pause moves Running -> Paused
func (s *Simulation) Pause() error {
	return s.transition(StatePaused, StateRunning)
}

// Resume moves Paused -> Running
func (s *Simulation) Resume() error {
	return s.transition(StateRunning, StatePaused)
}

// Stop enters the terminal state, repeated calls are no-ops
func (s *Simulation) Stop() {
	if s.state == StateStopped {
		return
	}
	s.setState(StateStopped)
}

// transition moves to target if the current state is from and the move is legal
func (s *Simulation) transition(target, from State) error {
	if s.state != from || !CanTransition(s.state, target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, target)
	}
	s.setState(target)
	return nil
}

func (s *Simulation) setState(st State) {
	s.state = st
	s.statState.Store(st.String())
}

// Step advances one tick while Running
// Idle and Paused return the last snapshot unchanged; Stopped returns ErrStopped
func (s *Simulation) Step(dt float64) (TickResult, error) {
	switch s.state {
	case StateStopped:
		return TickResult{}, ErrStopped
	case StateIdle, StatePaused:
		return s.last, nil
	}

	res, err := s.ctx.Tick(s.bodies, s.cfg, dt)
	if err != nil {
		return TickResult{}, err
	}

	// Snapshot slices stay immutable, the simulation keeps its own copy
	s.bodies = append(s.bodies[:0], res.Bodies...)
	s.last = res

	s.statTicks.Add(1)
	s.statColl.Add(int64(len(res.Collisions)))
	s.statCand.Add(int64(res.Stats.Candidates))
	s.statWarn.Add(int64(len(res.Warnings)))
	s.statDt.Set(res.Dt)
	for i := range res.Bodies {
		if v := res.Bodies[i].Vel.Length(); vmath.IsFinite(v) {
			s.statPeakSpeed.Max(v)
		}
	}

	return res, nil
}
