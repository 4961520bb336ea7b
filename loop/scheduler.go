package loop

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/status"
)

// ErrNotRunning is returned by commands issued before Start or after Stop
var ErrNotRunning = errors.New("scheduler not running")

// command is a closure executed on the scheduler goroutine between ticks
type command struct {
	fn   func(*engine.Simulation) error
	done chan error
}

// Scheduler drives a Simulation on a fixed tick from a single goroutine
// All access to the simulation is funneled through Do so the engine stays single-writer
type Scheduler struct {
	sim   *engine.Simulation
	clock *PausableClock

	tickInterval     time.Duration
	lastElapsed      time.Duration // clock reading at the previous tick
	nextTickDeadline time.Time

	commands  chan command
	snapshots chan engine.TickResult

	// Control channels
	stopChan chan struct{}
	exited   chan struct{} // closed when the loop goroutine returns
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	err      atomic.Pointer[error]

	// Cached metric pointers
	statTicks   *atomic.Int64
	statLate    *atomic.Int64
	statTickLag *status.AtomicFloat
}

// NewScheduler wraps sim; clock may be nil for a real-time clock
func NewScheduler(sim *engine.Simulation, clock *PausableClock, tickInterval time.Duration) *Scheduler {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	reg := sim.Registry()
	return &Scheduler{
		sim:          sim,
		clock:        clock,
		tickInterval: tickInterval,
		commands:     make(chan command),
		snapshots:    make(chan engine.TickResult, 1),
		stopChan:     make(chan struct{}),
		exited:       make(chan struct{}),
		statTicks:    reg.Ints.Get("loop.ticks"),
		statLate:     reg.Ints.Get("loop.late_ticks"),
		statTickLag:  reg.Floats.Get("loop.tick_lag_ms"),
	}
}

// Snapshots delivers the latest completed tick; stale values are dropped, closed after Stop
func (s *Scheduler) Snapshots() <-chan engine.TickResult {
	return s.snapshots
}

// Start moves the simulation to Running and begins the loop
// Calling Start on a running scheduler is a no-op
func (s *Scheduler) Start() error {
	// The loop goroutine owns the simulation once running
	if s.running.Load() {
		return nil
	}

	switch s.sim.State() {
	case engine.StateStopped:
		return engine.ErrStopped
	case engine.StateIdle:
		if err := s.sim.Start(); err != nil {
			return err
		}
	}

	if s.running.CompareAndSwap(false, true) {
		s.lastElapsed = s.clock.Elapsed()
		s.nextTickDeadline = time.Now().Add(s.tickInterval)
		s.wg.Add(1)
		go s.schedulerLoop()
	}
	return nil
}

// Stop halts the loop, stops the simulation and closes the snapshot channel
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
		s.sim.Stop()
		close(s.snapshots)
	})
}

// Err returns the error that terminated the loop, nil otherwise
func (s *Scheduler) Err() error {
	if p := s.err.Load(); p != nil {
		return *p
	}
	return nil
}

// Do runs fn on the scheduler goroutine between ticks and waits for its result
func (s *Scheduler) Do(fn func(*engine.Simulation) error) error {
	if !s.running.Load() {
		return ErrNotRunning
	}
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case s.commands <- cmd:
	case <-s.exited:
		return ErrNotRunning
	}
	// Accepted commands always complete before the loop re-checks stop
	return <-cmd.done
}

// Pause freezes the simulation and its clock
func (s *Scheduler) Pause() error {
	return s.Do(func(sim *engine.Simulation) error {
		if err := sim.Pause(); err != nil {
			return err
		}
		s.clock.Pause()
		return nil
	})
}

// Resume continues ticking; paused wall time is excluded from the next dt
func (s *Scheduler) Resume() error {
	return s.Do(func(sim *engine.Simulation) error {
		if err := sim.Resume(); err != nil {
			return err
		}
		s.clock.Resume()
		s.nextTickDeadline = time.Now().Add(s.tickInterval)
		return nil
	})
}

// TogglePause flips between Running and Paused
func (s *Scheduler) TogglePause() error {
	return s.Do(func(sim *engine.Simulation) error {
		if sim.State() == engine.StatePaused {
			s.clock.Resume()
			s.nextTickDeadline = time.Now().Add(s.tickInterval)
			return sim.Resume()
		}
		if err := sim.Pause(); err != nil {
			return err
		}
		s.clock.Pause()
		return nil
	})
}

// schedulerLoop runs the tick loop with drift correction
func (s *Scheduler) schedulerLoop() {
	defer s.wg.Done()
	defer close(s.exited)
	defer s.running.Store(false)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		var sleepDuration time.Duration

		if s.sim.State() == engine.StatePaused {
			// Nothing to do until a command arrives
			sleepDuration = s.tickInterval * 2
		} else {
			now := time.Now()
			if !now.Before(s.nextTickDeadline) {
				if err := s.processTick(); err != nil {
					s.err.Store(&err)
					return
				}

				lag := now.Sub(s.nextTickDeadline)
				s.statTickLag.Set(float64(lag) / float64(time.Millisecond))

				s.nextTickDeadline = s.nextTickDeadline.Add(s.tickInterval)
				if now.Sub(s.nextTickDeadline) > s.tickInterval*2 {
					// Too far behind, skip missed ticks instead of bursting
					s.statLate.Add(1)
					s.nextTickDeadline = now.Add(s.tickInterval)
				}
			}
			sleepDuration = time.Until(s.nextTickDeadline)
		}

		if sleepDuration <= 0 {
			// Still drain pending commands without blocking
			select {
			case cmd := <-s.commands:
				cmd.done <- cmd.fn(s.sim)
			case <-s.stopChan:
				return
			default:
			}
			continue
		}

		timer.Reset(sleepDuration)
		select {
		case <-timer.C:
		case cmd := <-s.commands:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			cmd.done <- cmd.fn(s.sim)
		case <-s.stopChan:
			return
		}
	}
}

// processTick steps the simulation by the pausable clock's elapsed time and publishes the result
func (s *Scheduler) processTick() error {
	elapsed := s.clock.Elapsed()
	dt := (elapsed - s.lastElapsed).Seconds()
	s.lastElapsed = elapsed

	res, err := s.sim.Step(dt)
	if err != nil {
		return err
	}
	s.statTicks.Add(1)
	s.publish(res)
	return nil
}

// publish replaces any unread snapshot with res
func (s *Scheduler) publish(res engine.TickResult) {
	select {
	case s.snapshots <- res:
		return
	default:
	}
	select {
	case <-s.snapshots:
	default:
	}
	select {
	case s.snapshots <- res:
	default:
	}
}
