// Command boxsim is an interactive terminal demo of the collision engine
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/boxphys/audio"
	"github.com/lixenwraith/boxphys/config"
	"github.com/lixenwraith/boxphys/engine"
	"github.com/lixenwraith/boxphys/loop"
	"github.com/lixenwraith/boxphys/parameter"
	"github.com/lixenwraith/boxphys/physics"
	"github.com/lixenwraith/boxphys/scene"
	"github.com/lixenwraith/boxphys/status"
)

var (
	configFlag = flag.String("config", "", "TOML config file, watched for changes")
	sceneFlag  = flag.String("scene", "", "YAML scene file, overrides the config scene")
	bodiesFlag = flag.Int("bodies", 40, "Random bodies when no scene is given")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 uses the clock")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/boxsim.log")
	muteFlag   = flag.Bool("mute", false, "Start with sound off")
)

// defaultDomain is used without a config file
var defaultDomain = physics.Box(0, 0, 800, 600)

func main() {
	// Restore the terminal before printing a crash
	var screen tcell.Screen
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBOXSIM CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	settings, err := loadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	bodies, err := loadBodies(*sceneFlag, settings, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load scene: %v\n", err)
		os.Exit(1)
	}

	reg := status.NewRegistry()
	sim, err := engine.NewSimulation(settings.Engine, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create simulation: %v\n", err)
		os.Exit(1)
	}
	sim.SetBodies(bodies)
	log.Printf("simulation ready: %d bodies, domain %+v, seed %d", len(bodies), settings.Engine.Domain, seed)

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the demo runs silent
		log.Printf("audio initialization failed: %v", err)
	}
	defer sound.Cleanup()
	sound.SetEnabled(!*muteFlag)

	sched := loop.NewScheduler(sim, nil, parameter.TickInterval)
	if err := sched.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start scheduler: %v\n", err)
		os.Exit(1)
	}
	defer sched.Stop()

	d := newDemo(sched, NewRenderer(screen, reg), sound, seed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *configFlag != "" {
		if err := config.Watch(ctx, *configFlag, d.applyConfig); err != nil {
			log.Printf("config watch disabled: %v", err)
		}
	}

	d.run(screen)
}

// loadSettings reads the config file, or defaults for the built-in domain
func loadSettings(path string) (config.Settings, error) {
	if path == "" {
		return config.Settings{Engine: engine.DefaultConfig(defaultDomain)}, nil
	}
	return config.Load(path)
}

// loadBodies picks the flag scene, then the config scene, then a random batch above a static floor
func loadBodies(scenePath string, settings config.Settings, seed int64) ([]physics.RigidBody, error) {
	if scenePath == "" {
		scenePath = settings.Scene
	}
	if scenePath != "" {
		s, err := scene.Load(scenePath)
		if err != nil {
			return nil, err
		}
		return s.Bodies, nil
	}

	domain := settings.Engine.Domain
	upper := physics.Box(domain.X, domain.Y, domain.Width, domain.Height*0.6)
	bodies := scene.Random(*bodiesFlag, upper, seed)

	floor := physics.NewStaticBody(len(bodies)+1, physics.Box(domain.X+domain.Width*0.1, domain.Bottom()-domain.Height*0.15, domain.Width*0.8, domain.Height*0.05))
	return append(bodies, floor), nil
}

// demo is the render/input side, it touches the simulation only through the scheduler
type demo struct {
	sched    *loop.Scheduler
	renderer *Renderer
	sound    *audio.SoundManager
	contacts *audio.ContactTracker
	walls    *audio.WallTracker
	rng      *rand.Rand

	// reloaded is signaled from the config watcher, the UI loop then refreshes cfg
	reloaded chan struct{}

	last    engine.TickResult
	cfg     engine.Config
	state   engine.State
	impacts []audio.Impact
}

func newDemo(sched *loop.Scheduler, renderer *Renderer, sound *audio.SoundManager, seed int64) *demo {
	return &demo{
		sched:    sched,
		renderer: renderer,
		sound:    sound,
		contacts: audio.NewContactTracker(),
		walls:    audio.NewWallTracker(),
		rng:      rand.New(rand.NewSource(seed)),
		reloaded: make(chan struct{}, 1),
	}
}

func (d *demo) run(screen tcell.Screen) {
	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	d.refresh()

	for {
		select {
		case ev := <-eventChan:
			if !d.handleInput(ev, screen) {
				return
			}

		case res, ok := <-d.sched.Snapshots():
			if !ok {
				if err := d.sched.Err(); err != nil {
					log.Printf("scheduler stopped: %v", err)
				}
				return
			}
			d.last = res
			d.playEffects(res)

		case <-d.reloaded:
			d.refresh()

		case <-frameTicker.C:
			d.renderer.Draw(d.last, d.cfg, d.state, !d.sound.Enabled())
		}
	}
}

// applyConfig runs on the watcher goroutine; it hands the new engine config to the scheduler
func (d *demo) applyConfig(s config.Settings, err error) {
	if err != nil {
		log.Printf("config reload rejected: %v", err)
		return
	}
	if err := d.sched.Do(func(sim *engine.Simulation) error { return sim.SetConfig(s.Engine) }); err != nil {
		log.Printf("config apply failed: %v", err)
		return
	}
	log.Printf("config reloaded")
	select {
	case d.reloaded <- struct{}{}:
	default:
	}
}

// refresh copies config and state from the scheduler goroutine
func (d *demo) refresh() {
	_ = d.sched.Do(func(sim *engine.Simulation) error {
		d.cfg = sim.Config()
		d.state = sim.State()
		return nil
	})
}

func (d *demo) playEffects(res engine.TickResult) {
	d.impacts = d.contacts.Update(res, d.impacts[:0])
	for _, imp := range d.impacts {
		d.sound.PlayImpact(imp.Speed)
	}
	if d.walls.Update(res, d.cfg.Domain) > 0 {
		d.sound.PlayWall()
	}
}

func (d *demo) handleInput(ev tcell.Event, screen tcell.Screen) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}

		switch ev.Rune() {
		case 'q':
			return false

		case ' ':
			if err := d.sched.TogglePause(); err != nil {
				log.Printf("pause toggle: %v", err)
			}

		case 'n':
			d.spawn()

		case 'h':
			err := d.sched.Do(func(sim *engine.Simulation) error {
				cfg := sim.Config()
				cfg.SpatialHash.EnableOptimization = !cfg.SpatialHash.EnableOptimization
				return sim.SetConfig(cfg)
			})
			if err != nil {
				log.Printf("hash toggle: %v", err)
			}

		case 'm':
			d.sound.SetEnabled(!d.sound.Enabled())
		}
		d.refresh()

	case *tcell.EventResize:
		screen.Sync()
	}

	return true
}

// spawn drops a random body near the top of the domain
func (d *demo) spawn() {
	err := d.sched.Do(func(sim *engine.Simulation) error {
		domain := sim.Config().Domain
		top := physics.Box(domain.X, domain.Y, domain.Width, domain.Height*0.2)
		b := scene.Random(1, top, d.rng.Int63())[0]
		b.ID = 0
		id := sim.AddBody(b)
		log.Printf("spawned body %d at %+v", id, b.Box)
		return nil
	})
	if err != nil {
		log.Printf("spawn: %v", err)
	}
}
