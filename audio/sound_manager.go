package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/boxphys/parameter"
	"github.com/lixenwraith/boxphys/vmath"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager plays collision effects through one speaker mixer
// Every method is a no-op until Initialize succeeds, audio is optional
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	master      float64
	lastPlay    time.Time

	enabled atomic.Bool
	played  atomic.Int64
}

// NewSoundManager creates an enabled, uninitialized manager
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer:  &beep.Mixer{},
		master: parameter.DefaultMasterVolume,
	}
	sm.enabled.Store(true)
	return sm
}

// Initialize opens the speaker, repeated calls are no-ops
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences all pending effects
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// SetEnabled mutes or unmutes effects without closing the speaker
func (sm *SoundManager) SetEnabled(on bool) {
	sm.enabled.Store(on)
}

// Enabled reports whether effects are audible
func (sm *SoundManager) Enabled() bool {
	return sm.enabled.Load()
}

// SetMasterVolume sets linear gain, clamped to [0, 1]
func (sm *SoundManager) SetMasterVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.master = vmath.Clamp(v, 0, 1)
}

// Played returns the number of effects queued since creation
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}

// PlayImpact queues a click pitched by closing speed
func (sm *SoundManager) PlayImpact(speed float64) {
	sm.play(time.Now(), func(master float64) beep.Streamer {
		return CreateImpactSound(speed, master, sampleRate)
	})
}

// PlayWall queues a boundary thud
func (sm *SoundManager) PlayWall() {
	sm.play(time.Now(), func(master float64) beep.Streamer {
		return CreateWallSound(master, sampleRate)
	})
}

func (sm *SoundManager) play(now time.Time, build func(master float64) beep.Streamer) {
	if !sm.enabled.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.admit(now) {
		return
	}

	s := build(sm.master)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played.Add(1)
}

// admit enforces MinSoundGap between effects, caller holds mu
func (sm *SoundManager) admit(now time.Time) bool {
	if !sm.lastPlay.IsZero() && now.Sub(sm.lastPlay) < parameter.MinSoundGap {
		return false
	}
	sm.lastPlay = now
	return true
}
