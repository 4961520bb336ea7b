package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap throttles clicks when many contacts start in the same frame
	MinSoundGap = 30 * time.Millisecond
)

// Impact click
const (
	ImpactSoundDuration = 60 * time.Millisecond
	ImpactSoundAttack   = 2 * time.Millisecond
	ImpactSoundRelease  = 45 * time.Millisecond

	// Pitch range mapped from closing speed
	ImpactMinFreq = 220.0
	ImpactMaxFreq = 880.0

	// ImpactFullSpeed is the closing speed mapped to max pitch and volume (px/s)
	ImpactFullSpeed = 1500.0
)

// Wall thud
const (
	WallSoundDuration = 90 * time.Millisecond
	WallSoundAttack   = 3 * time.Millisecond
	WallSoundRelease  = 70 * time.Millisecond
	WallSoundFreq     = 110.0
)

// DefaultMasterVolume is the linear gain applied to every effect
const DefaultMasterVolume = 0.5
