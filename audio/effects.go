package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/boxphys/parameter"
)

// noise is a white noise source of fixed length
type noise struct {
	remaining int
}

func newNoise(duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &noise{remaining: rate.N(duration)}
}

func (o *noise) Stream(samples [][2]float64) (n int, ok bool) {
	if o.remaining <= 0 {
		return 0, false
	}
	n = min(len(samples), o.remaining)
	for i := 0; i < n; i++ {
		v := rand.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	o.remaining -= n
	return n, true
}

func (o *noise) Err() error { return nil }

// envelope applies attack/release shaping and ends the stream after its duration
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer:       s,
		attackSamples:  min(rate.N(attack), total),
		releaseSamples: min(rate.N(release), total),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if left := e.totalSamples - e.position; len(samples) > left {
		samples = samples[:left]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; math.Log2(0) is -Inf so zero maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// ImpactIntensity maps closing speed to [0, 1] on a square-root curve
func ImpactIntensity(speed float64) float64 {
	if !(speed > 0) {
		return 0
	}
	return min(math.Sqrt(speed/parameter.ImpactFullSpeed), 1)
}

// ImpactFrequency maps closing speed to a pitch in [ImpactMinFreq, ImpactMaxFreq]
func ImpactFrequency(speed float64) float64 {
	return parameter.ImpactMinFreq + (parameter.ImpactMaxFreq-parameter.ImpactMinFreq)*ImpactIntensity(speed)
}

// CreateImpactSound builds a short pitched click for a body-body contact
func CreateImpactSound(speed, master float64, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, ImpactFrequency(speed))
	if err != nil {
		// Frequency above Nyquist for tiny sample rates, fall back to noise
		tone = newNoise(parameter.ImpactSoundDuration, rate)
	}
	shaped := NewEnvelope(tone, parameter.ImpactSoundDuration, parameter.ImpactSoundAttack, parameter.ImpactSoundRelease, rate)
	return newVolume(shaped, master*(0.2+0.8*ImpactIntensity(speed)))
}

// CreateWallSound builds a low thud mixed with a little noise for boundary hits
func CreateWallSound(master float64, rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, parameter.WallSoundFreq)
	if err != nil {
		tone = newNoise(parameter.WallSoundDuration, rate)
	}
	mixed := beep.Mix(
		newVolume(tone, 0.8),
		newVolume(newNoise(parameter.WallSoundDuration, rate), 0.2),
	)
	shaped := NewEnvelope(mixed, parameter.WallSoundDuration, parameter.WallSoundAttack, parameter.WallSoundRelease, rate)
	return newVolume(shaped, master)
}
