package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveTriangle
)

// Partial is one sine or triangle component of a tone
type Partial struct {
	Freq    float64
	Gain    float64
	Release time.Duration
}

// Tone describes a short enveloped sound built from partials
type Tone struct {
	Wave     WaveType
	Duration time.Duration
	Attack   time.Duration
	Partials []Partial
}

var (
	// startTone is a soft rising fifth played when a drawing begins
	startTone = Tone{
		Wave:     WaveTriangle,
		Duration: 400 * time.Millisecond,
		Attack:   40 * time.Millisecond,
		Partials: []Partial{
			{Freq: 440, Gain: 0.6, Release: 300 * time.Millisecond},
			{Freq: 659.25, Gain: 0.4, Release: 200 * time.Millisecond},
		},
	}

	// completeTone is a bell with one overtone played when a drawing completes
	completeTone = Tone{
		Wave:     WaveSine,
		Duration: 900 * time.Millisecond,
		Attack:   5 * time.Millisecond,
		Partials: []Partial{
			{Freq: 880, Gain: 0.7, Release: 850 * time.Millisecond},
			{Freq: 1760, Gain: 0.3, Release: 500 * time.Millisecond},
		},
	}
)

// voice is an oscillator with a linear attack/release envelope applied per sample
type voice struct {
	wave    WaveType
	freq    float64
	rate    float64
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

func newVoice(wave WaveType, freq float64, duration, attack, release time.Duration, rate beep.SampleRate) *voice {
	return &voice{
		wave:    wave,
		freq:    freq,
		rate:    float64(rate),
		total:   rate.N(duration),
		attack:  rate.N(attack),
		release: min(rate.N(release), rate.N(duration)),
	}
}

func (v *voice) gain() float64 {
	g := 1.0
	if v.attack > 0 && v.pos < v.attack {
		g = float64(v.pos) / float64(v.attack)
	}
	if left := v.total - v.pos; v.release > 0 && left < v.release {
		g = min(g, float64(left)/float64(v.release))
	}
	return g
}

func (v *voice) sample() float64 {
	switch v.wave {
	case WaveTriangle:
		return 4*math.Abs(v.phase-0.5) - 1
	default:
		return math.Sin(2 * math.Pi * v.phase)
	}
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if v.pos >= v.total {
			return i, i > 0
		}
		s := v.sample() * v.gain()
		samples[i][0] = s
		samples[i][1] = s

		v.phase += v.freq / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return len(samples), true
}

func (v *voice) Err() error { return nil }

// newVolume scales linearly; zero or negative volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Streamer renders the tone at the given rate and master volume
func (t Tone) Streamer(rate beep.SampleRate, volume float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(t.Partials))
	for _, p := range t.Partials {
		v := newVoice(t.Wave, p.Freq, t.Duration, t.Attack, p.Release, rate)
		parts = append(parts, newVolume(v, p.Gain))
	}
	return newVolume(beep.Mix(parts...), volume)
}
