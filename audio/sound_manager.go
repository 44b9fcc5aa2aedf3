package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/trough/config"
	"github.com/lixenwraith/trough/core"
	"github.com/lixenwraith/trough/engine"
)

const speakerBuffer = 100 * time.Millisecond

// Sound identifies a cue
type Sound int

const (
	SoundStart    Sound = iota // A drawing begins revealing
	SoundComplete              // A drawing finished revealing
)

func (s Sound) String() string {
	switch s {
	case SoundStart:
		return "start"
	case SoundComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// SoundManager plays reveal cues through the speaker
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
}

// NewSoundManager creates a manager from audio settings
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = 44100
	}
	return &SoundManager{
		mixer:   &beep.Mixer{},
		rate:    rate,
		volume:  cfg.MasterVolume,
		enabled: cfg.Enabled,
	}
}

// Initialize opens the speaker; disabled managers stay silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(speakerBuffer)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	core.Logger().Info("audio initialized", "rate", int(sm.rate), "volume", sm.volume)
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker close; clearing the mixer silences output
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Initialized reports whether the speaker is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	st := Streamer(s, sm.rate, sm.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(st)
	speaker.Unlock()
}

// HandleEvent maps installation events to cues
func (sm *SoundManager) HandleEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.EventRevealStart:
		sm.Play(SoundStart)
	case engine.EventRevealComplete:
		sm.Play(SoundComplete)
	}
}

// Streamer builds the streamer for a cue, nil for unknown cues
func Streamer(s Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	switch s {
	case SoundStart:
		return startTone.Streamer(rate, volume)
	case SoundComplete:
		return completeTone.Streamer(rate, volume)
	default:
		return nil
	}
}
