package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

// TestVoiceLength verifies a voice streams exactly its duration
func TestVoiceLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	v := newVoice(WaveSine, 50, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	out := drain(v)
	if len(out) != 100 {
		t.Fatalf("Expected 100 samples, got %d", len(out))
	}
	if v.Err() != nil {
		t.Errorf("Expected no error, got %v", v.Err())
	}

	n, ok := v.Stream(make([][2]float64, 8))
	if n != 0 || ok {
		t.Errorf("Expected drained voice to report (0,false), got (%d,%v)", n, ok)
	}
}

// TestVoiceEnvelope verifies the attack starts silent and samples stay in range
func TestVoiceEnvelope(t *testing.T) {
	rate := beep.SampleRate(8000)
	v := newVoice(WaveTriangle, 440, 50*time.Millisecond, 5*time.Millisecond, 10*time.Millisecond, rate)

	out := drain(v)
	if out[0][0] != 0 {
		t.Errorf("Expected first attack sample 0, got %f", out[0][0])
	}
	for i, s := range out {
		if math.Abs(s[0]) > 1 || s[0] != s[1] {
			t.Fatalf("Sample %d out of range or not mono: %v", i, s)
		}
	}
	if last := out[len(out)-1][0]; math.Abs(last) > 0.02 {
		t.Errorf("Expected release to fade near zero, got %f", last)
	}
}

// TestTriangleWave verifies the triangle shape at quarter phases
func TestTriangleWave(t *testing.T) {
	v := &voice{wave: WaveTriangle}
	for _, tc := range []struct{ phase, want float64 }{
		{0, 1}, {0.25, 0}, {0.5, -1}, {0.75, 0},
	} {
		v.phase = tc.phase
		if got := v.sample(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Expected %f at phase %f, got %f", tc.want, tc.phase, got)
		}
	}
}

// TestStreamerCues verifies every cue renders and unknown cues do not
func TestStreamerCues(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, s := range []Sound{SoundStart, SoundComplete} {
		st := Streamer(s, rate, 0.5)
		if st == nil {
			t.Fatalf("Expected streamer for %s", s)
		}
		buf := make([][2]float64, 64)
		if n, ok := st.Stream(buf); n == 0 || !ok {
			t.Errorf("Expected %s to produce samples, got (%d,%v)", s, n, ok)
		}
	}
	if Streamer(Sound(42), rate, 1) != nil {
		t.Error("Expected nil for unknown cue")
	}
}

// TestNewVolumeZero verifies zero volume silences the stream
func TestNewVolumeZero(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := newVolume(newVoice(WaveSine, 100, 20*time.Millisecond, 0, 0, rate), 0)
	for i, smp := range drain(s) {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("Expected silence at %d, got %v", i, smp)
		}
	}
}
