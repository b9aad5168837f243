package audio

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/thread"
)

// drain streams s to the end in small chunks and returns every sample.
func drain(t *testing.T, s beep.Streamer) [][2]float64 {
	t.Helper()
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
	t.Fatal("Expected streamer to finish")
	return nil
}

func TestToneLengthAndEnvelope(t *testing.T) {
	sr := beep.SampleRate(8000)
	samples := drain(t, Tone(sr, 440, 100*time.Millisecond, 0.5))

	if len(samples) != sr.N(100*time.Millisecond) {
		t.Fatalf("Expected %d samples, got %d", sr.N(100*time.Millisecond), len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("Expected tone to start at zero phase, got %v", samples[0][0])
	}
	for i, s := range samples {
		if s[0] != s[1] {
			t.Fatalf("Expected mono tone, sample %d differs", i)
		}
		if math.Abs(s[0]) > 0.5 {
			t.Fatalf("Expected peak within gain, got %v", s[0])
		}
	}
	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.5/float64(len(samples))+1e-12 {
		t.Errorf("Expected fade to silence, last sample %v", last)
	}
}

func TestCueSelection(t *testing.T) {
	cfg := config.Default().Audio
	tests := []struct {
		name     string
		from, to thread.State
		silent   bool
	}{
		{"tear", thread.Intact, thread.Broken, false},
		{"heal", thread.Broken, thread.Reconnected, false},
		{"tear from above", thread.Reconnected, thread.Broken, false},
		{"back to intact", thread.Broken, thread.Intact, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Cue(cfg, tt.from, tt.to)
			if (s == nil) != tt.silent {
				t.Errorf("Expected silent=%v, got %v", tt.silent, s == nil)
			}
		})
	}

	chime := drain(t, Cue(cfg, thread.Broken, thread.Reconnected))
	if len(chime) != 2*SampleRate.N(chimeNote) {
		t.Errorf("Expected two chime notes, got %d samples", len(chime))
	}
}

func TestLevelTap(t *testing.T) {
	constant := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{0.5, -0.5}
		}
		return len(samples), true
	})
	tap := newLevelTap(constant, 64)

	if tap.Level(32) != 0 {
		t.Fatal("Expected silence before streaming")
	}
	buf := make([][2]float64, 100)
	tap.Stream(buf)

	if got := tap.Level(32); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Expected RMS 0.5, got %v", got)
	}
	if got := tap.Level(1000); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("Expected window capped at the ring, got %v", got)
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Player panicked without a device: %v", r)
		}
	}()
	p := NewPlayer(config.Default().Audio, nil)
	p.OnTransition(thread.Intact, thread.Broken)
	if p.Ready() || p.Level() != 0 {
		t.Error("Expected idle player")
	}
	p.Close()
}

func writeWav(t *testing.T, sr beep.SampleRate, dur time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cue.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, Tone(sr, 440, dur, 0.5), format); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestLoadCueResamples(t *testing.T) {
	path := writeWav(t, 22050, 200*time.Millisecond)

	buf, err := LoadCue(path)
	if err != nil {
		t.Fatalf("LoadCue: %v", err)
	}
	expected := SampleRate.N(200 * time.Millisecond)
	if diff := buf.Len() - expected; diff < -8 || diff > 8 {
		t.Errorf("Expected about %d samples at %d Hz, got %d", expected, SampleRate, buf.Len())
	}
}

func TestLoadCueErrors(t *testing.T) {
	if _, err := LoadCue(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("Expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "cue.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCue(path); err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("Expected unsupported type error, got %v", err)
	}
}

func TestPlayerPrefersCueFiles(t *testing.T) {
	cfg := config.Default().Audio
	cfg.BreakFile = writeWav(t, SampleRate, 50*time.Millisecond)
	cfg.ReconnectFile = filepath.Join(t.TempDir(), "missing.flac")

	p := NewPlayer(cfg, nil)
	if n := len(drain(t, p.cue(thread.Intact, thread.Broken))); n != SampleRate.N(50*time.Millisecond) {
		t.Errorf("Expected the file cue, got %d samples", n)
	}
	if n := len(drain(t, p.cue(thread.Broken, thread.Reconnected))); n != 2*SampleRate.N(chimeNote) {
		t.Errorf("Expected fallback chime, got %d samples", n)
	}
}
