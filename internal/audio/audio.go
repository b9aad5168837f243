// Package audio plays short cues when the thread breaks or heals.
package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/thread"
)

const (
	SampleRate = beep.SampleRate(44100)

	cueGain       = 0.25
	chimeNote     = 180 * time.Millisecond
	chimeInterval = 1.5 // perfect fifth
	breakLength   = 350 * time.Millisecond
	meterSize     = 4096
	meterWindow   = 2048
)

// Tone returns a sine at freq lasting dur, fading linearly to silence.
func Tone(sr beep.SampleRate, freq float64, dur time.Duration, gain float64) beep.Streamer {
	total := sr.N(dur)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			env := 1 - float64(pos)/float64(total)
			v := math.Sin(2*math.Pi*freq*float64(pos)/float64(sr)) * gain * env
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

// Cue picks the sound for a thread transition: a rising two-note chime on
// reconnect, a low tone on break, nothing otherwise.
func Cue(cfg config.Audio, from, to thread.State) beep.Streamer {
	switch to {
	case thread.Reconnected:
		return beep.Seq(
			Tone(SampleRate, cfg.ReconnectHz, chimeNote, cueGain),
			Tone(SampleRate, cfg.ReconnectHz*chimeInterval, chimeNote, cueGain),
		)
	case thread.Broken:
		if from == thread.Reconnected {
			// scrolling back up through the tear
			return Tone(SampleRate, cfg.BreakHz*0.75, breakLength, cueGain)
		}
		return Tone(SampleRate, cfg.BreakHz, breakLength, cueGain)
	default:
		return nil
	}
}

// Player owns the speaker. Every method is safe to call when Init failed
// or was never called; audio is optional.
type Player struct {
	cfg    config.Audio
	logger *log.Logger

	// decoded replacements for the synthesized cues, nil when unset
	reconnect *beep.Buffer
	brk       *beep.Buffer

	mu    sync.Mutex
	mixer *beep.Mixer
	tap   *levelTap
	ready bool
}

// NewPlayer prepares the cues. A cue file that fails to load falls back to
// the synthesized tone.
func NewPlayer(cfg config.Audio, logger *log.Logger) *Player {
	mixer := &beep.Mixer{}
	p := &Player{
		cfg:    cfg,
		logger: logger,
		mixer:  mixer,
		tap:    newLevelTap(mixer, meterSize),
	}
	p.reconnect = p.load(cfg.ReconnectFile)
	p.brk = p.load(cfg.BreakFile)
	return p
}

func (p *Player) load(path string) *beep.Buffer {
	if path == "" {
		return nil
	}
	buf, err := LoadCue(path)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("audio: %v, using the built-in tone", err)
		}
		return nil
	}
	return buf
}

// cue is Cue with the loaded files taking precedence.
func (p *Player) cue(from, to thread.State) beep.Streamer {
	switch {
	case to == thread.Reconnected && p.reconnect != nil:
		return p.reconnect.Streamer(0, p.reconnect.Len())
	case to == thread.Broken && p.brk != nil:
		return p.brk.Streamer(0, p.brk.Len())
	}
	return Cue(p.cfg, from, to)
}

// Init opens the audio device and starts the cue mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(p.tap)
	p.ready = true
	return nil
}

// Ready reports whether cues reach the speaker.
func (p *Player) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// OnTransition queues the cue for a thread transition.
func (p *Player) OnTransition(from, to thread.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	s := p.cue(from, to)
	if s == nil {
		return
	}
	if p.logger != nil {
		p.logger.Printf("audio cue %s -> %s", from, to)
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Level is the recent output loudness in [0,1].
func (p *Player) Level() float64 {
	return p.tap.Level(meterWindow)
}

// Close silences every queued cue.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Clear()
	speaker.Unlock()
	p.ready = false
}
