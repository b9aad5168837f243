package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/vmath"
)

const (
	WindowWidth  = 1024
	WindowHeight = 768
	WindowTitle  = "Red Thread - wheel/arrows: scroll, Space: autoscroll, D: debug, Esc/Q: quit"

	// Thread parameters
	ThreadColor     = "#D32F2F"
	ThreadGlowColor = "#FFD700"
	ThreadWidth     = 3
	ThreadSegments  = 50
	ThreadAmplitude = 80
	ThreadFrequency = 0.01
	ThreadSpeed     = 0.02

	// Particle parameters
	ParticleCount = 15
	ParticleColor = "#FFD700"
	ParticleSize  = 3
	ParticleSpeed = 1

	// Device breakpoints (viewport width, inclusive)
	MobileBreakpoint = 767
	TabletBreakpoint = 1023

	// Virtual page
	BackgroundColor = "#0A0A0A"
	DocumentPages   = 8
	WheelStep       = 60
	AutoscrollSpeed = 4
	ResizeDebounce  = 250 * time.Millisecond

	// Audio cues
	ReconnectToneHz = 880
	BreakToneHz     = 220
)

// Color is a hex color ("#RRGGBB") that decodes from TOML strings.
type Color struct {
	colorful.Color
}

// MustHex parses a hex color and panics on malformed input. Only used for
// the compiled-in defaults.
func MustHex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("config: bad default color %q: %v", s, err))
	}
	return Color{c}
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := colorful.Hex(string(text))
	if err != nil {
		return fmt.Errorf("color %q: %w", text, err)
	}
	c.Color = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Duration decodes TOML strings such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Thread struct {
	Color     Color   `toml:"color"`
	GlowColor Color   `toml:"glow_color"`
	Width     float64 `toml:"width"`
	Segments  int     `toml:"segments"`
	Amplitude float64 `toml:"amplitude"`
	Frequency float64 `toml:"frequency"`
	Speed     float64 `toml:"speed"`
}

type Particles struct {
	Count int     `toml:"count"`
	Color Color   `toml:"color"`
	Size  float64 `toml:"size"`
	Speed float64 `toml:"speed"`
}

type Breakpoints struct {
	Mobile int `toml:"mobile"`
	Tablet int `toml:"tablet"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Document describes the virtual page that is scrolled.
type Document struct {
	Background      Color    `toml:"background"`
	Pages           float64  `toml:"pages"`
	WheelStep       float64  `toml:"wheel_step"`
	AutoscrollSpeed float64  `toml:"autoscroll_speed"`
	ResizeDebounce  Duration `toml:"resize_debounce"`
}

type Audio struct {
	Enabled     bool    `toml:"enabled"`
	ReconnectHz float64 `toml:"reconnect_hz"`
	BreakHz     float64 `toml:"break_hz"`

	// Optional wav, mp3 or flac files replacing the synthesized cues.
	ReconnectFile string `toml:"reconnect_file"`
	BreakFile     string `toml:"break_file"`
}

// Config is the render configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	Thread      Thread      `toml:"thread"`
	Particles   Particles   `toml:"particles"`
	Breakpoints Breakpoints `toml:"breakpoints"`
	Window      Window      `toml:"window"`
	Document    Document    `toml:"document"`
	Audio       Audio       `toml:"audio"`

	Autoscroll bool  `toml:"autoscroll"`
	Debug      bool  `toml:"debug"`
	Seed       int64 `toml:"seed"` // 0 seeds from the clock
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Thread: Thread{
			Color:     MustHex(ThreadColor),
			GlowColor: MustHex(ThreadGlowColor),
			Width:     ThreadWidth,
			Segments:  ThreadSegments,
			Amplitude: ThreadAmplitude,
			Frequency: ThreadFrequency,
			Speed:     ThreadSpeed,
		},
		Particles: Particles{
			Count: ParticleCount,
			Color: MustHex(ParticleColor),
			Size:  ParticleSize,
			Speed: ParticleSpeed,
		},
		Breakpoints: Breakpoints{
			Mobile: MobileBreakpoint,
			Tablet: TabletBreakpoint,
		},
		Window: Window{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Document: Document{
			Background:      MustHex(BackgroundColor),
			Pages:           DocumentPages,
			WheelStep:       WheelStep,
			AutoscrollSpeed: AutoscrollSpeed,
			ResizeDebounce:  Duration{ResizeDebounce},
		},
		Audio: Audio{
			ReconnectHz: ReconnectToneHz,
			BreakHz:     BreakToneHz,
		},
	}
}

// Validate checks the configuration for values the renderer cannot draw.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"thread width", c.Thread.Width},
		{"thread amplitude", c.Thread.Amplitude},
		{"thread frequency", c.Thread.Frequency},
		{"thread speed", c.Thread.Speed},
		{"particle size", c.Particles.Size},
		{"particle speed", c.Particles.Speed},
		{"document pages", c.Document.Pages},
		{"document wheel_step", c.Document.WheelStep},
		{"document autoscroll_speed", c.Document.AutoscrollSpeed},
		{"audio reconnect_hz", c.Audio.ReconnectHz},
		{"audio break_hz", c.Audio.BreakHz},
	} {
		if !vmath.Finite(f.v) {
			return fmt.Errorf("%s must be a finite number: got %g", f.name, f.v)
		}
	}
	if c.Thread.Segments < 2 || c.Thread.Segments%2 != 0 {
		return fmt.Errorf("thread segments must be an even number >= 2: got %d", c.Thread.Segments)
	}
	if c.Thread.Width <= 0 {
		return fmt.Errorf("thread width must be positive: got %g", c.Thread.Width)
	}
	if c.Thread.Amplitude < 0 {
		return fmt.Errorf("thread amplitude must not be negative: got %g", c.Thread.Amplitude)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("particle count must not be negative: got %d", c.Particles.Count)
	}
	if c.Particles.Size < 0 || c.Particles.Speed < 0 {
		return errors.New("particle size and speed must not be negative")
	}
	if c.Breakpoints.Mobile <= 0 || c.Breakpoints.Tablet < c.Breakpoints.Mobile {
		return fmt.Errorf("invalid breakpoints: mobile %d, tablet %d", c.Breakpoints.Mobile, c.Breakpoints.Tablet)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size out of range: %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Document.Pages < 1 {
		return fmt.Errorf("document must be at least one viewport long: got %g", c.Document.Pages)
	}
	if c.Document.ResizeDebounce.Duration < 0 {
		return fmt.Errorf("resize debounce must not be negative: got %v", c.Document.ResizeDebounce)
	}
	if c.Audio.Enabled && (c.Audio.ReconnectHz <= 0 || c.Audio.BreakHz <= 0) {
		return errors.New("audio cue frequencies must be positive")
	}
	return nil
}
