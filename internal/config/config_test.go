package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config rejected: %v", err)
	}
	if cfg.Thread.Segments != 50 {
		t.Errorf("Expected 50 segments, got %d", cfg.Thread.Segments)
	}
	if got := cfg.Thread.Color.Hex(); got != "#d32f2f" {
		t.Errorf("Expected thread color #d32f2f, got %s", got)
	}
	if cfg.Document.ResizeDebounce.Duration != 250*time.Millisecond {
		t.Errorf("Expected 250ms debounce, got %v", cfg.Document.ResizeDebounce)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errSub string
	}{
		{"odd segments", func(c *Config) { c.Thread.Segments = 49 }, "segments"},
		{"zero width", func(c *Config) { c.Thread.Width = 0 }, "width"},
		{"negative particles", func(c *Config) { c.Particles.Count = -1 }, "particle count"},
		{"tablet below mobile", func(c *Config) { c.Breakpoints.Tablet = 100 }, "breakpoints"},
		{"short document", func(c *Config) { c.Document.Pages = 0.5 }, "viewport"},
		{"nan pages", func(c *Config) { c.Document.Pages = math.NaN() }, "document pages"},
		{"nan speed", func(c *Config) { c.Thread.Speed = math.NaN() }, "thread speed"},
		{"infinite amplitude", func(c *Config) { c.Thread.Amplitude = math.Inf(1) }, "thread amplitude"},
		{"infinite wheel step", func(c *Config) { c.Document.WheelStep = math.Inf(-1) }, "wheel_step"},
		{"nan break tone", func(c *Config) { c.Audio.BreakHz = math.NaN() }, "break_hz"},
		{"audio without tones", func(c *Config) {
			c.Audio.Enabled = true
			c.Audio.BreakHz = 0
		}, "frequencies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("Expected error mentioning %q, got %v", tt.errSub, err)
			}
		})
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse(`
debug = true

[thread]
color = "#00ff00"
amplitude = 40

[particles]
count = 3

[document]
resize_debounce = "100ms"
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be set")
	}
	if cfg.Thread.Amplitude != 40 {
		t.Errorf("Expected amplitude 40, got %g", cfg.Thread.Amplitude)
	}
	if got := cfg.Thread.Color.Hex(); got != "#00ff00" {
		t.Errorf("Expected #00ff00, got %s", got)
	}
	if cfg.Thread.Segments != ThreadSegments {
		t.Errorf("Expected untouched segments to keep default, got %d", cfg.Thread.Segments)
	}
	if cfg.Particles.Count != 3 {
		t.Errorf("Expected 3 particles, got %d", cfg.Particles.Count)
	}
	if cfg.Document.ResizeDebounce.Duration != 100*time.Millisecond {
		t.Errorf("Expected 100ms debounce, got %v", cfg.Document.ResizeDebounce)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse("[thread]\ncolor = \"red\"\n"); err == nil {
		t.Fatal("Expected error for non-hex color")
	}
}

func TestParseRejectsNonFinite(t *testing.T) {
	_, err := Parse("[thread]\nspeed = nan\namplitude = inf\n[document]\npages = nan\n")
	if err == nil || !strings.Contains(err.Error(), "finite") {
		t.Errorf("Expected non-finite values rejected, got %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse("[particles]\ncount = 3\nglitter = true\n")
	if err == nil || !strings.Contains(err.Error(), "particles.glitter") {
		t.Errorf("Expected unknown key error naming particles.glitter, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.toml")
	if err := os.WriteFile(good, []byte("[breakpoints]\nmobile = 600\ntablet = 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(good)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Breakpoints.Mobile != 600 || cfg.Breakpoints.Tablet != 900 {
		t.Errorf("Expected breakpoints 600/900, got %d/%d", cfg.Breakpoints.Mobile, cfg.Breakpoints.Tablet)
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("[thread]\nwobble = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(unknown); err == nil || !strings.Contains(err.Error(), "thread.wobble") {
		t.Errorf("Expected unknown key error naming thread.wobble, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Particles.Count != ParticleCount {
		t.Errorf("Expected defaults for empty path, got %d particles", cfg.Particles.Count)
	}
}
