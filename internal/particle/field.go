// Package particle keeps the ambient gold motes that drift over the healed
// thread.
package particle

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/redthread/internal/config"
	"github.com/iburimskiy/redthread/internal/surface"
)

const (
	minRadius   = 1
	minOpacity  = 0.3
	opacitySpan = 0.5
	glowBlur    = 10
)

type Particle struct {
	X, Y    float64
	VX, VY  float64
	Radius  float64
	Opacity float64
}

// Step moves the particle by its velocity and reverses the velocity on any
// axis where it left [0,width]x[0,height]. The position is not pulled back,
// so a particle can sit one frame outside the bounds.
func (p *Particle) Step(width, height float64) {
	p.X += p.VX
	p.Y += p.VY
	if p.X < 0 || p.X > width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > height {
		p.VY = -p.VY
	}
}

// Field is a fixed-size set of particles confined to the canvas.
type Field struct {
	cfg           config.Particles
	width, height float64
	particles     []*Particle
}

func NewField(cfg config.Particles) *Field {
	return &Field{cfg: cfg}
}

// Reset discards every particle and spawns a fresh batch inside
// width x height.
func (f *Field) Reset(width, height float64, rng *rand.Rand) {
	f.width, f.height = width, height
	f.particles = make([]*Particle, 0, f.cfg.Count)
	for i := 0; i < f.cfg.Count; i++ {
		f.particles = append(f.particles, &Particle{
			X:       rng.Float64() * width,
			Y:       rng.Float64() * height,
			VX:      (rng.Float64() - 0.5) * f.cfg.Speed,
			VY:      (rng.Float64() - 0.5) * f.cfg.Speed,
			Radius:  rng.Float64()*f.cfg.Size + minRadius,
			Opacity: rng.Float64()*opacitySpan + minOpacity,
		})
	}
}

func (f *Field) Particles() []*Particle { return f.particles }

func (f *Field) Len() int { return len(f.particles) }

func (f *Field) Bounds() (float64, float64) { return f.width, f.height }

// Step advances every particle by one frame.
func (f *Field) Step() {
	for _, p := range f.particles {
		p.Step(f.width, f.height)
	}
}

// Draw renders every particle as a glowing dot at its own opacity.
func (f *Field) Draw(dst surface.Surface) {
	col := f.cfg.Color.Color
	for _, p := range f.particles {
		dst.SetAlpha(p.Opacity)
		dst.SetGlow(glowBlur, col)
		dst.FillCircle(surface.Point{X: p.X, Y: p.Y}, p.Radius, col)
	}
	dst.SetGlow(0, colorful.Color{})
	dst.SetAlpha(1)
}

// Update steps then draws, as done once per reconnected frame.
func (f *Field) Update(dst surface.Surface) {
	f.Step()
	f.Draw(dst)
}
