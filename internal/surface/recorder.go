package surface

import "github.com/lucasb-eyer/go-colorful"

type OpKind string

const (
	OpClear    OpKind = "clear"
	OpStroke   OpKind = "stroke"
	OpCircle   OpKind = "circle"
	OpGradient OpKind = "gradient"
	OpText     OpKind = "text"
)

// Op is one recorded draw call together with the drawing state it was
// issued under.
type Op struct {
	Kind   OpKind
	Path   *Path
	Stroke Stroke
	Center Point
	Radius float64
	Color  colorful.Color
	Stops  []Stop
	Text   string

	Alpha     float64
	GlowBlur  float64
	GlowColor colorful.Color
}

// Recorder is a Surface that keeps every draw call in order. It backs the
// renderer tests and the headless frame dumps.
type Recorder struct {
	Ops []Op

	alpha     float64
	glowBlur  float64
	glowColor colorful.Color
}

func NewRecorder() *Recorder {
	return &Recorder{alpha: 1}
}

func (r *Recorder) push(op Op) {
	op.Alpha = r.alpha
	op.GlowBlur = r.glowBlur
	op.GlowColor = r.glowColor
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear() {
	r.push(Op{Kind: OpClear})
}

func (r *Recorder) StrokePath(p *Path, s Stroke) {
	r.push(Op{Kind: OpStroke, Path: p, Stroke: s})
}

func (r *Recorder) FillCircle(center Point, radius float64, c colorful.Color) {
	r.push(Op{Kind: OpCircle, Center: center, Radius: radius, Color: c})
}

func (r *Recorder) FillRadialGradient(center Point, radius float64, stops []Stop) {
	cp := make([]Stop, len(stops))
	copy(cp, stops)
	r.push(Op{Kind: OpGradient, Center: center, Radius: radius, Stops: cp})
}

func (r *Recorder) SetGlow(blur float64, c colorful.Color) {
	r.glowBlur = blur
	r.glowColor = c
}

func (r *Recorder) SetAlpha(a float64) {
	r.alpha = a
}

func (r *Recorder) Text(at Point, s string, c colorful.Color) {
	r.push(Op{Kind: OpText, Center: at, Text: s, Color: c})
}

// reset drops recorded ops and restores the default drawing state.
func (r *Recorder) reset() {
	r.Ops = r.Ops[:0]
	r.alpha = 1
	r.glowBlur = 0
	r.glowColor = colorful.Color{}
}

// Filter returns the recorded ops of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
