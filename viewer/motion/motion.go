// Package motion eases rendered transform values toward the latest targets
// using critically damped springs.
package motion

import (
	"math"
	"strconv"

	"github.com/charmbracelet/harmonica"

	"zemljevid/viewer/transform"
)

const (
	DefaultFPS       = 60
	DefaultFrequency = 13.0
	DefaultDamping   = 1.0
	DefaultEpsilon   = 0.001

	// BaseScale is the scale the zoom level is added to.
	BaseScale = 1.0
)

type Options struct {
	FPS       int
	Frequency float64
	Damping   float64
	Epsilon   float64
}

func DefaultOptions() Options {
	return Options{
		FPS:       DefaultFPS,
		Frequency: DefaultFrequency,
		Damping:   DefaultDamping,
		Epsilon:   DefaultEpsilon,
	}
}

// Verify replaces unusable options with defaults. Damping below 1 would
// overshoot, so it is raised to critical.
func (o *Options) Verify() {
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if !(o.Frequency > 0) || math.IsInf(o.Frequency, 0) {
		o.Frequency = DefaultFrequency
	}
	if !(o.Damping >= 1) || math.IsInf(o.Damping, 0) {
		o.Damping = DefaultDamping
	}
	if !(o.Epsilon > 0) || math.IsInf(o.Epsilon, 0) {
		o.Epsilon = DefaultEpsilon
	}
}

// Frame is what the renderer applies for one frame: a translation, a scale
// and the origin the scale is applied about.
type Frame struct {
	TranslateX, TranslateY float64
	Scale                  float64
	OriginX, OriginY       float64
}

// Origin formats the transform origin as "Xpx Ypx".
func (f Frame) Origin() string {
	return px(f.OriginX) + " " + px(f.OriginY)
}

// Apply maps a point in image-local pixels to viewport pixels.
func (f Frame) Apply(x, y float64) (float64, float64) {
	return f.TranslateX + f.OriginX + f.Scale*(x-f.OriginX),
		f.TranslateY + f.OriginY + f.Scale*(y-f.OriginY)
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

type channel struct {
	pos     float64
	vel     float64
	target  float64
	settled bool
}

func (c *channel) retarget(v float64) {
	if v == c.target {
		return
	}
	c.target = v
	c.settled = false
}

func (c *channel) jump(v float64) {
	c.pos, c.vel, c.target = v, 0, v
	c.settled = true
}

// step advances one frame. The channel never moves away from its target and
// never crosses it.
func (c *channel) step(s harmonica.Spring, eps float64) {
	if c.settled {
		return
	}
	d := c.target - c.pos
	if math.Abs(d) <= eps && math.Abs(c.vel) <= eps {
		c.jump(c.target)
		return
	}
	if c.vel*d < 0 {
		c.vel = 0
	}
	pos, vel := s.Update(c.pos, c.vel, c.target)
	if (c.target-pos)*d <= 0 {
		c.jump(c.target)
		return
	}
	c.pos, c.vel = pos, vel
}

// Smoother holds six independently sprung channels. Targets can change every
// frame; interpolation always continues from the current position.
type Smoother struct {
	spring harmonica.Spring
	eps    float64

	x, y   channel
	scale  channel
	zoom   channel
	fx, fy channel
}

func New(opts Options) *Smoother {
	opts.Verify()
	s := &Smoother{
		spring: harmonica.NewSpring(harmonica.FPS(opts.FPS), opts.Frequency, opts.Damping),
		eps:    opts.Epsilon,
	}
	s.scale.jump(BaseScale)
	return s
}

func (s *Smoother) SetTarget(snap transform.Snapshot) {
	s.x.retarget(snap.Offset.X)
	s.y.retarget(snap.Offset.Y)
	s.zoom.retarget(snap.Zoom)
	s.fx.retarget(snap.Focal.X)
	s.fy.retarget(snap.Focal.Y)
	s.scale.retarget(BaseScale)
}

// Jump places every channel on its target without animating.
func (s *Smoother) Jump(snap transform.Snapshot) {
	s.x.jump(snap.Offset.X)
	s.y.jump(snap.Offset.Y)
	s.zoom.jump(snap.Zoom)
	s.fx.jump(snap.Focal.X)
	s.fy.jump(snap.Focal.Y)
	s.scale.jump(BaseScale)
}

func (s *Smoother) Tick() Frame {
	for _, c := range s.channels() {
		c.step(s.spring, s.eps)
	}
	return s.Current()
}

func (s *Smoother) Current() Frame {
	return Frame{
		TranslateX: s.x.pos,
		TranslateY: s.y.pos,
		Scale:      s.scale.pos + s.zoom.pos,
		OriginX:    s.fx.pos,
		OriginY:    s.fy.pos,
	}
}

func (s *Smoother) Settled() bool {
	for _, c := range s.channels() {
		if !c.settled {
			return false
		}
	}
	return true
}

func (s *Smoother) channels() [6]*channel {
	return [6]*channel{&s.x, &s.y, &s.scale, &s.zoom, &s.fx, &s.fy}
}
