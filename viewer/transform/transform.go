// Package transform owns the pan offset, zoom level and focal point of one
// mounted viewer.
//
// A State has a single writer (the gesture interpreter) and is not safe for
// concurrent use; all input and animation run on the same loop.
package transform

import "math"

const (
	DefaultMinZoom  = 0
	DefaultMaxZoom  = 5
	DefaultZoomStep = 0.5
)

// Point is a 2D coordinate in viewport pixels.
type Point struct {
	X, Y float64
}

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Rect is a bounding box in page coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Origin() Point { return Point{X: r.X, Y: r.Y} }

// Limits bounds the zoom level.
type Limits struct {
	Min  float64
	Max  float64
	Step float64
}

func DefaultLimits() Limits {
	return Limits{Min: DefaultMinZoom, Max: DefaultMaxZoom, Step: DefaultZoomStep}
}

// Verify replaces unusable limits with defaults.
func (l *Limits) Verify() {
	if !finite(l.Min) || !finite(l.Max) || l.Max < l.Min {
		l.Min = DefaultMinZoom
		l.Max = DefaultMaxZoom
	}
	if !finite(l.Step) || l.Step <= 0 {
		l.Step = DefaultZoomStep
	}
}

func (l Limits) Clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// Snapshot is a value copy of a State.
type Snapshot struct {
	Offset    Point
	Zoom      float64
	Focal     Point
	Committed float64
}

type State struct {
	limits    Limits
	offset    Point
	zoom      float64
	focal     Point
	committed float64
}

// New returns a State with zero offset and the zoom seeded from the last
// committed value of a previous session.
func New(limits Limits, seed float64) *State {
	limits.Verify()
	if !finite(seed) {
		seed = limits.Min
	}
	z := limits.Clamp(seed)
	return &State{limits: limits, zoom: z, committed: z}
}

func (s *State) Limits() Limits { return s.limits }

func (s *State) Zoom() float64 { return s.zoom }

// ApplyPan moves the offset by (dx, dy). Pan is unbounded.
func (s *State) ApplyPan(dx, dy float64) {
	if !finite(dx) || !finite(dy) {
		return
	}
	s.offset.X += dx
	s.offset.Y += dy
}

// ApplyZoomDelta adds delta to the zoom level, clamped to the limits. It
// reports false and leaves the state untouched when the zoom is already at
// the bound the delta points at.
func (s *State) ApplyZoomDelta(delta float64, focal Point) bool {
	if !finite(delta) || !finitePoint(focal) {
		return false
	}
	z := s.limits.Clamp(s.zoom + delta)
	if z == s.zoom {
		return false
	}
	s.commit(z, focal)
	return true
}

// ApplyZoomAbsolute sets the zoom level to v, clamped to the limits.
func (s *State) ApplyZoomAbsolute(v float64, focal Point) bool {
	if math.IsNaN(v) || !finitePoint(focal) {
		return false
	}
	s.commit(s.limits.Clamp(v), focal)
	return true
}

// Reset returns to the initial view: no pan, minimum zoom.
func (s *State) Reset() {
	s.offset = Point{}
	s.focal = Point{}
	s.zoom = s.limits.Min
	s.committed = s.zoom
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Offset:    s.offset,
		Zoom:      s.zoom,
		Focal:     s.focal,
		Committed: s.committed,
	}
}

func (s *State) commit(z float64, focal Point) {
	s.zoom = z
	s.focal = focal
	s.committed = z
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finitePoint(p Point) bool { return finite(p.X) && finite(p.Y) }
