// Package gesture turns drag, wheel and pinch input into transform mutations.
package gesture

import "zemljevid/viewer/transform"

const (
	DefaultDragMultiplier   = 1
	DefaultPinchSensitivity = 0.5
)

// Phase marks where an event sits inside its gesture.
type Phase uint8

const (
	PhaseStart Phase = iota + 1
	PhaseMove
	PhaseLast
)

func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseLast:
		return "last"
	default:
		return "unknown"
	}
}

// Default records whether a handler asked the host to skip its native
// action for an event (page scroll, selection, browser zoom).
type Default struct {
	prevented bool
}

func (d *Default) Prevent() {
	if d != nil {
		d.prevented = true
	}
}

func (d *Default) Prevented() bool { return d != nil && d.prevented }

// Drag is one pointer movement delta while a button or finger is down.
type Drag struct {
	DX, DY  float64
	Default *Default
}

// Wheel is one wheel delta. PageX/PageY is the pointer position.
type Wheel struct {
	DX, DY       float64
	PageX, PageY float64
	Phase        Phase
	Default      *Default
}

// Pinch is one two-contact update. Spread is the relative change of the
// contact distance since the previous update.
type Pinch struct {
	Spread       float64
	PageX, PageY float64
	Phase        Phase
	Default      *Default
}

// Geometry reports the viewport bounding box, or false when it has not
// been sampled.
type Geometry interface {
	Bounds() (transform.Rect, bool)
}

type Options struct {
	DragMultiplier   float64
	PinchSensitivity float64
}

func DefaultOptions() Options {
	return Options{
		DragMultiplier:   DefaultDragMultiplier,
		PinchSensitivity: DefaultPinchSensitivity,
	}
}

// Result tells the caller which parts of the state moved.
type Result struct {
	Panned bool
	Zoomed bool
}

func (r Result) Changed() bool { return r.Panned || r.Zoomed }

type Interpreter struct {
	state *transform.State
	geo   Geometry
	opts  Options
}

func New(state *transform.State, geo Geometry, opts Options) *Interpreter {
	return &Interpreter{state: state, geo: geo, opts: opts}
}

func (in *Interpreter) Drag(ev Drag) Result {
	ev.Default.Prevent()
	dx := ev.DX * in.opts.DragMultiplier
	dy := ev.DY * in.opts.DragMultiplier
	if dx == 0 && dy == 0 {
		return Result{}
	}
	in.state.ApplyPan(dx, dy)
	return Result{Panned: true}
}

// Wheel pans horizontally and steps the zoom vertically. The terminal event
// of a wheel gesture only pans; its pointer position is not trusted.
func (in *Interpreter) Wheel(ev Wheel) Result {
	ev.Default.Prevent()

	var res Result
	if ev.DX != 0 {
		in.state.ApplyPan(-ev.DX, 0)
		res.Panned = true
	}
	if ev.Phase == PhaseLast || ev.DY == 0 {
		return res
	}

	focal, ok := in.focal(ev.PageX, ev.PageY)
	if !ok {
		return res
	}
	step := in.state.Limits().Step
	if ev.DY > 0 {
		res.Zoomed = in.state.ApplyZoomDelta(-step, focal)
	} else {
		res.Zoomed = in.state.ApplyZoomDelta(step, focal)
	}
	return res
}

func (in *Interpreter) Pinch(ev Pinch) Result {
	ev.Default.Prevent()

	focal, ok := in.focal(ev.PageX, ev.PageY)
	if !ok {
		return Result{}
	}
	z := ev.Spread*in.opts.PinchSensitivity + in.state.Zoom()
	return Result{Zoomed: in.state.ApplyZoomAbsolute(z, focal)}
}

func (in *Interpreter) focal(pageX, pageY float64) (transform.Point, bool) {
	if in.geo == nil {
		return transform.Point{}, false
	}
	r, ok := in.geo.Bounds()
	if !ok {
		return transform.Point{}, false
	}
	return transform.Point{X: pageX, Y: pageY}.Sub(r.Origin()), true
}
