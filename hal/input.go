package hal

import (
	"math"

	"zemljevid/viewer/gesture"
	"zemljevid/viewer/transform"
	"zemljevid/viewer/widget"
)

// ctrlWheelSpread is the pinch spread of one Ctrl+wheel notch, the way
// trackpad pinches arrive on desktops.
const ctrlWheelSpread = 0.5

type touchPoint struct {
	id   int
	x, y float64
}

// inputFrame is one frame of sampled raw input in page coordinates.
type inputFrame struct {
	cursorX, cursorY float64
	leftPressed      bool // went down this frame
	leftDown         bool
	wheelX, wheelY   float64
	ctrl             bool
	reset            bool
	touches          []touchPoint
}

// recognizer turns sampled input into viewer events. Gestures only start
// inside the viewport but keep tracking once started.
type recognizer struct {
	wheelLine float64

	dragging     bool
	lastX, lastY float64

	wheeling       bool
	wheelX, wheelY float64

	touching       bool
	touchID        int
	touchX, touchY float64

	pinching       bool
	prevDist       float64
	pinchX, pinchY float64
}

func inside(r transform.Rect, x, y float64) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.Width && y < r.Y+r.Height
}

func (r *recognizer) update(in inputFrame, viewport transform.Rect, dispatch func(widget.Event) bool) {
	if in.reset {
		dispatch(widget.Event{Kind: widget.KindReset})
	}
	r.mouse(in, viewport, dispatch)
	r.wheel(in, viewport, dispatch)
	r.touch(in, viewport, dispatch)
}

func (r *recognizer) mouse(in inputFrame, viewport transform.Rect, dispatch func(widget.Event) bool) {
	if in.leftPressed && inside(viewport, in.cursorX, in.cursorY) {
		r.dragging = true
		r.lastX, r.lastY = in.cursorX, in.cursorY
	}
	if !r.dragging {
		return
	}
	if !in.leftDown {
		r.dragging = false
		return
	}
	dx, dy := in.cursorX-r.lastX, in.cursorY-r.lastY
	if dx == 0 && dy == 0 {
		return
	}
	r.lastX, r.lastY = in.cursorX, in.cursorY
	dispatch(widget.Event{Kind: widget.KindDrag, Drag: gesture.Drag{DX: dx, DY: dy}})
}

// wheel emits start and move events while notches arrive, and a terminal
// event on the first quiet frame.
func (r *recognizer) wheel(in inputFrame, viewport transform.Rect, dispatch func(widget.Event) bool) {
	if in.wheelX == 0 && in.wheelY == 0 {
		if r.wheeling {
			r.wheeling = false
			dispatch(widget.Event{Kind: widget.KindWheel, Wheel: gesture.Wheel{
				PageX: r.wheelX, PageY: r.wheelY, Phase: gesture.PhaseLast,
			}})
		}
		return
	}
	if !r.wheeling && !inside(viewport, in.cursorX, in.cursorY) {
		return
	}

	phase := gesture.PhaseMove
	if !r.wheeling {
		phase = gesture.PhaseStart
	}
	r.wheeling = true
	r.wheelX, r.wheelY = in.cursorX, in.cursorY

	if in.ctrl {
		dispatch(widget.Event{Kind: widget.KindPinch, Pinch: gesture.Pinch{
			Spread: in.wheelY * ctrlWheelSpread, PageX: in.cursorX, PageY: in.cursorY, Phase: phase,
		}})
		return
	}
	// Wheel up scrolls content down, as in a browser.
	dispatch(widget.Event{Kind: widget.KindWheel, Wheel: gesture.Wheel{
		DX:    -in.wheelX * r.wheelLine,
		DY:    -in.wheelY * r.wheelLine,
		PageX: in.cursorX,
		PageY: in.cursorY,
		Phase: phase,
	}})
}

func (r *recognizer) touch(in inputFrame, viewport transform.Rect, dispatch func(widget.Event) bool) {
	switch len(in.touches) {
	case 1:
		r.endPinch(dispatch)
		t := in.touches[0]
		if r.touching && r.touchID == t.id {
			if dx, dy := t.x-r.touchX, t.y-r.touchY; dx != 0 || dy != 0 {
				dispatch(widget.Event{Kind: widget.KindDrag, Drag: gesture.Drag{DX: dx, DY: dy}})
			}
		} else if !inside(viewport, t.x, t.y) {
			r.touching = false
			return
		}
		r.touching = true
		r.touchID = t.id
		r.touchX, r.touchY = t.x, t.y
	case 2:
		r.touching = false
		r.pinch(in.touches[0], in.touches[1], viewport, dispatch)
	default:
		r.touching = false
		r.endPinch(dispatch)
	}
}

// pinch reports the relative change in finger distance since the previous
// frame, centred between the fingers.
func (r *recognizer) pinch(a, b touchPoint, viewport transform.Rect, dispatch func(widget.Event) bool) {
	cx, cy := (a.x+b.x)/2, (a.y+b.y)/2
	dist := math.Hypot(b.x-a.x, b.y-a.y)

	if !r.pinching {
		if !inside(viewport, cx, cy) {
			return
		}
		r.pinching = true
		r.prevDist = dist
		r.pinchX, r.pinchY = cx, cy
		dispatch(widget.Event{Kind: widget.KindPinch, Pinch: gesture.Pinch{
			PageX: cx, PageY: cy, Phase: gesture.PhaseStart,
		}})
		return
	}

	var spread float64
	if r.prevDist > 0 {
		spread = dist/r.prevDist - 1
	}
	r.prevDist = dist
	r.pinchX, r.pinchY = cx, cy
	dispatch(widget.Event{Kind: widget.KindPinch, Pinch: gesture.Pinch{
		Spread: spread, PageX: cx, PageY: cy, Phase: gesture.PhaseMove,
	}})
}

func (r *recognizer) endPinch(dispatch func(widget.Event) bool) {
	if !r.pinching {
		return
	}
	r.pinching = false
	dispatch(widget.Event{Kind: widget.KindPinch, Pinch: gesture.Pinch{
		PageX: r.pinchX, PageY: r.pinchY, Phase: gesture.PhaseLast,
	}})
}
