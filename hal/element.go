package hal

import (
	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
	"zemljevid/viewer/widget"
)

// Element is the panned box inside the viewport. It is sized to the image
// and sits at the viewport origin moved by the rendered translation, so its
// page bounds follow the image on screen.
type Element struct {
	origin        transform.Point
	width, height float64
	laidOut       bool
	frame         motion.Frame
	next          widget.Surface
}

// NewElement returns an element for an image of the given size. Frames are
// forwarded to next when it is non-nil.
func NewElement(width, height int, next widget.Surface) *Element {
	return &Element{
		width:  float64(width),
		height: float64(height),
		frame:  motion.Frame{Scale: motion.BaseScale},
		next:   next,
	}
}

// Layout places the viewport at origin in page coordinates.
func (e *Element) Layout(origin transform.Point) {
	e.origin = origin
	e.laidOut = true
}

// Invalidate drops the layout; Bounds fails until the next Layout.
func (e *Element) Invalidate() { e.laidOut = false }

func (e *Element) Origin() transform.Point { return e.origin }

func (e *Element) SetTransform(f motion.Frame) {
	e.frame = f
	if e.next != nil {
		e.next.SetTransform(f)
	}
}

func (e *Element) Frame() motion.Frame { return e.frame }

func (e *Element) Bounds() (transform.Rect, bool) {
	if !e.laidOut {
		return transform.Rect{}, false
	}
	return transform.Rect{
		X:      e.origin.X + e.frame.TranslateX,
		Y:      e.origin.Y + e.frame.TranslateY,
		Width:  e.width,
		Height: e.height,
	}, true
}
