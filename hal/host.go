package hal

import (
	"fmt"
	"io"
	"sync"

	"zemljevid/viewer/transform"
	"zemljevid/viewer/widget"
)

// NewLogger returns a Logger writing to w.
func NewLogger(w io.Writer) Logger {
	return &hostLogger{w: w}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostBase carries what the window and headless hosts share: the listener
// registry, the viewport element and the native gesture suppression count.
type hostBase struct {
	widget.Registry

	elem       *Element
	log        Logger
	suppressed int
}

func (h *hostBase) Bounds() (transform.Rect, bool) { return h.elem.Bounds() }

func (h *hostBase) Surface() widget.Surface { return h.elem }

func (h *hostBase) Element() *Element { return h.elem }

func (h *hostBase) Logger() Logger { return h.log }

// SuppressNativeGestures stops the host's own handling of multi-touch until
// the returned release runs. Release is idempotent.
func (h *hostBase) SuppressNativeGestures() func() {
	h.suppressed++
	var once sync.Once
	return func() {
		once.Do(func() { h.suppressed-- })
	}
}

// NativeSuppressed reports whether any viewer holds the suppression.
func (h *hostBase) NativeSuppressed() bool { return h.suppressed > 0 }

// WindowConfig configures the desktop window host.
type WindowConfig struct {
	Width, Height int
	Title         string
	// Margin insets the viewport from the window edges.
	Margin int
	TPS    int
	// WheelLine is the pan distance in pixels of one wheel notch.
	WheelLine float64
}
