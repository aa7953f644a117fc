package hal

import (
	"errors"

	"zemljevid/viewer/widget"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrStop is returned by an app step to end the host loop cleanly.
var ErrStop = errors.New("hal: stop")

// Host is the page a viewer is mounted into: it reports the viewport
// element's geometry, delivers input events and displays frames.
type Host interface {
	widget.Host

	// Dispatch delivers ev to the listeners registered for its kind and
	// reports whether one of them prevented the default action.
	Dispatch(ev widget.Event) bool
	// Surface is the viewport element the smoothed transform is applied to.
	Surface() widget.Surface
	// SetHUD sets the overlay text shown with the next frame.
	SetHUD(lines []string)
	Logger() Logger
}
