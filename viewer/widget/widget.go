// Package widget binds the gesture interpreter and motion smoother to a host
// viewport and a rendering surface.
package widget

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"zemljevid/viewer/gesture"
	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
)

var (
	ErrMounted = errors.New("widget: already mounted")
	ErrNilHost = errors.New("widget: nil host")
)

// Host is the page the viewer is mounted into.
type Host interface {
	// Bounds samples the viewport element's bounding box.
	Bounds() (transform.Rect, bool)
	Listen(kind Kind, fn Handler) Handle
	// SuppressNativeGestures stops the host from acting on multi-touch
	// gestures itself until release is called.
	SuppressNativeGestures() (release func())
}

// Surface receives the smoothed transform every frame.
type Surface interface {
	SetTransform(f motion.Frame)
}

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
}

type Config struct {
	Limits  transform.Limits
	Gesture gesture.Options
	Motion  motion.Options
}

func DefaultConfig() Config {
	return Config{
		Limits:  transform.DefaultLimits(),
		Gesture: gesture.DefaultOptions(),
		Motion:  motion.DefaultOptions(),
	}
}

type Viewer struct {
	id      string
	cfg     Config
	surface Surface
	log     Logger

	host     Host
	state    *transform.State
	interp   *gesture.Interpreter
	smoother *motion.Smoother
	handles  []Handle
	release  func()

	bounds     transform.Rect
	haveBounds bool

	// committed survives unmounts so a remount continues from the last zoom.
	committed float64
}

func New(cfg Config, surface Surface, log Logger) *Viewer {
	cfg.Limits.Verify()
	cfg.Motion.Verify()
	return &Viewer{
		id:        uuid.NewString(),
		cfg:       cfg,
		surface:   surface,
		log:       log,
		committed: cfg.Limits.Min,
	}
}

func (v *Viewer) ID() string { return v.id }

func (v *Viewer) Mounted() bool { return v.host != nil }

// Mount attaches the viewer to host. Gestures that need geometry are dropped
// until the host can report its bounds.
func (v *Viewer) Mount(host Host) error {
	if host == nil {
		return ErrNilHost
	}
	if v.host != nil {
		return ErrMounted
	}

	v.host = host
	v.state = transform.New(v.cfg.Limits, v.committed)
	v.interp = gesture.New(v.state, v, v.cfg.Gesture)
	v.smoother = motion.New(v.cfg.Motion)
	v.smoother.Jump(v.state.Snapshot())

	if _, ok := v.Bounds(); !ok {
		v.logf("viewer %s: mounted without geometry", v.id)
	}

	v.handles = append(v.handles,
		host.Listen(KindDrag, v.handle),
		host.Listen(KindWheel, v.handle),
		host.Listen(KindPinch, v.handle),
		host.Listen(KindReset, v.handle),
	)
	v.release = host.SuppressNativeGestures()

	v.logf("viewer %s: mounted zoom=%g", v.id, v.state.Zoom())
	return nil
}

// Unmount detaches every listener and drops the transform state. Events
// delivered afterwards change nothing.
func (v *Viewer) Unmount() {
	if v.host == nil {
		return
	}
	for _, h := range v.handles {
		h.Remove()
	}
	v.handles = nil
	if v.release != nil {
		v.release()
		v.release = nil
	}

	v.committed = v.state.Snapshot().Committed
	v.host = nil
	v.state = nil
	v.interp = nil
	v.bounds = transform.Rect{}
	v.haveBounds = false

	v.logf("viewer %s: unmounted zoom=%g", v.id, v.committed)
}

// Bounds re-samples the host geometry and refreshes the cache. A failed
// sample invalidates the cache.
func (v *Viewer) Bounds() (transform.Rect, bool) {
	if v.host == nil {
		return transform.Rect{}, false
	}
	r, ok := v.host.Bounds()
	if !ok {
		v.bounds = transform.Rect{}
		v.haveBounds = false
		return transform.Rect{}, false
	}
	v.bounds = r
	v.haveBounds = true
	return r, true
}

// CachedBounds returns the last sampled geometry without querying the host.
func (v *Viewer) CachedBounds() (transform.Rect, bool) {
	return v.bounds, v.haveBounds
}

// Frame advances the smoother one frame and hands the result to the surface.
func (v *Viewer) Frame() (motion.Frame, bool) {
	if v.host == nil {
		return motion.Frame{}, false
	}
	f := v.smoother.Tick()
	if v.surface != nil {
		v.surface.SetTransform(f)
	}
	return f, true
}

func (v *Viewer) Settled() bool {
	return v.smoother == nil || v.smoother.Settled()
}

func (v *Viewer) State() (transform.Snapshot, bool) {
	if v.state == nil {
		return transform.Snapshot{}, false
	}
	return v.state.Snapshot(), true
}

func (v *Viewer) handle(ev Event) {
	if v.state == nil {
		return
	}

	var res gesture.Result
	switch ev.Kind {
	case KindDrag:
		res = v.interp.Drag(ev.Drag)
	case KindWheel:
		res = v.interp.Wheel(ev.Wheel)
	case KindPinch:
		res = v.interp.Pinch(ev.Pinch)
	case KindReset:
		v.state.Reset()
		res = gesture.Result{Panned: true, Zoomed: true}
	}
	if res.Changed() {
		v.smoother.SetTarget(v.state.Snapshot())
	}
}

func (v *Viewer) logf(format string, args ...any) {
	if v.log == nil {
		return
	}
	v.log.WriteLineString(fmt.Sprintf(format, args...))
}
