package widget

import (
	"strings"
	"testing"

	"zemljevid/viewer/gesture"
	"zemljevid/viewer/motion"
	"zemljevid/viewer/transform"
)

type fakeHost struct {
	Registry
	rect       transform.Rect
	ok         bool
	reads      int
	suppressed int
}

func (h *fakeHost) Bounds() (transform.Rect, bool) {
	h.reads++
	return h.rect, h.ok
}

func (h *fakeHost) SuppressNativeGestures() func() {
	h.suppressed++
	released := false
	return func() {
		if !released {
			released = true
			h.suppressed--
		}
	}
}

type fakeSurface struct {
	frames []motion.Frame
}

func (s *fakeSurface) SetTransform(f motion.Frame) { s.frames = append(s.frames, f) }

type lines []string

func (l *lines) WriteLineString(s string) { *l = append(*l, s) }

func newHost() *fakeHost {
	return &fakeHost{rect: transform.Rect{X: 100, Y: 50, Width: 800, Height: 600}, ok: true}
}

func TestMountAttachesListenersAndSuppresses(t *testing.T) {
	h := newHost()
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if got := h.Len(); got != 4 {
		t.Fatalf("listeners = %d, want 4", got)
	}
	if h.suppressed != 1 {
		t.Fatalf("suppressed = %d, want 1", h.suppressed)
	}
	if r, ok := v.CachedBounds(); !ok || r != h.rect {
		t.Fatalf("CachedBounds() = %+v, %v; want %+v, true", r, ok, h.rect)
	}
}

func TestMountTwiceFails(t *testing.T) {
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(newHost()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if err := v.Mount(newHost()); err != ErrMounted {
		t.Fatalf("second Mount() error = %v, want ErrMounted", err)
	}
	if err := New(DefaultConfig(), nil, nil).Mount(nil); err != ErrNilHost {
		t.Fatalf("Mount(nil) error = %v, want ErrNilHost", err)
	}
}

func TestEventsMutateStateAndPreventDefault(t *testing.T) {
	h := newHost()
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if !h.Dispatch(Event{Kind: KindDrag, Drag: gesture.Drag{DX: 10, DY: -5}}) {
		t.Fatalf("drag default not prevented")
	}
	h.Dispatch(Event{Kind: KindDrag, Drag: gesture.Drag{DX: -3, DY: 2}})
	h.Dispatch(Event{Kind: KindWheel, Wheel: gesture.Wheel{DY: -1, PageX: 150, PageY: 70, Phase: gesture.PhaseMove}})

	snap, ok := v.State()
	if !ok {
		t.Fatalf("State() ok = false")
	}
	if snap.Offset != (transform.Point{X: 7, Y: -3}) {
		t.Fatalf("offset = %+v, want {7 -3}", snap.Offset)
	}
	if snap.Zoom != 0.5 {
		t.Fatalf("zoom = %v, want 0.5", snap.Zoom)
	}
	if snap.Focal != (transform.Point{X: 50, Y: 20}) {
		t.Fatalf("focal = %+v, want {50 20}", snap.Focal)
	}
}

func TestWheelResamplesGeometry(t *testing.T) {
	h := newHost()
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	h.rect.X = 0
	h.Dispatch(Event{Kind: KindWheel, Wheel: gesture.Wheel{DY: -1, PageX: 30, PageY: 60, Phase: gesture.PhaseMove}})

	snap, _ := v.State()
	if snap.Focal != (transform.Point{X: 30, Y: 10}) {
		t.Fatalf("focal = %+v, want {30 10} from the fresh box", snap.Focal)
	}
	if r, _ := v.CachedBounds(); r.X != 0 {
		t.Fatalf("cached X = %v, want 0", r.X)
	}
}

func TestMissingGeometryDropsZoom(t *testing.T) {
	h := newHost()
	h.ok = false
	var log lines
	v := New(DefaultConfig(), nil, &log)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	h.Dispatch(Event{Kind: KindPinch, Pinch: gesture.Pinch{Spread: 2, Phase: gesture.PhaseMove}})
	h.Dispatch(Event{Kind: KindWheel, Wheel: gesture.Wheel{DY: -1, Phase: gesture.PhaseMove}})

	if snap, _ := v.State(); snap.Zoom != 0 {
		t.Fatalf("zoom = %v, want 0", snap.Zoom)
	}
	if _, ok := v.CachedBounds(); ok {
		t.Fatalf("CachedBounds() ok = true without geometry")
	}
	if len(log) == 0 || !strings.Contains(log[0], "without geometry") {
		t.Fatalf("log = %q, want a missing-geometry line", log)
	}
}

func TestUnmountDetachesEverything(t *testing.T) {
	h := newHost()
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	h.Dispatch(Event{Kind: KindPinch, Pinch: gesture.Pinch{Spread: 4, PageX: 100, PageY: 50, Phase: gesture.PhaseMove}})
	before, _ := v.State()

	v.Unmount()
	if h.Len() != 0 {
		t.Fatalf("listeners after unmount = %d, want 0", h.Len())
	}
	if h.suppressed != 0 {
		t.Fatalf("suppressed after unmount = %d, want 0", h.suppressed)
	}

	reads := h.reads
	if h.Dispatch(Event{Kind: KindDrag, Drag: gesture.Drag{DX: 5}}) {
		t.Fatalf("drag after unmount was handled")
	}
	h.Dispatch(Event{Kind: KindWheel, Wheel: gesture.Wheel{DY: -1, Phase: gesture.PhaseMove}})
	if h.reads != reads {
		t.Fatalf("geometry queried after unmount")
	}
	if _, ok := v.State(); ok {
		t.Fatalf("State() ok = true after unmount")
	}
	if _, ok := v.Frame(); ok {
		t.Fatalf("Frame() ok = true after unmount")
	}

	if err := v.Mount(h); err != nil {
		t.Fatalf("remount error = %v", err)
	}
	after, _ := v.State()
	if after.Zoom != before.Zoom {
		t.Fatalf("remount zoom = %v, want last committed %v", after.Zoom, before.Zoom)
	}
	if after.Offset != (transform.Point{}) {
		t.Fatalf("remount offset = %+v, want zero", after.Offset)
	}
}

func TestFrameFeedsSurface(t *testing.T) {
	h := newHost()
	s := &fakeSurface{}
	v := New(DefaultConfig(), s, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	h.Dispatch(Event{Kind: KindDrag, Drag: gesture.Drag{DX: 40}})

	for i := 0; i < 1000 && !v.Settled(); i++ {
		v.Frame()
	}
	if !v.Settled() {
		t.Fatalf("viewer did not settle")
	}
	last := s.frames[len(s.frames)-1]
	if last.TranslateX != 40 || last.Scale != 1 {
		t.Fatalf("last frame = %+v, want x 40 scale 1", last)
	}
}

func TestResetEvent(t *testing.T) {
	h := newHost()
	v := New(DefaultConfig(), nil, nil)
	if err := v.Mount(h); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	h.Dispatch(Event{Kind: KindDrag, Drag: gesture.Drag{DX: 9, DY: 9}})
	h.Dispatch(Event{Kind: KindReset})
	if snap, _ := v.State(); snap != (transform.Snapshot{}) {
		t.Fatalf("snapshot after reset = %+v, want zero", snap)
	}
}

func TestRegistryHandleRemove(t *testing.T) {
	var r Registry
	calls := 0
	h1 := r.Listen(KindDrag, func(Event) { calls++ })
	r.Listen(KindDrag, func(Event) { calls += 10 })

	r.Dispatch(Event{Kind: KindDrag})
	h1.Remove()
	h1.Remove()
	r.Dispatch(Event{Kind: KindDrag})

	if calls != 21 {
		t.Fatalf("calls = %d, want 21", calls)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}
}
