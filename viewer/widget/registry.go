package widget

import "zemljevid/viewer/gesture"

// Kind selects an input channel.
type Kind uint8

const (
	KindDrag Kind = iota + 1
	KindWheel
	KindPinch
	KindReset
)

func (k Kind) String() string {
	switch k {
	case KindDrag:
		return "drag"
	case KindWheel:
		return "wheel"
	case KindPinch:
		return "pinch"
	case KindReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event is one raw input event. Only the field matching Kind is meaningful.
type Event struct {
	Kind  Kind
	Drag  gesture.Drag
	Wheel gesture.Wheel
	Pinch gesture.Pinch
}

type Handler func(Event)

type entry struct {
	id uint32
	fn Handler
}

// Registry is a listener table hosts embed to implement Listen.
type Registry struct {
	handlers map[Kind][]entry
	nextID   uint32
}

// Handle removes one listener.
type Handle struct {
	id   uint32
	kind Kind
	reg  *Registry
}

// Remove detaches the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.reg == nil {
		return
	}
	list := h.reg.handlers[h.kind]
	for i := range list {
		if list[i].id == h.id {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = entry{}
			h.reg.handlers[h.kind] = list[:len(list)-1]
			return
		}
	}
}

func (r *Registry) Listen(kind Kind, fn Handler) Handle {
	if r.handlers == nil {
		r.handlers = make(map[Kind][]entry)
	}
	r.nextID++
	r.handlers[kind] = append(r.handlers[kind], entry{id: r.nextID, fn: fn})
	return Handle{id: r.nextID, kind: kind, reg: r}
}

// Dispatch delivers ev to every listener of its kind and reports whether a
// listener prevented the default action.
func (r *Registry) Dispatch(ev Event) bool {
	d := &gesture.Default{}
	ev.Drag.Default = d
	ev.Wheel.Default = d
	ev.Pinch.Default = d

	list := r.handlers[ev.Kind]
	if len(list) == 0 {
		return false
	}
	// Handlers may detach themselves.
	snapshot := append([]entry(nil), list...)
	for _, e := range snapshot {
		e.fn(ev)
	}
	return d.Prevented()
}

// Len reports the number of attached listeners.
func (r *Registry) Len() int {
	n := 0
	for _, list := range r.handlers {
		n += len(list)
	}
	return n
}
