// Package script replays recorded gestures from a TOML file. It drives the
// headless host and demo playback in the window.
package script

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"zemljevid/viewer/gesture"
	"zemljevid/viewer/widget"
)

const (
	KindDrag    = "drag"
	KindWheel   = "wheel"
	KindPinch   = "pinch"
	KindReset   = "reset"
	KindWait    = "wait"
	KindMount   = "mount"
	KindUnmount = "unmount"
)

// Event is one scripted step. X/Y are page coordinates.
type Event struct {
	Kind   string  `toml:"kind"`
	DX     float64 `toml:"dx"`
	DY     float64 `toml:"dy"`
	Spread float64 `toml:"spread"`
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Last   bool    `toml:"last"`
	Frames int     `toml:"frames"`
}

type Script struct {
	Events []Event `toml:"event"`
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	s, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return s, nil
}

func Parse(data string) (*Script, error) {
	var s Script
	if _, err := toml.Decode(data, &s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if len(s.Events) == 0 {
		return errors.New("no events")
	}
	for i, ev := range s.Events {
		switch ev.Kind {
		case KindDrag, KindWheel, KindPinch, KindReset, KindMount, KindUnmount:
		case KindWait:
			if ev.Frames <= 0 {
				return fmt.Errorf("event %d: wait needs frames > 0", i)
			}
		default:
			return fmt.Errorf("event %d: unknown kind %q", i, ev.Kind)
		}
	}
	return nil
}

// Target receives replayed events.
type Target interface {
	Dispatch(ev widget.Event) bool
	Mount() error
	Unmount()
}

// Player feeds a Script to a Target one frame at a time. Consecutive events
// are delivered in the same frame until a wait.
type Player struct {
	s    *Script
	next int
	wait int
}

func NewPlayer(s *Script) *Player {
	return &Player{s: s}
}

// Step delivers the events due this frame and reports whether the script
// has finished.
func (p *Player) Step(t Target) (bool, error) {
	if p.wait > 0 {
		p.wait--
		return false, nil
	}
	for p.next < len(p.s.Events) {
		ev := p.s.Events[p.next]
		p.next++
		if ev.Kind == KindWait {
			p.wait = ev.Frames - 1
			return false, nil
		}
		if err := deliver(t, ev); err != nil {
			return true, fmt.Errorf("script: event %d: %w", p.next-1, err)
		}
	}
	return p.wait == 0, nil
}

func (p *Player) Done() bool {
	return p.next >= len(p.s.Events) && p.wait == 0
}

func deliver(t Target, ev Event) error {
	phase := gesture.PhaseMove
	if ev.Last {
		phase = gesture.PhaseLast
	}
	switch ev.Kind {
	case KindDrag:
		t.Dispatch(widget.Event{Kind: widget.KindDrag, Drag: gesture.Drag{DX: ev.DX, DY: ev.DY}})
	case KindWheel:
		t.Dispatch(widget.Event{Kind: widget.KindWheel, Wheel: gesture.Wheel{
			DX: ev.DX, DY: ev.DY, PageX: ev.X, PageY: ev.Y, Phase: phase,
		}})
	case KindPinch:
		t.Dispatch(widget.Event{Kind: widget.KindPinch, Pinch: gesture.Pinch{
			Spread: ev.Spread, PageX: ev.X, PageY: ev.Y, Phase: phase,
		}})
	case KindReset:
		t.Dispatch(widget.Event{Kind: widget.KindReset})
	case KindMount:
		return t.Mount()
	case KindUnmount:
		t.Unmount()
	}
	return nil
}
