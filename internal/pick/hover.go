package pick

import "github.com/san-kum/orrery/internal/orbit"

type EventKind int

const (
	Enter EventKind = iota
	Exit
)

func (k EventKind) String() string {
	if k == Exit {
		return "exit"
	}
	return "enter"
}

type Event struct {
	Kind EventKind
	ID   orbit.ID
}

// Hover holds at most one hovered body.
type Hover struct {
	id     orbit.ID
	active bool
}

func (h *Hover) Current() (orbit.ID, bool) { return h.id, h.active }

// Resolve records the latest pick result and returns the transitions it
// causes: Exit for the previous body, then Enter for the new one. Repeating
// the same result yields no events.
func (h *Hover) Resolve(id orbit.ID, hit bool) []Event {
	switch {
	case hit && h.active && h.id == id:
		return nil
	case hit:
		var evs []Event
		if h.active {
			evs = append(evs, Event{Kind: Exit, ID: h.id})
		}
		h.id, h.active = id, true
		return append(evs, Event{Kind: Enter, ID: id})
	case h.active:
		prev := h.id
		h.active = false
		return []Event{{Kind: Exit, ID: prev}}
	}
	return nil
}

// Clear drops the hover, returning the Exit event if one was active.
func (h *Hover) Clear() []Event { return h.Resolve(0, false) }
