package choropleth

import (
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// Point is a pointer position in client coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Hover is the transient tooltip state; it follows the pointer.
type Hover struct {
	Feature string `json:"feature"`
	Pointer Point  `json:"pointer"`
}

// Selection is the persistent detail-panel state, anchored where the
// feature was clicked.
type Selection struct {
	Feature string `json:"feature"`
	Anchor  Point  `json:"anchor"`
}

// State is the map's interaction state. At most one feature is hovered and
// at most one is selected.
type State struct {
	Hovered  *Hover     `json:"hovered"`
	Selected *Selection `json:"selected"`
}

// EventKind enumerates pointer and dismissal events.
type EventKind string

const (
	EventPointerEnter EventKind = "pointer_enter"
	EventPointerMove  EventKind = "pointer_move"
	EventPointerLeave EventKind = "pointer_leave"
	EventClick        EventKind = "click"
	EventOutsideClick EventKind = "outside_click"
	EventScroll       EventKind = "scroll"
	EventClose        EventKind = "close"
)

// Event is one input to Reduce. Feature is required for enter, leave and
// click.
type Event struct {
	Kind    EventKind `json:"kind"`
	Feature string    `json:"feature,omitempty"`
	Pointer Point     `json:"pointer"`
}

// Reduce returns the state that follows s after e. s is not modified. An
// unknown event kind, or a feature event without a feature, returns s
// unchanged with an error.
func Reduce(s State, e Event) (State, error) {
	switch e.Kind {
	case EventPointerEnter:
		if e.Feature == "" {
			return s, missingFeature(e.Kind)
		}
		s.Hovered = &Hover{Feature: e.Feature, Pointer: e.Pointer}
	case EventPointerMove:
		if s.Hovered != nil {
			h := *s.Hovered
			h.Pointer = e.Pointer
			s.Hovered = &h
		}
	case EventPointerLeave:
		if e.Feature == "" {
			return s, missingFeature(e.Kind)
		}
		if s.Hovered != nil && s.Hovered.Feature == e.Feature {
			s.Hovered = nil
		}
	case EventClick:
		if e.Feature == "" {
			return s, missingFeature(e.Kind)
		}
		s.Selected = &Selection{Feature: e.Feature, Anchor: e.Pointer}
	case EventOutsideClick, EventScroll, EventClose:
		s.Selected = nil
	default:
		return s, errors.New(errors.ErrCodeInvalidEvent, "unknown interaction event").WithDetail(string(e.Kind))
	}
	return s, nil
}

func missingFeature(kind EventKind) error {
	return errors.New(errors.ErrCodeInvalidEvent, "event requires a feature").WithDetail(string(kind))
}

// FeatureState is the visual state of a single feature.
type FeatureState string

const (
	FeatureDefault  FeatureState = "default"
	FeatureHovered  FeatureState = "hovered"
	FeatureSelected FeatureState = "selected"
)

// VisualState derives feature's state; selection takes precedence over hover.
func (s State) VisualState(feature string) FeatureState {
	if s.Selected != nil && s.Selected.Feature == feature {
		return FeatureSelected
	}
	if s.Hovered != nil && s.Hovered.Feature == feature {
		return FeatureHovered
	}
	return FeatureDefault
}

//Personal.AI order the ending
