package domain

import "fmt"

// NodeState is the interaction state of a draggable node.
type NodeState int

const (
	Free NodeState = iota
	Dragging
	Fixed // terminal for the rest of the level
)

var nodeStateNames = [...]string{"free", "dragging", "fixed"}

func (s NodeState) String() string {
	if s < 0 || int(s) >= len(nodeStateNames) {
		return fmt.Sprintf("NodeState(%d)", int(s))
	}
	return nodeStateNames[s]
}

func (s NodeState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *NodeState) UnmarshalText(b []byte) error {
	for i, name := range nodeStateNames {
		if name == string(b) {
			*s = NodeState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node state %q", b)
}

// Phase is the session-level phase. It only moves forward.
type Phase int

const (
	Playing Phase = iota
	Answered
)

func (p Phase) String() string {
	if p == Answered {
		return "answered"
	}
	return "playing"
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	switch string(b) {
	case "playing":
		*p = Playing
	case "answered":
		*p = Answered
	default:
		return fmt.Errorf("unknown phase %q", b)
	}
	return nil
}

// Control names an on-screen affordance.
type Control int

const (
	ControlNone Control = iota
	ShowAnswer
	NextLevel
	Reset
)

var controlNames = [...]string{"", "show_answer", "next_level", "reset"}

func (c Control) String() string {
	if c < 0 || int(c) >= len(controlNames) {
		return fmt.Sprintf("Control(%d)", int(c))
	}
	return controlNames[c]
}

func (c Control) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText accepts any name; unknown names decode to an out-of-range
// Control so the session can drop the event as an invalid target.
func (c *Control) UnmarshalText(b []byte) error {
	for i, name := range controlNames {
		if name == string(b) {
			*c = Control(i)
			return nil
		}
	}
	*c = Control(-1)
	return nil
}

// Command is a request raised by an event handler and consumed once per tick.
type Command int

const (
	CommandNone Command = iota
	ResetLevel
	AdvanceLevel
	Quit
)

func (c Command) String() string {
	switch c {
	case ResetLevel:
		return "reset_level"
	case AdvanceLevel:
		return "advance_level"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// EventKind labels a discrete input event.
type EventKind int

const (
	PointerDown EventKind = iota + 1
	PointerMove
	PointerUp
	ActivateControl
	QuitEvent
)

var eventKindNames = map[EventKind]string{
	PointerDown:     "pointer_down",
	PointerMove:     "pointer_move",
	PointerUp:       "pointer_up",
	ActivateControl: "control",
	QuitEvent:       "quit",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EventKind) UnmarshalText(b []byte) error {
	for kind, name := range eventKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}
