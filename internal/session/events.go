package session

import (
	"fmt"

	"svw.info/isopuzzle/internal/domain"
)

// Handle applies one input event. Once a reset or level change is pending
// the rest of the frame's events are dropped, except Quit. The returned
// error only ever wraps domain.ErrInvalidEventTarget and is meant for logs.
func (s *Session) Handle(ev domain.Event) error {
	if ev.Kind == domain.QuitEvent {
		s.command = domain.Quit
		return nil
	}
	if s.command != domain.CommandNone {
		return nil
	}

	switch ev.Kind {
	case domain.PointerDown:
		s.pointerDown(ev.Point())
	case domain.PointerMove:
		s.UpdateDrag(ev.Point())
	case domain.PointerUp:
		s.EndDrag(ev.Point())
	case domain.ActivateControl:
		return s.Activate(ev.Control)
	default:
		return fmt.Errorf("event kind %v: %w", ev.Kind, domain.ErrInvalidEventTarget)
	}
	return nil
}

// pointerDown gives buttons precedence over node picking, and only when the
// button is usable.
func (s *Session) pointerDown(p domain.Point) {
	if r, _ := s.params.ControlRect(domain.ShowAnswer); r.Contains(p) && !s.answered {
		s.ShowAnswer()
		return
	}
	if r, _ := s.params.ControlRect(domain.NextLevel); r.Contains(p) && s.NextLevelEnabled() {
		s.RequestNextLevel()
		return
	}
	s.BeginDrag(p)
}

// Activate runs a control by id, as a keyboard shortcut or a renderer-side
// hit test would.
func (s *Session) Activate(c domain.Control) error {
	switch c {
	case domain.ShowAnswer:
		s.ShowAnswer()
	case domain.NextLevel:
		s.RequestNextLevel()
	case domain.Reset:
		s.Reset()
	default:
		return fmt.Errorf("control %v: %w", c, domain.ErrInvalidEventTarget)
	}
	return nil
}

// Reset asks the level progression to rebuild this level from scratch.
func (s *Session) Reset() {
	if s.command == domain.CommandNone {
		s.command = domain.ResetLevel
	}
}

// RequestNextLevel asks for the next level when the control is enabled.
func (s *Session) RequestNextLevel() bool {
	if !s.NextLevelEnabled() || s.command != domain.CommandNone {
		return false
	}
	s.command = domain.AdvanceLevel
	return true
}

// Command returns the pending command without clearing it.
func (s *Session) Command() domain.Command { return s.command }

// TakeCommand returns the pending command and clears it.
func (s *Session) TakeCommand() domain.Command {
	c := s.command
	s.command = domain.CommandNone
	return c
}
