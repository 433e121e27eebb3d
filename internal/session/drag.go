package session

import (
	"gonum.org/v1/gonum/spatial/r2"

	"svw.info/isopuzzle/internal/domain"
)

// BeginDrag picks the lowest-id Free node within NodeRadius of p. The offset
// between node and pointer is kept so the node does not jump.
func (s *Session) BeginDrag(p domain.Point) bool {
	if s.dragging != domain.NoNode {
		return false
	}
	for i, st := range s.state {
		if st != domain.Free {
			continue
		}
		if r2.Norm(r2.Sub(s.pos[i], p)) <= s.params.NodeRadius {
			s.dragging = domain.NodeID(i)
			s.state[i] = domain.Dragging
			s.offset = r2.Sub(s.pos[i], p)
			return true
		}
	}
	return false
}

// UpdateDrag moves the dragged node to p plus the recorded offset.
func (s *Session) UpdateDrag(p domain.Point) bool {
	if s.dragging == domain.NoNode {
		return false
	}
	s.pos[s.dragging] = r2.Add(p, s.offset)
	return true
}

// EndDrag releases the dragged node at p. Within Tolerance of its drop
// target it snaps exactly onto it and becomes Fixed; otherwise it stays where
// released and is Free again. It reports whether the node was fixed.
func (s *Session) EndDrag(p domain.Point) bool {
	if s.dragging == domain.NoNode {
		return false
	}
	id := s.dragging
	s.pos[id] = r2.Add(p, s.offset)
	s.dragging = domain.NoNode
	s.offset = domain.Point{}

	target := s.target(id)
	if r2.Norm(r2.Sub(s.pos[id], target)) <= s.params.Tolerance {
		s.pos[id] = target
		s.state[id] = domain.Fixed
		return true
	}
	s.state[id] = domain.Free
	return false
}
