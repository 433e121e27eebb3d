package session

import "svw.info/isopuzzle/internal/domain"

// Snapshot copies the renderable state. The result shares nothing with the
// session.
func (s *Session) Snapshot() domain.Snapshot {
	n := len(s.state)
	snap := domain.Snapshot{
		SessionID:        s.id,
		Level:            s.level,
		NodeCount:        n,
		Edges:            s.graph.Edges(),
		ReferencePos:     make([]domain.NodePoint, n),
		DropPos:          make([]domain.NodePoint, n),
		Nodes:            make([]domain.NodeView, n),
		Dragging:         s.dragging,
		Phase:            s.Phase(),
		Answered:         s.answered,
		Revealed:         s.revealed,
		Score:            s.score,
		ElapsedSeconds:   s.ElapsedSeconds(),
		NextLevelEnabled: s.NextLevelEnabled(),
		NodeRadius:       s.params.NodeRadius,
	}
	for i := 0; i < n; i++ {
		id := domain.NodeID(i)
		ref, drop := s.reference[id], s.target(id)
		snap.ReferencePos[i] = domain.NodePoint{ID: id, X: ref.X, Y: ref.Y}
		snap.DropPos[i] = domain.NodePoint{ID: id, X: drop.X, Y: drop.Y}
		snap.Nodes[i] = domain.NodeView{ID: id, X: s.pos[i].X, Y: s.pos[i].Y, State: s.state[i]}
	}
	for _, c := range []domain.Control{domain.ShowAnswer, domain.NextLevel} {
		r, _ := s.params.ControlRect(c)
		enabled := !s.answered
		if c == domain.NextLevel {
			enabled = snap.NextLevelEnabled
		}
		snap.Controls = append(snap.Controls, domain.ControlView{Control: c, Rect: r, Enabled: enabled})
	}
	return snap
}
