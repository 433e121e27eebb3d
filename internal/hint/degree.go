package hint

import (
	"context"
	"fmt"

	"svw.info/isopuzzle/internal/domain"
)

// HighestDegree suggests the unplaced node with the most edges; it is the
// easiest node to recognise in the reference graph.
type HighestDegree struct{}

func NewHighestDegree() *HighestDegree { return &HighestDegree{} }

// Hint returns false when every node is already fixed.
func (h *HighestDegree) Hint(ctx context.Context, s domain.Snapshot) (domain.Hint, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Hint{}, false, err
	}
	degree := make(map[domain.NodeID]int, s.NodeCount)
	for _, e := range s.Edges {
		degree[e.U]++
		degree[e.V]++
	}

	best := domain.NoNode
	for _, n := range s.Nodes {
		if n.State == domain.Fixed {
			continue
		}
		if best == domain.NoNode || degree[n.ID] > degree[best] {
			best = n.ID
		}
	}
	if best == domain.NoNode {
		return domain.Hint{}, false, nil
	}

	from, ok := nodeView(s.Nodes, best)
	to, ok2 := nodePoint(s.DropPos, best)
	if !ok || !ok2 {
		return domain.Hint{}, false, fmt.Errorf("node %d: %w", best, domain.ErrInvalidEventTarget)
	}
	return domain.Hint{
		Message: fmt.Sprintf("Node with %d edges goes here", degree[best]),
		Node:    best,
		Degree:  degree[best],
		From:    domain.NodePoint{ID: best, X: from.X, Y: from.Y},
		To:      to,
	}, true, nil
}

func nodeView(nodes []domain.NodeView, id domain.NodeID) (domain.NodeView, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.NodeView{}, false
}

func nodePoint(points []domain.NodePoint, id domain.NodeID) (domain.NodePoint, bool) {
	for _, p := range points {
		if p.ID == id {
			return p, true
		}
	}
	return domain.NodePoint{}, false
}
