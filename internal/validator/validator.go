package validator

import (
	"context"
	"fmt"

	"svw.info/isopuzzle/internal/domain"
)

// GraphValidator checks the puzzle graph invariants: at least one node,
// exactly order+1 edges, endpoints in range, no loops, no duplicates and a
// single connected component.
type GraphValidator struct{}

func New() *GraphValidator { return &GraphValidator{} }

func (v *GraphValidator) Validate(ctx context.Context, g *domain.Graph) (bool, []string, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	if g == nil {
		return false, []string{"graph is nil"}, nil
	}
	violations := make([]string, 0, 4)
	n := g.Order()
	if n < 1 {
		violations = append(violations, fmt.Sprintf("order %d < 1", n))
	}
	if g.EdgeCount() != n+1 {
		violations = append(violations, fmt.Sprintf("edge count %d, want %d", g.EdgeCount(), n+1))
	}

	seen := make(map[domain.Edge]bool, g.EdgeCount())
	for _, e := range g.Edges() {
		switch {
		case e.U < 0 || int(e.V) >= n:
			violations = append(violations, fmt.Sprintf("edge %d-%d out of range", e.U, e.V))
		case e.U == e.V:
			violations = append(violations, fmt.Sprintf("self loop on %d", e.U))
		case seen[e]:
			violations = append(violations, fmt.Sprintf("duplicate edge %d-%d", e.U, e.V))
		}
		seen[e] = true
	}
	if n >= 1 && !g.Connected() {
		violations = append(violations, "graph is not connected")
	}
	return len(violations) == 0, violations, nil
}
