package generator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/graphs/gen"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/ports"
)

// Generate returns a connected graph of order n with exactly n+1 edges.
// Each attempt is a full regeneration drawn from one seeded stream, so the
// seed determines the result.
func (g *ConnectedGenerator) Generate(ctx context.Context, seed int64, n int) (*domain.Graph, ports.Stats, error) {
	start := time.Now()
	if n < MinOrder {
		return nil, ports.Stats{}, fmt.Errorf("order %d < %d: %w", n, MinOrder, domain.ErrTooFewNodes)
	}
	limit := g.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}
	src := rand.NewSource(uint64(seed))

	for attempt := 1; attempt <= limit; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, ports.Stats{Attempts: attempt - 1, Duration: time.Since(start)}, err
		}
		u := simple.NewUndirectedGraph()
		if err := gen.Gnm(u, n, n+1, src); err != nil {
			return nil, ports.Stats{Attempts: attempt, Duration: time.Since(start)}, fmt.Errorf("sample G(%d,%d): %w", n, n+1, err)
		}
		if len(topo.ConnectedComponents(u)) != 1 {
			continue
		}
		return domain.FromUndirected(u), ports.Stats{Attempts: attempt, Duration: time.Since(start)}, nil
	}
	return nil, ports.Stats{Attempts: limit, Duration: time.Since(start)},
		fmt.Errorf("no connected graph of order %d after %d attempts: %w", n, limit, domain.ErrGenerationFailed)
}
