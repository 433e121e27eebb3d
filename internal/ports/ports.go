package ports

import (
	"context"
	"time"

	"svw.info/isopuzzle/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Attempts int
	Duration time.Duration
}

// Generator creates a connected graph of order n with n+1 edges.
type Generator interface {
	Generate(ctx context.Context, seed int64, n int) (*domain.Graph, Stats, error)
}

// Validator checks the structural invariants of a puzzle graph.
type Validator interface {
	Validate(ctx context.Context, g *domain.Graph) (ok bool, violations []string, err error)
}

// Hinter suggests the next node to place without changing any state.
type Hinter interface {
	Hint(ctx context.Context, s domain.Snapshot) (domain.Hint, bool, error)
}

// ResultStore keeps completed levels for the life of the process.
type ResultStore interface {
	Save(ctx context.Context, r domain.Result) error
	List(ctx context.Context) ([]domain.Result, error)
}

// Publisher receives every snapshot the game loop produces.
type Publisher interface {
	Publish(s domain.Snapshot)
}

// Clock is the scoring time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock (with its monotonic component).
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
