package storage

import (
	"context"
	"errors"
	"sort"
	"sync"

	"svw.info/isopuzzle/internal/domain"
)

// Memory keeps completed levels for the lifetime of the process.
type Memory struct {
	mu      sync.RWMutex
	results []domain.Result
}

func NewMemory() *Memory { return &Memory{} }

func (s *Memory) Save(ctx context.Context, r domain.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.SessionID == "" {
		return errors.New("invalid result: missing session id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// one record per session
	for _, have := range s.results {
		if have.SessionID == r.SessionID {
			return nil
		}
	}
	s.results = append(s.results, r)
	return nil
}

// List returns results oldest first.
func (s *Memory) List(ctx context.Context) ([]domain.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]domain.Result, len(s.results))
	copy(out, s.results)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt < out[j].CompletedAt })
	return out, nil
}
