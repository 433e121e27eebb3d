// Package host runs the game on a single goroutine. Input arrives as event
// batches over a channel, is applied once per frame, and the resulting
// snapshot is handed to a Publisher.
package host

import (
	"context"
	"sync"
	"time"

	"svw.info/isopuzzle/internal/ctxlog"
	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/ports"
)

const DefaultFPS = 60

// Game is the part of the use case layer the loop drives.
type Game interface {
	Apply(ctx context.Context, events []domain.Event) (domain.Snapshot, error)
	Snapshot() domain.Snapshot
	Done() bool
}

type Loop struct {
	game      Game
	publisher ports.Publisher
	interval  time.Duration

	queue  chan []domain.Event
	closed chan struct{}
	once   sync.Once

	mu     sync.RWMutex
	latest domain.Snapshot
}

// New returns a loop for game; fps <= 0 selects DefaultFPS. publisher may be nil.
func New(game Game, publisher ports.Publisher, fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{
		game:      game,
		publisher: publisher,
		interval:  time.Second / time.Duration(fps),
		queue:     make(chan []domain.Event, 256),
		closed:    make(chan struct{}),
		latest:    game.Snapshot(),
	}
}

// Submit queues a batch for the next frame. Batches keep their arrival order.
func (l *Loop) Submit(ctx context.Context, events []domain.Event) error {
	select {
	case <-l.closed:
		return domain.ErrClosed
	default:
	}
	batch := make([]domain.Event, len(events))
	copy(batch, events)
	select {
	case l.queue <- batch:
		return nil
	case <-l.closed:
		return domain.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the most recently published state.
func (l *Loop) Snapshot() domain.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.latest
}

// Step drains every queued batch and applies them as one frame. It must
// only be called from the goroutine that owns the game.
func (l *Loop) Step(ctx context.Context) domain.Snapshot {
	var events []domain.Event
drain:
	for {
		select {
		case batch := <-l.queue:
			events = append(events, batch...)
		default:
			break drain
		}
	}
	snap, err := l.game.Apply(ctx, events)
	if err != nil {
		ctxlog.FromContext(ctx).Warn("frame", "err", err)
		snap = l.game.Snapshot()
	}
	l.mu.Lock()
	l.latest = snap
	l.mu.Unlock()
	if l.publisher != nil {
		l.publisher.Publish(snap)
	}
	return snap
}

// Run ticks until ctx is cancelled or the game quits. Submit fails with
// domain.ErrClosed afterwards.
func (l *Loop) Run(ctx context.Context) error {
	defer l.close()
	log := ctxlog.FromContext(ctx)
	log.Info("game loop started", "interval", l.interval)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("game loop stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if snap := l.Step(ctx); snap.Done {
				log.Info("game loop stopped", "reason", "quit")
				return nil
			}
		}
	}
}

// Closed is closed once Run returns.
func (l *Loop) Closed() <-chan struct{} { return l.closed }

func (l *Loop) close() { l.once.Do(func() { close(l.closed) }) }
