package usecase

import (
	"context"
	"log/slog"

	"svw.info/isopuzzle/internal/ctxlog"
	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/level"
	"svw.info/isopuzzle/internal/ports"
)

// Service drives one player's game: it owns the level progression and is
// mutated only by the host loop goroutine.
type Service struct {
	Levels  *level.Progression
	Results ports.ResultStore
	Hinter  ports.Hinter

	done     bool
	recorded string // session id of the last saved result
}

func NewService(l *level.Progression, r ports.ResultStore, h ports.Hinter) *Service {
	return &Service{Levels: l, Results: r, Hinter: h}
}

var errNotConfigured = domain.ErrNotConfigured

// Start builds the first level.
func (u *Service) Start(ctx context.Context) (domain.Snapshot, error) {
	if u.Levels == nil {
		return domain.Snapshot{}, errNotConfigured
	}
	s, err := u.Levels.Start(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	ctxlog.FromContext(ctx).Info("level started",
		"level", s.Level(), "nodes", s.NodeCount(), "session", s.ID(),
		"attempts", u.Levels.LastStats().Attempts)
	return u.Snapshot(), nil
}

// Apply runs one tick: every event in order, then the completion check,
// then any pending reset or level change.
func (u *Service) Apply(ctx context.Context, events []domain.Event) (domain.Snapshot, error) {
	if u.Levels == nil || u.Levels.Session() == nil {
		return domain.Snapshot{}, errNotConfigured
	}
	if u.done {
		return u.Snapshot(), nil
	}
	log := ctxlog.FromContext(ctx)
	s := u.Levels.Session()

	for _, ev := range events {
		if err := s.Handle(ev); err != nil {
			log.Debug("event dropped", "kind", ev.Kind, "control", ev.Control, "err", err)
		}
	}

	if s.Tick() {
		log.Info("level solved", "level", s.Level(), "score", s.Score(), "elapsed", s.ElapsedSeconds())
	}
	if s.Answered() {
		u.record(ctx, log)
	}

	var err error
	switch cmd := s.TakeCommand(); cmd {
	case domain.ResetLevel:
		if _, err = u.Levels.Restart(ctx); err == nil {
			log.Info("level reset", "level", u.Levels.Level(), "session", u.Levels.Session().ID())
		}
	case domain.AdvanceLevel:
		if _, err = u.Levels.Advance(ctx); err == nil {
			log.Info("level advanced", "level", u.Levels.Level(), "nodes", u.Levels.NodeCount(),
				"attempts", u.Levels.LastStats().Attempts)
		}
	case domain.Quit:
		u.done = true
		log.Info("quit", "level", s.Level())
	}
	if err != nil {
		log.Error("level rebuild failed", "level", u.Levels.Level(), "err", err)
	}
	return u.Snapshot(), err
}

func (u *Service) record(ctx context.Context, log *slog.Logger) {
	if u.Results == nil {
		return
	}
	r, ok := u.Levels.Session().Result()
	if !ok || r.SessionID == u.recorded {
		return
	}
	u.recorded = r.SessionID
	if err := u.Results.Save(ctx, r); err != nil {
		log.Warn("result not saved", "session", r.SessionID, "err", err)
	}
}

// Snapshot copies the current session state. The zero Snapshot is returned
// before Start.
func (u *Service) Snapshot() domain.Snapshot {
	if u.Levels == nil || u.Levels.Session() == nil {
		return domain.Snapshot{Done: u.done}
	}
	snap := u.Levels.Session().Snapshot()
	snap.Done = u.done
	return snap
}

// Done reports whether a Quit event has been applied.
func (u *Service) Done() bool { return u.done }

// Hint works on a published snapshot and is safe to call from any goroutine.
func (u *Service) Hint(ctx context.Context, snap domain.Snapshot) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, snap)
}

// History lists completed levels; safe to call from any goroutine.
func (u *Service) History(ctx context.Context) ([]domain.Result, error) {
	if u.Results == nil {
		return nil, errNotConfigured
	}
	return u.Results.List(ctx)
}
