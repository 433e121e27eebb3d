// Package session holds the per-level puzzle state machine. A Session is
// built at level start, mutated only by the goroutine that owns the game
// loop, and discarded on reset or level advance.
package session

import (
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/layout"
	"svw.info/isopuzzle/internal/ports"
	"svw.info/isopuzzle/internal/score"
)

// maxPlacementTries bounds the resampling of a start position that lands on
// its own drop target.
const maxPlacementTries = 16

type Session struct {
	id     string
	level  int
	graph  *domain.Graph
	params Params

	// identity maps a reference node to the draggable node that must sit on
	// its drop slot. It is the identity mapping and never changes.
	identity  []domain.NodeID
	reference domain.Layout
	drop      domain.Layout

	pos      []domain.Point
	state    []domain.NodeState
	dragging domain.NodeID
	offset   domain.Point

	clock    ports.Clock
	start    time.Time
	answered bool
	revealed bool
	score    int
	elapsed  int
	finished time.Time
	command  domain.Command
}

// New lays out g on the reference and drop circles and scatters the
// draggable copies over the drop half of the board.
func New(id string, level int, g *domain.Graph, p Params, rng *rand.Rand, clock ports.Clock) *Session {
	n := g.Order()
	order := layout.Identity(n)
	s := &Session{
		id:        id,
		level:     level,
		graph:     g,
		params:    p,
		identity:  order,
		reference: layout.Circle(order, p.ReferenceCenter(), p.LayoutRadius),
		drop:      layout.Circle(order, p.DropCenter(), p.LayoutRadius),
		pos:       make([]domain.Point, n),
		state:     make([]domain.NodeState, n),
		dragging:  domain.NoNode,
		clock:     clock,
		start:     clock.Now(),
	}

	minX, maxX, minY, maxY := p.startRegion()
	for i := 0; i < n; i++ {
		target := s.target(domain.NodeID(i))
		var pt domain.Point
		for try := 0; try < maxPlacementTries; try++ {
			pt = domain.Point{
				X: float64(minX + rng.Intn(maxX-minX+1)),
				Y: float64(minY + rng.Intn(maxY-minY+1)),
			}
			if r2.Norm(r2.Sub(pt, target)) > p.NodeRadius {
				break
			}
		}
		s.pos[i] = pt
		s.state[i] = domain.Free
	}
	return s
}

func (s *Session) ID() string           { return s.id }
func (s *Session) Level() int           { return s.level }
func (s *Session) Graph() *domain.Graph { return s.graph }
func (s *Session) NodeCount() int       { return len(s.state) }
func (s *Session) Params() Params       { return s.params }
func (s *Session) Dragging() domain.NodeID {
	return s.dragging
}

func (s *Session) valid(id domain.NodeID) bool {
	return id >= 0 && int(id) < len(s.state)
}

// target is the drop coordinate draggable node id must reach.
func (s *Session) target(id domain.NodeID) domain.Point {
	return s.drop[s.identity[id]]
}

func (s *Session) State(id domain.NodeID) domain.NodeState {
	if !s.valid(id) {
		return domain.Free
	}
	return s.state[id]
}

func (s *Session) Position(id domain.NodeID) domain.Point {
	if !s.valid(id) {
		return domain.Point{}
	}
	return s.pos[id]
}

func (s *Session) DropTarget(id domain.NodeID) domain.Point {
	if !s.valid(id) {
		return domain.Point{}
	}
	return s.target(id)
}

func (s *Session) ReferencePosition(id domain.NodeID) domain.Point {
	return s.reference[id]
}

// AllFixed reports whether every node has been placed.
func (s *Session) AllFixed() bool {
	for _, st := range s.state {
		if st != domain.Fixed {
			return false
		}
	}
	return true
}

func (s *Session) Answered() bool { return s.answered }
func (s *Session) Revealed() bool { return s.revealed }
func (s *Session) Score() int     { return s.score }

func (s *Session) Phase() domain.Phase {
	if s.answered {
		return domain.Answered
	}
	return domain.Playing
}

// NextLevelEnabled is true once answered, or as soon as every node is Fixed
// (possibly one tick before the answer latches).
func (s *Session) NextLevelEnabled() bool {
	return s.answered || s.AllFixed()
}

// ShowAnswer fixes every node on its drop target and scores the level. It
// does nothing once the level is answered.
func (s *Session) ShowAnswer() bool {
	if s.answered {
		return false
	}
	for i := range s.state {
		s.pos[i] = s.target(domain.NodeID(i))
		s.state[i] = domain.Fixed
	}
	s.dragging = domain.NoNode
	s.offset = domain.Point{}
	s.complete(true)
	return true
}

// Tick runs the end-of-frame completion check. It reports whether the
// level was scored by this call.
func (s *Session) Tick() bool {
	if s.answered || !s.AllFixed() {
		return false
	}
	s.complete(false)
	return true
}

func (s *Session) complete(revealed bool) {
	now := s.clock.Now()
	s.answered = true
	s.revealed = revealed
	s.finished = now
	s.elapsed = score.Elapsed(s.start, now)
	s.score = score.FromElapsed(s.elapsed)
}

// ElapsedSeconds is frozen once the level is answered.
func (s *Session) ElapsedSeconds() int {
	if s.answered {
		return s.elapsed
	}
	return score.Elapsed(s.start, s.clock.Now())
}

// Result returns the completion record once the level is answered.
func (s *Session) Result() (domain.Result, bool) {
	if !s.answered {
		return domain.Result{}, false
	}
	return domain.Result{
		SessionID:      s.id,
		Level:          s.level,
		NodeCount:      len(s.state),
		Score:          s.score,
		ElapsedSeconds: s.elapsed,
		Revealed:       s.revealed,
		CompletedAt:    s.finished.UnixNano(),
	}, true
}
