// Package level advances the puzzle through increasingly large graphs and
// rebuilds the session on reset.
package level

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/ports"
	"svw.info/isopuzzle/internal/session"
)

const DefaultBaseNodes = 5

// NodeCount is the graph order for a 1-based level.
func NodeCount(base, level int) int { return base + level - 1 }

type Config struct {
	BaseNodes int
	Params    session.Params
	Seed      int64
}

// Progression owns the current level number and its session. Like the
// session it is not safe for concurrent use.
type Progression struct {
	cfg       Config
	generator ports.Generator
	validator ports.Validator
	clock     ports.Clock
	rng       *rand.Rand

	level   int
	current *session.Session
	last    ports.Stats
}

func New(cfg Config, g ports.Generator, v ports.Validator, clock ports.Clock) *Progression {
	if cfg.BaseNodes <= 0 {
		cfg.BaseNodes = DefaultBaseNodes
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Progression{
		cfg:       cfg,
		generator: g,
		validator: v,
		clock:     clock,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		level:     1,
	}
}

func (p *Progression) Level() int                 { return p.level }
func (p *Progression) Session() *session.Session { return p.current }
func (p *Progression) NodeCount() int             { return NodeCount(p.cfg.BaseNodes, p.level) }

// LastStats describes the most recent successful generation.
func (p *Progression) LastStats() ports.Stats { return p.last }

// Start builds the session for the current level.
func (p *Progression) Start(ctx context.Context) (*session.Session, error) {
	return p.build(ctx, p.level)
}

// Restart replaces the session with a fresh graph of the same level.
func (p *Progression) Restart(ctx context.Context) (*session.Session, error) {
	return p.build(ctx, p.level)
}

// Advance moves to the next level. On failure the level number and the
// previous session are kept.
func (p *Progression) Advance(ctx context.Context) (*session.Session, error) {
	return p.build(ctx, p.level+1)
}

func (p *Progression) build(ctx context.Context, level int) (*session.Session, error) {
	if p.generator == nil {
		return nil, domain.ErrNotConfigured
	}
	n := NodeCount(p.cfg.BaseNodes, level)
	g, st, err := p.generator.Generate(ctx, p.rng.Int63(), n)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", level, err)
	}
	if p.validator != nil {
		ok, violations, err := p.validator.Validate(ctx, g)
		if err != nil {
			return nil, fmt.Errorf("level %d: validate: %w", level, err)
		}
		if !ok {
			return nil, fmt.Errorf("level %d: %v: %w", level, violations, domain.ErrGenerationFailed)
		}
	}
	s := session.New(uuid.NewString(), level, g, p.cfg.Params, p.rng, p.clock)
	p.level = level
	p.current = s
	p.last = st
	return s, nil
}
