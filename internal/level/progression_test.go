package level

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/generator"
	"svw.info/isopuzzle/internal/ports"
	"svw.info/isopuzzle/internal/session"
	"svw.info/isopuzzle/internal/validator"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type failingGenerator struct{ calls int }

func (f *failingGenerator) Generate(context.Context, int64, int) (*domain.Graph, ports.Stats, error) {
	f.calls++
	return nil, ports.Stats{Attempts: 1}, domain.ErrGenerationFailed
}

func newProgression(seed int64) *Progression {
	return New(Config{Params: session.DefaultParams(), Seed: seed},
		generator.NewConnectedGenerator(0), validator.New(), fixedClock{t: time.Unix(100, 0)})
}

func TestNodeCount(t *testing.T) {
	cases := []struct{ base, level, want int }{
		{5, 1, 5},
		{5, 2, 6},
		{5, 10, 14},
		{4, 1, 4},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NodeCount(tc.base, tc.level))
	}
}

func TestStartBuildsLevelOne(t *testing.T) {
	p := newProgression(1)
	s, err := p.Start(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, s.Level())
	assert.Equal(t, 5, s.NodeCount())
	assert.Equal(t, 6, s.Graph().EdgeCount())
	assert.True(t, s.Graph().Connected())
	assert.NotEmpty(t, s.ID())
	assert.Same(t, s, p.Session())
}

func TestAdvanceIsStrictlyMonotonic(t *testing.T) {
	p := newProgression(2)
	_, err := p.Start(context.Background())
	require.NoError(t, err)

	prev := p.Session().NodeCount()
	for i := 0; i < 6; i++ {
		s, err := p.Advance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, prev+1, s.NodeCount())
		assert.Equal(t, p.Level(), s.Level())
		prev = s.NodeCount()
	}
	assert.Equal(t, 7, p.Level())
}

func TestRestartMidDragStartsOver(t *testing.T) {
	p := newProgression(3)
	_, err := p.Advance(context.Background())
	require.NoError(t, err)
	old := p.Session()

	require.True(t, old.BeginDrag(old.Position(0)))
	old.UpdateDrag(domain.Point{X: 700, Y: 300})
	require.Equal(t, domain.NodeID(0), old.Dragging())

	s, err := p.Restart(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, old, s)
	assert.NotEqual(t, old.ID(), s.ID())
	assert.Equal(t, 2, s.Level())
	assert.Equal(t, 6, s.NodeCount())
	assert.False(t, s.Answered())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, domain.NoNode, s.Dragging())
	for i := 0; i < s.NodeCount(); i++ {
		assert.Equal(t, domain.Free, s.State(domain.NodeID(i)))
	}
}

func TestFailureKeepsPreviousSession(t *testing.T) {
	p := newProgression(4)
	prev, err := p.Start(context.Background())
	require.NoError(t, err)

	gen := &failingGenerator{}
	p.generator = gen
	_, err = p.Advance(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrGenerationFailed))
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, p.Level())
	assert.Same(t, prev, p.Session())

	_, err = p.Restart(context.Background())
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Same(t, prev, p.Session())
}

func TestUnconfiguredGenerator(t *testing.T) {
	p := New(Config{}, nil, nil, nil)
	_, err := p.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Nil(t, p.Session())
}
