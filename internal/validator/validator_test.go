package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/generator"
)

// edges pairs up its arguments: edges(0, 1, 1, 2) is 0-1 and 1-2.
func edges(ends ...domain.NodeID) []domain.Edge {
	out := make([]domain.Edge, 0, len(ends)/2)
	for i := 0; i+1 < len(ends); i += 2 {
		out = append(out, domain.Edge{U: ends[i], V: ends[i+1]})
	}
	return out
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		order int
		edges []domain.Edge
		ok    bool
	}{
		{
			name:  "pentagon with chord",
			order: 5,
			edges: edges(0, 1, 1, 2, 2, 3, 3, 4, 4, 0, 0, 2),
			ok:    true,
		},
		{
			name:  "too few edges",
			order: 5,
			edges: edges(0, 1, 1, 2, 2, 3, 3, 4, 4, 0),
		},
		{
			name:  "disconnected",
			order: 6,
			edges: edges(0, 1, 1, 2, 2, 0, 3, 4, 0, 3, 1, 3, 2, 4),
		},
		{
			name:  "self loop",
			order: 4,
			edges: edges(0, 1, 1, 2, 2, 3, 3, 0, 2, 2),
		},
		{
			name:  "duplicate",
			order: 4,
			edges: edges(0, 1, 1, 2, 2, 3, 3, 0, 1, 0),
		},
		{
			name:  "out of range",
			order: 4,
			edges: edges(0, 1, 1, 2, 2, 3, 3, 0, 3, 9),
		},
		{name: "empty", order: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, violations, err := New().Validate(context.Background(), domain.NewGraph(tc.order, tc.edges))
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok, "violations: %v", violations)
			if tc.ok {
				assert.Empty(t, violations)
			} else {
				assert.NotEmpty(t, violations)
			}
		})
	}
}

func TestValidateGeneratedGraphs(t *testing.T) {
	g := generator.NewConnectedGenerator(0)
	v := New()
	for n := 5; n <= 12; n++ {
		gr, _, err := g.Generate(context.Background(), int64(n)*31, n)
		require.NoError(t, err)
		ok, violations, err := v.Validate(context.Background(), gr)
		require.NoError(t, err)
		assert.True(t, ok, "n=%d: %v", n, violations)
	}
}

func TestValidateNil(t *testing.T) {
	ok, violations, err := New().Validate(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, violations, 1)
}
