package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/isopuzzle/internal/domain"
)

func TestMemorySaveList(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, domain.Result{SessionID: "b", Level: 2, CompletedAt: 20}))
	require.NoError(t, s.Save(ctx, domain.Result{SessionID: "a", Level: 1, CompletedAt: 10}))
	require.NoError(t, s.Save(ctx, domain.Result{SessionID: "a", Level: 1, Score: 5, CompletedAt: 30}))

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].SessionID)
	assert.Equal(t, 0, got[0].Score, "first save per session wins")
	assert.Equal(t, "b", got[1].SessionID)

	got[0].Level = 99
	again, _ := s.List(ctx)
	assert.Equal(t, 1, again[0].Level)
}

func TestMemoryRejectsMissingID(t *testing.T) {
	assert.Error(t, NewMemory().Save(context.Background(), domain.Result{}))
}

func TestMemoryConcurrentSave(t *testing.T) {
	s := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(context.Background(), domain.Result{SessionID: string(rune('A' + i)), CompletedAt: int64(i)})
		}(i)
	}
	wg.Wait()
	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 50)
}
