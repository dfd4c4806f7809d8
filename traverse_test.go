// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AllDescendants(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	// Depth-first pre-order: a child precedes its own descendants.
	assert.Equal(t, []int{2, 4, 5, 3}, keys(s.AllDescendants(ctx, 1)))
	assert.Equal(t, []int{4, 5}, keys(s.AllDescendants(ctx, 2)))
	assert.Empty(t, s.AllDescendants(ctx, 4))
	assert.Empty(t, s.AllDescendants(ctx, 42))
}

func TestStore_AllAncestors(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	// Nearest parent first, excluding the queried key.
	assert.Equal(t, []int{2, 1}, keys(s.AllAncestors(ctx, 4)))
	assert.Equal(t, []int{1}, keys(s.AllAncestors(ctx, 2)))
	assert.Empty(t, s.AllAncestors(ctx, 1))
	assert.Empty(t, s.AllAncestors(ctx, 42))
}

func TestStore_childrenAncestorsRoundTrip(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	// Every non-root Record is among its direct parent's children.
	for _, record := range s.All(ctx) {
		ancestors := s.AllAncestors(ctx, record.ID())
		if len(ancestors) < 1 {
			continue
		}

		assert.Contains(t, keys(s.Children(ctx, ancestors[0].ID())), record.ID())
	}
}

func TestStore_cacheCoherence(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	for _, id := range keys(s.All(ctx)) {
		assert.Equal(t, s.AllDescendants(ctx, id), s.AllDescendants(ctx, id))
		assert.Equal(t, s.AllAncestors(ctx, id), s.AllAncestors(ctx, id))
	}
}

func TestStore_cyclicParentChain(t *testing.T) {
	ctx := context.Background()

	// 1 -> 2 -> 1: walks truncate instead of looping.
	s := New[int, testRecord](ctx, []testRecord{
		{id: 1, parent: 2},
		{id: 2, parent: 1},
	})

	assert.Equal(t, []int{2}, keys(s.AllDescendants(ctx, 1)))
	assert.Equal(t, []int{1}, keys(s.AllDescendants(ctx, 2)))
	assert.Equal(t, []int{2}, keys(s.AllAncestors(ctx, 1)))
	assert.Equal(t, []int{1}, keys(s.AllAncestors(ctx, 2)))
}

func TestStore_Path(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	assert.Equal(t, []int{1, 2, 4}, s.Path(ctx, 4))
	assert.Equal(t, []int{1}, s.Path(ctx, 1))
	assert.Empty(t, s.Path(ctx, 42))
}

func TestStore_AllByLevel(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	levels, err := s.AllByLevel(ctx)
	require.NoError(t, err)

	require.Len(t, levels, 3)
	assert.Equal(t, []int{1}, keys(levels[0]))
	assert.Equal(t, []int{2, 3}, keys(levels[1]))
	assert.Equal(t, []int{4, 5}, keys(levels[2]))
}

func TestStore_Each(t *testing.T) {
	ctx := context.Background()

	s, _ := newSampleStore(t)

	var sum int64
	visited, err := s.Each(ctx, func(r testRecord) { atomic.AddInt64(&sum, int64(r.id)) })
	require.NoError(t, err)

	assert.Equal(t, s.Len(), visited)
	assert.Equal(t, int64(1+2+3+4+5), atomic.LoadInt64(&sum))
}
