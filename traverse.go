// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/akulikoff/treeStore/types"
)

type (
	// TraverseComm defines a channel to communicate info between [Store.Walk]
	// & it's callers.
	TraverseComm[R any] struct {
		record   R
		err      error
		newPeers bool
	}
)

const (
	traverseBufferSize = 10
	eachPoolSize       = 10
)

// AllDescendants lists the Records reachable from a key's children,
// depth-first pre-order: each child precedes its own descendants, siblings
// follow in children-list order.
//
// The result is memoized per key; repeated calls against an unchanged subtree
// return the cached list. Callers must treat it as read-only. A parent-chain
// cycle truncates the walk instead of looping.
func (s *Store[T, R]) AllDescendants(ctx context.Context, id T) (descendants List[R]) {
	if descendants, ok := s.descendantCache[id]; ok {
		return descendants
	}

	if _, ok := s.table[id]; !ok {
		return make(List[R], 0)
	}

	descendants = s.descend(ctx, id, types.NewSet(id))
	s.descendantCache[id] = descendants

	return
}

// descend performs the [Store.AllDescendants] grunt work.
func (s *Store[T, R]) descend(ctx context.Context, id T, seen types.Set[T]) (descendants List[R]) {
	descendants = make(List[R], 0, len(s.children[id]))
	for _, child := range s.children[id] {
		childID := child.ID()
		if !seen.Add(childID) {
			// Cyclic parent chain; truncate.
			continue
		}

		descendants = append(descendants, child)
		descendants = append(descendants, s.descend(ctx, childID, seen)...)
	}

	return
}

// AllAncestors lists a key's parent chain, nearest parent first & excluding
// the key itself.
//
// The walk follows the resolved parent relations, so sibling order has no
// effect. Unknown keys, roots & Records with a dangling parent reference
// yield an empty list. The result is memoized per key like
// [Store.AllDescendants]; a parent-chain cycle truncates the walk.
func (s *Store[T, R]) AllAncestors(_ context.Context, id T) (ancestors List[R]) {
	if ancestors, ok := s.ancestorCache[id]; ok {
		return ancestors
	}

	if _, ok := s.table[id]; !ok {
		return make(List[R], 0)
	}

	ancestors = make(List[R], 0)
	seen := types.NewSet(id)
	current := id
	for {
		parentID, ok := s.parents[current]
		if !ok || !seen.Add(parentID) {
			break
		}

		ancestors = append(ancestors, s.table[parentID])
		current = parentID
	}
	s.ancestorCache[id] = ancestors

	return
}

// Path derives the materialized path for a key: the key sequence from the
// topmost ancestor to the key itself, inclusive.
//
// An empty list is returned for unknown keys.
func (s *Store[T, R]) Path(ctx context.Context, id T) (path []T) {
	if _, ok := s.table[id]; !ok {
		return make([]T, 0)
	}

	ancestors := s.AllAncestors(ctx, id)

	path = make([]T, 0, len(ancestors)+1)
	for index := len(ancestors) - 1; index >= 0; index-- {
		path = append(path, ancestors[index].ID())
	}

	return append(path, id)
}

// Walk performs level-order traversal over the [Store]'s forest, pushing its
// Records to its channel argument.
//
// This operation uses channels to minimize resource wastage.
// A context.Context is used to terminate the walk operation.
func (s *Store[T, R]) Walk(ctx context.Context, traverseChan chan TraverseComm[R]) {
	defer close(traverseChan)

	queue := s.Roots(ctx)
	seen := types.NewSet[T]()
	for _, record := range queue {
		seen.Add(record.ID())
	}

	select {
	case <-ctx.Done():
		// Received context cancellation.
		return
	default:
		// Use a var for front to ensure the outer scope queue is modified.
		var front R

		for {
			queueLen := len(queue)
			if queueLen < 1 {
				break
			}

			// Iterate over the level's peers.
			newPeers := true
			for queueLen > 0 {
				// Pop from queue.
				front, queue = queue[0], queue[1:]
				queueLen--

				// Send the Record to the caller via the channel.
				traverseChan <- TraverseComm[R]{record: front, newPeers: newPeers}
				newPeers = false

				// Add children to the queue.
				for _, child := range s.children[front.ID()] {
					if !seen.Add(child.ID()) {
						continue
					}

					queue = append(queue, child)
				}
			}
		}
	}
}

// AllByLevel lists the [Store]'s Records grouped by depth.
func (s *Store[T, R]) AllByLevel(ctx context.Context) (levels LevelList[R], err error) {
	levels = make(LevelList[R], 0)
	traverseChan := make(chan TraverseComm[R], traverseBufferSize)

	go s.Walk(ctx, traverseChan)

	var peers List[R]
	for {
		resl, proceed := <-traverseChan
		if !proceed {
			break
		}
		if err = resl.err; err != nil {
			return
		}

		if !resl.newPeers {
			peers = append(peers, resl.record)
			continue
		}

		if len(peers) > 0 {
			levels = append(levels, peers)
		}
		peers = List[R]{resl.record}
	}

	if len(peers) > 0 {
		levels = append(levels, peers)
	}

	if s.cfg.Debug {
		s.cfg.Logger.Debugf("levels: %+v", levels)
	}

	return
}

// Each applies fn to every live Record on a goroutine pool, returning the
// visit count.
//
// fn runs concurrently & must not call back into the [Store]'s mutation
// operations.
func (s *Store[T, R]) Each(ctx context.Context, fn func(R)) (visited int, err error) {
	pool, err := ants.NewPool(eachPoolSize)
	if err != nil {
		return
	}
	defer pool.Release()

	counter := new(types.SafeCounter)
	wg := new(sync.WaitGroup)

	for index := range s.records {
		record := s.records[index]

		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
			wg.Add(1)
			err = pool.Submit(func() {
				defer wg.Done()

				fn(record)
				counter.Inc()
			})
			if err != nil {
				wg.Done()
			}
		}

		if err != nil {
			break
		}
	}

	wg.Wait()
	visited = counter.Value()

	return
}
