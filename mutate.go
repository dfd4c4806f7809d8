// SPDX-License-Identifier: MIT
package treestore

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/slices"

	"github.com/akulikoff/treeStore/types"
)

// Add registers a Record with the [Store].
//
// A Record reusing a live key is rejected & reported, leaving the [Store]
// unchanged.
func (s *Store[T, R]) Add(ctx context.Context, record R) {
	id := record.ID()
	if _, ok := s.table[id]; ok {
		s.report(ctx, OpAdd, id, ErrDuplicateID)
		if s.cfg.Debug {
			s.cfg.Logger.Debugf("rejected duplicate: %s", spew.Sprint(record))
		}

		return
	}

	s.records = append(s.records, record)
	s.table[id] = record
	s.children[id] = make(List[R], 0)
	s.link(ctx, record)

	s.invalidate(ctx, id, record.ParentID())
}

// Pop removes a Record & all of its descendants from the [Store], returning
// the removed Records.
//
// Removal cascades unconditionally; there is no mode that orphans children in
// place. An unknown key is reported & yields an empty list.
func (s *Store[T, R]) Pop(ctx context.Context, id T) (removed List[R]) {
	record, ok := s.table[id]
	if !ok {
		s.report(ctx, OpPop, id, ErrUnknownID)
		return make(List[R], 0)
	}

	descendants := s.AllDescendants(ctx, id)

	removed = make(List[R], 0, len(descendants)+1)
	removed = append(removed, record)
	removed = append(removed, descendants...)

	removal := types.NewSet[T]()
	affected := make([]T, 0, len(removed))
	for _, r := range removed {
		removal.Add(r.ID())
		affected = append(affected, r.ID())
	}

	// The upward walk needs the parent relations; invalidate before teardown.
	s.invalidate(ctx, affected...)

	parentID, hadParent := s.parents[id]

	s.records = slices.DeleteFunc(s.records, func(r R) bool { return removal.Has(r.ID()) })
	for _, r := range removed {
		rid := r.ID()
		delete(s.table, rid)
		delete(s.children, rid)
		delete(s.parents, rid)
	}

	if hadParent {
		s.children[parentID] = slices.DeleteFunc(
			s.children[parentID], func(r R) bool { return r.ID() == id },
		)
	}

	return
}

// Update replaces a Record's payload in place, relinking it when the parent
// reference changed.
//
// A move to a zero-value parent turns the Record into a root; a move to an
// unresolvable parent leaves it retrievable but unlinked. An unknown key is a
// reported no-op.
func (s *Store[T, R]) Update(ctx context.Context, record R) {
	id := record.ID()
	previous, ok := s.table[id]
	if !ok {
		s.report(ctx, OpUpdate, id, ErrUnknownID)
		return
	}

	s.table[id] = record
	if index := slices.IndexFunc(s.records, func(r R) bool { return r.ID() == id }); index > -1 {
		s.records[index] = record
	}

	oldParentID, newParentID := previous.ParentID(), record.ParentID()
	if oldParentID == newParentID {
		// Payload-only update: refresh the stale copy in the parent's
		// children list & drop the cached views embedding it.
		s.relist(ctx, newParentID, record)
		s.refresh(ctx, id)
		s.invalidate(ctx, id)

		return
	}

	// Detach from the old parent.
	if _, ok := s.table[oldParentID]; ok {
		s.children[oldParentID] = slices.DeleteFunc(
			s.children[oldParentID], func(r R) bool { return r.ID() == id },
		)
	}
	delete(s.parents, id)

	// Attach to the new parent; dropped for roots & dangling references.
	s.link(ctx, record)

	s.refresh(ctx, id)
	s.invalidate(ctx, id, oldParentID, newParentID)
}

// relist replaces a Record's copy within its parent's children list.
func (s *Store[T, R]) relist(_ context.Context, parentID T, record R) {
	siblings, ok := s.children[parentID]
	if !ok {
		return
	}

	id := record.ID()
	if index := slices.IndexFunc(siblings, func(r R) bool { return r.ID() == id }); index > -1 {
		siblings[index] = record
	}
}

// refresh drops the ancestor views below a Record; they embed its previous
// copy & move with it on reparenting.
func (s *Store[T, R]) refresh(ctx context.Context, id T) {
	for _, descendant := range s.AllDescendants(ctx, id) {
		delete(s.ancestorCache, descendant.ID())
	}
}

// invalidate drops the cached views for a set of directly affected keys & for
// every key on their parent chains.
//
// A change below a key alters the descendant view of each of its ancestors,
// so the walk clears strictly upward through the current parent relations.
// Clearing both caches for the whole chain is a superset of the minimal stale
// set; the extra cache misses buy simplicity.
func (s *Store[T, R]) invalidate(_ context.Context, ids ...T) {
	seen := types.NewSet[T]()
	for _, id := range ids {
		for seen.Add(id) {
			delete(s.descendantCache, id)
			delete(s.ancestorCache, id)

			parentID, ok := s.parents[id]
			if !ok {
				break
			}
			id = parentID
		}
	}
}
