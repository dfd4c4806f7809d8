// SPDX-License-Identifier: MIT
package treestore

import (
	"context"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// Store defines a flat index over a forest of [Record]s.
	//
	// Relations are held as key lookups into the primary table, not as
	// embedded node references; a Record's parent key is resolved against the
	// table on every structural change. Synchronization is unnecessary, the
	// type is designed for single write multiple read.
	Store[T Constraint, R Record[T]] struct {
		// cfg contains a pointer to a [Config] shared by Store operations.
		cfg *Config

		// reporter receives [Diagnostic]s for rejected mutations.
		reporter Reporter[T]

		// records holds the live Records in insertion order; shared with
		// [Store.All] callers.
		records List[R]

		// table is the primary id -> Record index.
		table map[T]R

		// children maps an id to its direct children; every live id has an
		// entry, leaves hold an empty list.
		children map[T]List[R]

		// parents maps an id to its resolved parent id. Dangling parent
		// references have no entry.
		parents map[T]T

		// descendantCache & ancestorCache memoize the recursive views until a
		// mutation invalidates them.
		descendantCache map[T]List[R]
		ancestorCache   map[T]List[R]
	}

	// Config defines configuration options for a [Store]'s operations.
	Config struct {
		// Logger for [Store] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// List is a type wrapper for []R.
	List[R any] []R

	// LevelList groups Records by their depth in the forest.
	LevelList[R any] []List[R]

	// Option defines the Store functional option type.
	Option[T Constraint, R Record[T]] func(*Store[T, R])
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Store] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// New instantiates a [Store] from an initial Record sequence.
//
// The sequence order is preserved for [Store.All]. Duplicate keys beyond the
// first occurrence are dropped & reported; unresolvable parent references
// leave the Record retrievable but unlinked. This operation cannot fail.
func New[T Constraint, R Record[T]](ctx context.Context, records []R, options ...Option[T, R]) *Store[T, R] {
	s := &Store[T, R]{
		cfg:             defConfig,
		records:         make(List[R], 0, len(records)),
		table:           make(map[T]R, len(records)),
		children:        make(map[T]List[R], len(records)),
		parents:         make(map[T]T, len(records)),
		descendantCache: make(map[T]List[R]),
		ancestorCache:   make(map[T]List[R]),
	}

	for _, opt := range options {
		opt(s)
	}

	// First pass: index the Records by key.
	for index := range records {
		record := records[index]

		id := record.ID()
		if _, ok := s.table[id]; ok {
			s.report(ctx, OpNew, id, ErrDuplicateID)
			if s.cfg.Debug {
				s.cfg.Logger.Debugf("dropped duplicate: %s", spew.Sprint(record))
			}

			continue
		}

		s.records = append(s.records, record)
		s.table[id] = record
		s.children[id] = make(List[R], 0)
	}

	// Second pass: link each Record into its parent's children list.
	for _, record := range s.records {
		s.link(ctx, record)
	}

	return s
}

// WithConfig configures the [Store] [Config].
func WithConfig[T Constraint, R Record[T]](cfg *Config) Option[T, R] {
	return func(s *Store[T, R]) { s.cfg = cfg }
}

// WithReporter configures a [Reporter] for the [Store]'s diagnostics.
func WithReporter[T Constraint, R Record[T]](reporter Reporter[T]) Option[T, R] {
	return func(s *Store[T, R]) { s.reporter = reporter }
}

// Config retrieves the [Store]'s [Config].
func (s *Store[T, R]) Config() *Config { return s.cfg }

// Len is the number of live Records in the [Store].
func (s *Store[T, R]) Len() int { return len(s.records) }

// All retrieves the live Record sequence in its current order.
//
// The backing slice is shared, not copied; mutate entries through
// [Store.Update] only.
func (s *Store[T, R]) All(_ context.Context) List[R] { return s.records }

// Get retrieves a Record by its key.
func (s *Store[T, R]) Get(_ context.Context, id T) (record R, ok bool) {
	record, ok = s.table[id]
	return
}

// Children lists the immediate children for a key.
//
// The list is precomputed & follows child insertion order; unknown & childless
// keys yield an empty list.
func (s *Store[T, R]) Children(_ context.Context, id T) List[R] { return s.children[id] }

// Roots lists the Records whose parent reference is the zero value of T.
//
// Records with a dangling parent reference are not roots; they stay
// unreachable for traversal until reparented.
func (s *Store[T, R]) Roots(_ context.Context) (roots List[R]) {
	var rootID T

	roots = make(List[R], 0)
	for _, record := range s.records {
		if record.ParentID() == rootID {
			roots = append(roots, record)
		}
	}

	return
}

// Leaves lists the Records without children.
func (s *Store[T, R]) Leaves(_ context.Context) (leaves List[R]) {
	leaves = make(List[R], 0)
	for _, record := range s.records {
		if len(s.children[record.ID()]) < 1 {
			leaves = append(leaves, record)
		}
	}

	return
}

// link records the parent relation for a Record whose parent key resolves.
//
// A zero-value parent marks a root; a parent key absent from the table is a
// dangling reference & the relation is dropped.
func (s *Store[T, R]) link(_ context.Context, record R) {
	var rootID T

	parentID := record.ParentID()
	if parentID == rootID {
		return
	}

	if _, ok := s.table[parentID]; !ok {
		if s.cfg.Debug {
			s.cfg.Logger.Debugf("dangling parent (%v) for: %s", parentID, spew.Sprint(record))
		}

		return
	}

	s.children[parentID] = append(s.children[parentID], record)
	s.parents[record.ID()] = parentID
}
