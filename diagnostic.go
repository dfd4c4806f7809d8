// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"errors"
)

type (
	// Op identifies the [Store] operation that raised a [Diagnostic].
	Op string

	// Diagnostic describes a rejected [Store] mutation.
	//
	// Rejections are absorbed, never returned; a [Reporter] is the assertable
	// replacement for warning logs.
	Diagnostic[T Constraint] struct {
		Err error
		ID  T
		Op  Op
	}

	// Reporter defines a callback consuming [Diagnostic]s.
	Reporter[T Constraint] func(Diagnostic[T])
)

// Store operations surfacing [Diagnostic]s.
const (
	OpNew    Op = "new"
	OpAdd    Op = "add"
	OpPop    Op = "pop"
	OpUpdate Op = "update"
)

// Non-fatal conditions reported when handling Store mutations.
var (
	ErrDuplicateID = errors.New("duplicate id")
	ErrUnknownID   = errors.New("unknown id")
)

// report delivers a [Diagnostic] to the configured [Reporter], defaulting to a
// warning log.
func (s *Store[T, R]) report(_ context.Context, op Op, id T, err error) {
	if s.reporter != nil {
		s.reporter(Diagnostic[T]{Op: op, ID: id, Err: err})
		return
	}

	s.cfg.Logger.Warnf("%s (%v): %v", op, id, err)
}
