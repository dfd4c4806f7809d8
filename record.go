// SPDX-License-Identifier: MIT
package treestore

import "golang.org/x/exp/constraints"

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Record defines an interface for entities indexable by a [Store].
	//
	// A Record is identified by a unique key & optionally references a parent
	// Record's key. The zero value of T marks a root; any other payload a
	// Record carries is opaque to the [Store].
	Record[T Constraint] interface {
		// ID obtains the Record's unique key.
		ID() T
		// ParentID obtains the key of the Record's parent; the zero value of T
		// for root Records.
		ParentID() T
	}

	// DefaultRecord is a minimal Record interface implementation.
	//
	// [Deserialize] produces these; embed or wrap the type to attach payloads.
	DefaultRecord[T Constraint] struct {
		Key    T
		Parent T
	}
)

// NewDefaultRecord instantiates a DefaultRecord.
func NewDefaultRecord[T Constraint](key, parent T) DefaultRecord[T] {
	return DefaultRecord[T]{Key: key, Parent: parent}
}

// ID obtains the key stored by the DefaultRecord.
func (d DefaultRecord[T]) ID() T { return d.Key }

// ParentID obtains the parent key stored by the DefaultRecord.
func (d DefaultRecord[T]) ParentID() T { return d.Parent }
