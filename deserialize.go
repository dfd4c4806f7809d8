// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/akulikoff/treeStore/lexer"
)

// Deserialization errors.
var (
	ErrInvalidSerializationSrc = errors.New("invalid serialization source")
	ErrExcessiveKeys           = errors.New("the deserialization source has excessive keys")
	ErrExcessiveEndMarkers     = errors.New("the deserialization source has excessive end markers")
)

// Deserialize transforms a serialized forest into a [Store] of
// [DefaultRecord]s.
//
// Nesting depth recovers each Record's parent key; an invalid entry results
// in a truncated [Store].
func Deserialize[T Constraint](ctx context.Context, opts ...lexer.Option) (s *Store[T, DefaultRecord[T]], err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		l := lexer.New(opts...)
		go l.Lex(ctx)

		var records []DefaultRecord[T]
		if records, err = collect[T](ctx, l); err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidSerializationSrc, err)
			return
		}

		s = New[T, DefaultRecord[T]](ctx, records)

		diff := l.KeyCounter() - l.EndCounter()
		switch {
		case diff > 0:
			// Excessive keys.
			err = fmt.Errorf("%w: +%d", ErrExcessiveKeys, diff)
		case diff < 0:
			// Excessive end markers.
			err = fmt.Errorf("%w: %s +%d", ErrExcessiveEndMarkers, string(l.EndMarker()), diff*-1)

		default:
			// Valid
		}
	}

	return
}

// collect performs the deserialization grunt work, maintaining a stack of the
// enclosing Record keys.
func collect[T Constraint](ctx context.Context, l *lexer.Lexer) (records []DefaultRecord[T], err error) {
	records = make([]DefaultRecord[T], 0)

	var stack []T
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		item, proceed := l.Item()
		if !proceed {
			return
		}

		if l.Config().Debug {
			l.Logger().Debugf("lexed item: %+v", item)
		}

		switch item.ID {
		case lexer.ItemEOF:
			return
		case lexer.ItemError:
			// Stop input processing.
			err = item.Err
			return
		case lexer.ItemEndMarker:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			continue
		case lexer.ItemSplitter:
			continue
		}

		var key T
		if key, err = decodeKey[T](item.Val); err != nil {
			return
		}

		var parent T
		if len(stack) > 0 {
			parent = stack[len(stack)-1]
		}

		records = append(records, NewDefaultRecord(key, parent))
		stack = append(stack, key)
	}
}

// decodeKey converts a lexed key to the [Store]'s key type.
//
// Using json to deserialize the input to the intended type; raw words fall
// back to a string conversion for string-keyed stores.
func decodeKey[T Constraint](val []byte) (key T, err error) {
	if err = json.Unmarshal(val, &key); err == nil {
		return
	}

	if rv := reflect.ValueOf(&key).Elem(); rv.Kind() == reflect.String {
		rv.SetString(string(val))
		err = nil
	}

	return
}
