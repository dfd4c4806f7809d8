// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"fmt"
	"strings"

	"github.com/akulikoff/treeStore/lexer"
)

// Serialize transforms a [Store]'s forest into a string.
//
// Each Record key is followed by its children's serialization & an end
// marker; root subtrees are concatenated in [Store.Roots] order. Unreachable
// Records (dangling parent references) are omitted, exactly as they are from
// traversal.
func (s *Store[T, R]) Serialize(ctx context.Context, cfg *lexer.Config) (output string, err error) {
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		cfg.Validate()

		serChan := make(chan string)
		go func() {
			defer close(serChan)

			for _, root := range s.Roots(ctx) {
				s.serialize(ctx, cfg, root, serChan)
			}
		}()

		// Handle the first root.
		fVal, fProceed := <-serChan
		if !fProceed {
			return
		}
		var buffer strings.Builder
		if _, err = buffer.WriteString(fVal); err != nil {
			// Invalidate serialization output.
			return
		}

		for {
			val, proceed := <-serChan
			if !proceed {
				break
			}

			if val != string(cfg.EndMarker) {
				if _, err = buffer.WriteString(string(cfg.Splitter)); err != nil {
					return
				}
			}
			if _, err = buffer.WriteString(val); err != nil {
				// Invalidate serialization output.
				return
			}
		}

		output = buffer.String()
	}

	return
}

// serialize performs the serialization grunt work for one subtree.
//
// The children lists are insertion ordered, keeping the output deterministic
// without a sort pass.
func (s *Store[T, R]) serialize(ctx context.Context, cfg *lexer.Config, record R, serChan chan string) {
	serChan <- fmt.Sprint(record.ID())

	for _, child := range s.children[record.ID()] {
		select {
		case <-ctx.Done():
			return
		default:
			s.serialize(ctx, cfg, child, serChan)
		}
	}
	serChan <- string(cfg.EndMarker)
}
