// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLexer_Lex(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		opts      []Option
		wantItems []ItemID
		wantKeys  int
		wantEnds  int
	}{
		{
			name:      "valid",
			src:       "2,3))",
			wantItems: []ItemID{ItemKey, ItemSplitter, ItemKey, ItemEndMarker, ItemEndMarker},
			wantKeys:  2,
			wantEnds:  2,
		},
		{
			name:      "valid (whitespace)",
			src:       " a ,\tb-2 )) ",
			wantItems: []ItemID{ItemKey, ItemSplitter, ItemKey, ItemEndMarker, ItemEndMarker},
			wantKeys:  2,
			wantEnds:  2,
		},
		{
			name:      "valid (custom markers)",
			src:       "2;3>>",
			opts:      []Option{WithSplitter(';'), WithEndMarker('>')},
			wantItems: []ItemID{ItemKey, ItemSplitter, ItemKey, ItemEndMarker, ItemEndMarker},
			wantKeys:  2,
			wantEnds:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(append(tt.opts, WithSource(strings.NewReader(tt.src)))...)
			go l.Lex(context.Background())

			gotItems := make([]ItemID, 0, len(tt.wantItems))
			for {
				item, proceed := l.Item()
				if !proceed || item.ID == ItemEOF {
					break
				}

				gotItems = append(gotItems, item.ID)
			}

			if !reflect.DeepEqual(gotItems, tt.wantItems) {
				t.Errorf("Lexer.Lex() items = %v, want %v", gotItems, tt.wantItems)
			}
			if l.KeyCounter() != tt.wantKeys {
				t.Errorf("Lexer.KeyCounter() = %d, want %d", l.KeyCounter(), tt.wantKeys)
			}
			if l.EndCounter() != tt.wantEnds {
				t.Errorf("Lexer.EndCounter() = %d, want %d", l.EndCounter(), tt.wantEnds)
			}
		})
	}
}

func BenchmarkLexer_Lex(b *testing.B) {
	src := "2,3,4))"

	logger := logrus.New()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(WithLogger(logger), WithSource(strings.NewReader(src)))
		b.StartTimer()

		go l.Lex(ctx)

		for {
			if item, proceed := l.Item(); !proceed || item.ID == ItemEOF {
				break
			}
		}
	}
}
