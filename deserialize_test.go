// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/akulikoff/treeStore/lexer"
)

func TestDeserialize(t *testing.T) {
	type args struct {
		ctx  context.Context
		opts []lexer.Option
	}

	logger := logrus.New()

	tests := []struct {
		name        string
		args        args
		wantRecords []DefaultRecord[int]
		wantErr     bool
	}{
		{
			name: "valid",
			args: args{
				context.Background(),
				[]lexer.Option{lexer.WithLogger(logger), lexer.WithSource(strings.NewReader("2,3))"))},
			},
			wantRecords: []DefaultRecord[int]{
				{Key: 2},
				{Key: 3, Parent: 2},
			},
			// wantErr: true,
		},
		{
			name: "valid (excessive whitespace)",
			args: args{
				context.Background(),
				[]lexer.Option{lexer.WithLogger(logger), lexer.WithSource(strings.NewReader(" 2 ,     3 )    )         "))},
			},
			wantRecords: []DefaultRecord[int]{
				{Key: 2},
				{Key: 3, Parent: 2},
			},
			// wantErr: true,
		},
		{
			name: "valid (forest)",
			args: args{
				context.Background(),
				[]lexer.Option{lexer.WithLogger(logger), lexer.WithSource(strings.NewReader("1,2)),3)"))},
			},
			wantRecords: []DefaultRecord[int]{
				{Key: 1},
				{Key: 2, Parent: 1},
				{Key: 3},
			},
			// wantErr: true,
		},
		{
			name: "invalid (missing end marker)",
			args: args{
				context.Background(),
				[]lexer.Option{lexer.WithLogger(logger), lexer.WithSource(strings.NewReader("2,3,4))"))},
			},
			wantRecords: []DefaultRecord[int]{
				{Key: 2},
				{Key: 3, Parent: 2},
				{Key: 4, Parent: 3},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotS, err := Deserialize[int](tt.args.ctx, tt.args.opts...)
			if (err != nil) != tt.wantErr {
				t.Errorf("Deserialize() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			gotRecords := []DefaultRecord[int](gotS.All(tt.args.ctx))
			if !reflect.DeepEqual(gotRecords, tt.wantRecords) {
				t.Errorf("Deserialize() = %v, want %v", gotRecords, tt.wantRecords)
			}
		})
	}
}

func TestDeserialize_roundTrip(t *testing.T) {
	ctx := context.Background()

	s := New[string, DefaultRecord[string]](ctx, []DefaultRecord[string]{
		{Key: "a"},
		{Key: "b", Parent: "a"},
		{Key: "c", Parent: "b"},
		{Key: "d", Parent: "a"},
	})

	output, err := s.Serialize(ctx, lexer.NewConfig())
	if err != nil {
		t.Fatalf("Store.Serialize() error = %v", err)
	}

	gotS, err := Deserialize[string](ctx, lexer.WithSource(strings.NewReader(output)))
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	if !reflect.DeepEqual(gotS.All(ctx), s.All(ctx)) {
		t.Errorf("Deserialize() = %v, want %v", gotS.All(ctx), s.All(ctx))
	}
}
