/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hooks

import (
	"context"
	"fmt"
	"testing"
)

func TestNilSetIsNoOp(t *testing.T) {
	var s *Set

	if err := s.RunValidate(context.Background(), nil); err != nil {
		t.Errorf("nil set should be a no-op, got %v", err)
	}
	if err := s.RunBeforeCreate(context.Background(), nil); err != nil {
		t.Errorf("nil set should be a no-op, got %v", err)
	}
	if err := s.RunAfterCreate(context.Background(), nil); err != nil {
		t.Errorf("nil set should be a no-op, got %v", err)
	}
}

func TestPartialSetRunsOnlyConfiguredHooks(t *testing.T) {
	called := 0
	s := &Set{
		BeforeCreate: func(ctx context.Context, values map[string]any) error {
			called++
			return nil
		},
	}

	if err := s.RunValidate(context.Background(), nil); err != nil {
		t.Errorf("unset hook should be a no-op, got %v", err)
	}
	if err := s.RunBeforeCreate(context.Background(), nil); err != nil {
		t.Errorf("RunBeforeCreate failed: %v", err)
	}
	if called != 1 {
		t.Errorf("expected one invocation, got %d", called)
	}
}

func TestHookErrorsPropagate(t *testing.T) {
	want := fmt.Errorf("rejected")
	s := &Set{AfterCreate: func(ctx context.Context, values map[string]any) error { return want }}

	if err := s.RunAfterCreate(context.Background(), nil); err != want {
		t.Errorf("expected the hook's error, got %v", err)
	}
}
