/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package hooks defines the lifecycle hook points a collection runs around
// a create call.
package hooks

import "context"

// Hook runs at one lifecycle point against the candidate values of a create
// call. Returning an error aborts the pipeline at that point: validate and
// beforeCreate failures block the write, an afterCreate failure surfaces to
// the caller after the row is already committed.
type Hook func(ctx context.Context, values map[string]any) error

// Set groups the lifecycle hooks of one collection. A nil Set or nil hook
// is a no-op.
type Set struct {
	Validate     Hook
	BeforeCreate Hook
	AfterCreate  Hook
}

// RunValidate invokes the validation hook, if any.
func (s *Set) RunValidate(ctx context.Context, values map[string]any) error {
	if s == nil || s.Validate == nil {
		return nil
	}
	return s.Validate(ctx, values)
}

// RunBeforeCreate invokes the before-create hook, if any.
func (s *Set) RunBeforeCreate(ctx context.Context, values map[string]any) error {
	if s == nil || s.BeforeCreate == nil {
		return nil
	}
	return s.BeforeCreate(ctx, values)
}

// RunAfterCreate invokes the after-create hook, if any.
func (s *Set) RunAfterCreate(ctx context.Context, values map[string]any) error {
	if s == nil || s.AfterCreate == nil {
		return nil
	}
	return s.AfterCreate(ctx, values)
}
