/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import "github.com/google/uuid"

// Default is a tagged default value: either a literal or a factory evaluated
// against the candidate input of the create call.
type Default struct {
	literal   any
	factory   func(values map[string]any) any
	isFactory bool
}

// Literal creates a Default that yields a fixed value. The value is
// deep-copied on every application, except binary payloads which are carried
// by reference.
func Literal(v any) *Default {
	return &Default{literal: v}
}

// Factory creates a Default whose value is computed from the candidate input.
func Factory(fn func(values map[string]any) any) *Default {
	return &Default{factory: fn, isFactory: true}
}

// UUID is a factory default producing a fresh UUID string per record.
func UUID() *Default {
	return Factory(func(map[string]any) any {
		return uuid.NewString()
	})
}

// Value produces the default for one create call. The supplied values are the
// candidate input; factories receive them as their evaluation context.
func (d *Default) Value(values map[string]any) any {
	if d.isFactory {
		return d.factory(values)
	}
	return copyDefault(d.literal)
}

// copyDefault deep-copies maps and slices so records never alias a shared
// literal. Binary payloads are the exception: they pass by reference.
func copyDefault(v any) any {
	switch tv := v.(type) {
	case []byte:
		return tv
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = copyDefault(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = copyDefault(e)
		}
		return out
	default:
		return v
	}
}
