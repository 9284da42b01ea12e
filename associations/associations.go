/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package associations

import (
	"context"

	"github.com/suparena/collectionstore/schema"
)

// ValuesObject is the working set of one create call: the flat values plus
// the nested association payloads split out of them. It is created at call
// start, owned exclusively by that call, and discarded at call end.
type ValuesObject struct {
	// Values holds the flat attribute-keyed values destined for the parent
	// record.
	Values map[string]any
	// Models holds object-shaped belongsTo candidates by attribute.
	Models map[string]map[string]any
	// Collections holds hasMany candidate sequences by attribute.
	Collections map[string][]map[string]any
}

// Pending is the placeholder standing in for a belongsTo value until its
// target record is resolved.
type Pending struct {
	Attribute string
}

// Sibling is the narrow view of a registered collection the association
// machinery needs: identity, primary key, and value-level create/upsert.
type Sibling interface {
	Identity() string
	PrimaryKey() string
	CreateValues(ctx context.Context, values map[string]any) (map[string]any, error)
	UpsertValues(ctx context.Context, key any, values map[string]any) (map[string]any, error)
}

// Resolver looks up sibling collections by identity.
type Resolver interface {
	Collection(identity string) (Sibling, error)
}

// Extract splits nested association payloads out of candidate values.
// Object-shaped belongsTo values move to Models; sequences (or a single
// object) under a hasMany attribute move to Collections. A bare foreign-key
// value under a belongsTo attribute is not nested and stays in Values.
func Extract(attrs map[string]*schema.Attribute, values map[string]any) *ValuesObject {
	vo := &ValuesObject{
		Values:      make(map[string]any, len(values)),
		Models:      make(map[string]map[string]any),
		Collections: make(map[string][]map[string]any),
	}

	for k, v := range values {
		attr, declared := attrs[k]
		if !declared || v == nil {
			vo.Values[k] = v
			continue
		}

		switch {
		case attr.BelongsTo != "":
			if payload, ok := v.(map[string]any); ok {
				vo.Models[k] = payload
				continue
			}
			vo.Values[k] = v

		case attr.HasMany != "":
			if payloads, ok := collectionPayloads(v); ok {
				vo.Collections[k] = payloads
				continue
			}
			vo.Values[k] = v

		default:
			vo.Values[k] = v
		}
	}
	return vo
}

func collectionPayloads(v any) ([]map[string]any, bool) {
	switch tv := v.(type) {
	case []map[string]any:
		return tv, true
	case []any:
		out := make([]map[string]any, 0, len(tv))
		for _, e := range tv {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, false
			}
			out = append(out, m)
		}
		return out, true
	case map[string]any:
		return []map[string]any{tv}, true
	}
	return nil, false
}

// ReduceToForeignKeys plants a Pending placeholder in Values for every
// extracted belongsTo payload. Resolution substitutes each placeholder with
// the target's primary-key value before the parent write.
func ReduceToForeignKeys(vo *ValuesObject) {
	for name := range vo.Models {
		vo.Values[name] = Pending{Attribute: name}
	}
}
