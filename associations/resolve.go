/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package associations

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/suparena/collectionstore/errors"
	"github.com/suparena/collectionstore/schema"
)

// ResolveBelongsTo resolves every extracted belongsTo payload against its
// target collection: an upsert when the payload carries the target's primary
// key, a plain create otherwise. Resolutions run concurrently and fail fast;
// only the first error surfaces, and results of losing branches are
// discarded. On success each Pending placeholder in vo.Values is replaced by
// the resolved record's primary-key value.
//
// The fan-out width is bounded by the number of belongsTo attributes on the
// collection, so no additional backpressure is applied.
//
// reverse maps a column-rewritten key back to its attribute name, used when
// the payload's key no longer matches a declared attribute.
func ResolveBelongsTo(ctx context.Context, identity string, res Resolver, attrs map[string]*schema.Attribute, reverse func(string) string, vo *ValuesObject) error {
	if len(vo.Models) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	for name, payload := range vo.Models {
		name, payload := name, payload
		g.Go(func() error {
			attr, ok := attrs[name]
			if !ok && reverse != nil {
				attr, ok = attrs[reverse(name)]
			}
			if !ok || attr.BelongsTo == "" {
				return errors.NewAssociationResolutionError(identity, name,
					fmt.Errorf("no belongsTo declaration for attribute"))
			}

			sibling, err := res.Collection(attr.BelongsTo)
			if err != nil {
				return errors.NewAssociationResolutionError(identity, name, err)
			}

			pk := sibling.PrimaryKey()
			var resolved map[string]any
			if keyValue, has := payload[pk]; has && keyValue != nil {
				resolved, err = sibling.UpsertValues(gctx, keyValue, payload)
			} else {
				resolved, err = sibling.CreateValues(gctx, payload)
			}
			if err != nil {
				return errors.NewAssociationResolutionError(identity, name, err)
			}

			mu.Lock()
			vo.Values[name] = resolved[pk]
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// Link creates the hasMany children of a freshly persisted parent. Each
// association attribute fans out to its target collection; within one
// attribute the children are created in input order so the returned slices
// line up with the payloads. The parent's primary key lands on each child
// under the association's via attribute.
//
// An error here means the parent row is already committed; the first failure
// surfaces as a NestedLinkError and no compensating delete is attempted.
func Link(ctx context.Context, identity string, res Resolver, attrs map[string]*schema.Attribute, parentKey any, vo *ValuesObject) (map[string][]map[string]any, error) {
	if len(vo.Collections) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	linked := make(map[string][]map[string]any, len(vo.Collections))
	var mu sync.Mutex

	for name, payloads := range vo.Collections {
		name, payloads := name, payloads
		g.Go(func() error {
			attr, ok := attrs[name]
			if !ok || attr.HasMany == "" {
				return errors.NewNestedLinkError(identity, name,
					fmt.Errorf("no hasMany declaration for attribute"))
			}

			sibling, err := res.Collection(attr.HasMany)
			if err != nil {
				return errors.NewNestedLinkError(identity, name, err)
			}

			children := make([]map[string]any, len(payloads))
			for i, payload := range payloads {
				child := make(map[string]any, len(payload)+1)
				for k, v := range payload {
					child[k] = v
				}
				child[attr.Via] = parentKey

				created, err := sibling.CreateValues(gctx, child)
				if err != nil {
					return errors.NewNestedLinkError(identity, name, err)
				}
				children[i] = created
			}

			mu.Lock()
			linked[name] = children
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return linked, nil
}
