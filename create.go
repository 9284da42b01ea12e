/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collectionstore

import (
	"context"
	"sync"
	"time"

	"github.com/suparena/collectionstore/associations"
	"github.com/suparena/collectionstore/errors"
	"github.com/suparena/collectionstore/schema"
)

// CreateOp is the lazy handle for one create call. Nothing executes until
// Exec is called; an abandoned handle simply never begins. Exec runs the
// pipeline at most once and every later call returns the same outcome.
//
// Once started, the call runs to completion or failure. There is no internal
// cancellation beyond the supplied context, which is threaded unchanged
// through every adapter and collaborator call.
type CreateOp struct {
	c      *Collection
	input  map[string]any
	once   sync.Once
	record *Record
	err    error
}

// Create prepares a create call for a single attribute-keyed value object.
func (c *Collection) Create(values map[string]any) *CreateOp {
	return &CreateOp{c: c, input: values}
}

// Exec runs the pipeline and delivers the hydrated record or the first error
// encountered. Exactly one of the results is non-nil.
func (op *CreateOp) Exec(ctx context.Context) (*Record, error) {
	op.once.Do(func() {
		op.record, op.err = op.c.create(ctx, op.input)
	})
	return op.record, op.err
}

// CreateEach creates one record per input element, in order. Nil entries are
// dropped rather than passed through as empty records. The first failure
// aborts the remainder; records created before it stay persisted.
func (c *Collection) CreateEach(ctx context.Context, inputs []map[string]any) ([]*Record, error) {
	records := make([]*Record, 0, len(inputs))
	for _, input := range inputs {
		if input == nil {
			continue
		}
		record, err := c.Create(input).Exec(ctx)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// create is the pipeline body: process values, resolve belongsTo, run the
// before hooks, persist, link hasMany children, run the after hook, hydrate.
// The first error at any step aborts all remaining steps.
func (c *Collection) create(ctx context.Context, input map[string]any) (*Record, error) {
	if input == nil {
		input = map[string]any{}
	}

	// ProcessValues: apply defaults for absent or explicitly unset
	// attributes, split out association payloads, plant foreign-key
	// placeholders, then cast scalar values to their declared types.
	values := make(map[string]any, len(input))
	for k, v := range input {
		values[k] = v
	}
	for name, attr := range c.attrs {
		if attr.Default == nil {
			continue
		}
		if v, ok := values[name]; !ok || v == nil {
			values[name] = attr.Default.Value(input)
		}
	}

	vo := associations.Extract(c.attrs, values)
	associations.ReduceToForeignKeys(vo)

	if err := schema.Cast(c.attrs, vo.Values); err != nil {
		return nil, err
	}

	// ResolveBelongsTo: concurrent, fail-fast. Validation never starts
	// before every resolution has completed or the first one has failed.
	if err := associations.ResolveBelongsTo(ctx, c.identity, c.resolver(), c.attrs, c.transformer.AttributeName, vo); err != nil {
		return nil, err
	}

	// BeforeHooks: field validation, then the before-create hook, strictly
	// in that order. Either failing means no write is attempted.
	if err := schema.Validate(c.attrs, vo.Values); err != nil {
		return nil, err
	}
	if err := c.hooks.RunValidate(ctx, vo.Values); err != nil {
		return nil, errors.NewHookError("validate", c.identity, err)
	}
	if err := c.hooks.RunBeforeCreate(ctx, vo.Values); err != nil {
		return nil, errors.NewHookError("beforeCreate", c.identity, err)
	}

	// Persist: stamp timestamps the input did not supply, strip undeclared
	// attributes, transform to column names, write.
	if c.timestamps {
		now := time.Now().UTC()
		if v, ok := vo.Values[CreatedAtAttribute]; !ok || v == nil {
			vo.Values[CreatedAtAttribute] = now
		}
		if v, ok := vo.Values[UpdatedAtAttribute]; !ok || v == nil {
			vo.Values[UpdatedAtAttribute] = now
		}
	}
	for k := range vo.Values {
		if _, declared := c.attrs[k]; !declared {
			delete(vo.Values, k)
		}
	}

	serialized, _ := c.transformer.SerializeValues(vo.Values).(map[string]any)
	row, err := c.adapter.Create(ctx, serialized)
	if err != nil {
		return nil, errors.NewAdapterError(c.identity, err)
	}

	// Reflect & Link: reverse-transform the stored row, then create the
	// hasMany children with the parent's now-known primary key.
	reflected := c.transformer.Unserialize(row)

	var associated map[string][]*Record
	if len(vo.Collections) > 0 {
		linked, err := associations.Link(ctx, c.identity, c.resolver(), c.attrs, reflected[c.primaryKey], vo)
		if err != nil {
			// The parent row is already committed; no rollback happens.
			return nil, err
		}

		associated = make(map[string][]*Record, len(linked))
		for name, children := range linked {
			target, err := c.registry.Lookup(c.attrs[name].HasMany)
			if err != nil {
				return nil, errors.NewNestedLinkError(c.identity, name, err)
			}
			records := make([]*Record, len(children))
			for i, child := range children {
				records[i] = newRecord(target.identity, target.primaryKey, child, nil)
			}
			associated[name] = records
			// Re-flatten the associated view so the after hook sees it.
			reflected[name] = children
		}
	}

	// AfterHooks: a failure here surfaces even though the row is durable.
	if err := c.hooks.RunAfterCreate(ctx, reflected); err != nil {
		return nil, errors.NewHookError("afterCreate", c.identity, err)
	}

	return newRecord(c.identity, c.primaryKey, reflected, associated), nil
}
