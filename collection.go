/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collectionstore

import (
	"context"
	"fmt"

	"github.com/suparena/collectionstore/associations"
	"github.com/suparena/collectionstore/datastore"
	"github.com/suparena/collectionstore/errors"
	"github.com/suparena/collectionstore/hooks"
	"github.com/suparena/collectionstore/schema"
	"github.com/suparena/collectionstore/storagemodels"
	"github.com/suparena/collectionstore/transform"
)

// Timestamp attribute names stamped on create when Config.Timestamps is set.
const (
	CreatedAtAttribute = "createdAt"
	UpdatedAtAttribute = "updatedAt"
)

// Config bootstraps one Collection.
type Config struct {
	// Identity names the collection; siblings reference it by this name.
	Identity string
	// PrimaryKey is the attribute storage assigns on create. Default "id".
	PrimaryKey string
	// Attributes are the raw attribute declarations.
	Attributes schema.Declarations
	// Timestamps enables createdAt/updatedAt stamping on create.
	Timestamps bool
	// Adapter is the storage backend for this collection.
	Adapter datastore.Adapter
	// Hooks are the lifecycle hooks run around each create.
	Hooks *hooks.Set
}

// Collection binds a logical schema to a storage adapter. Bootstrap builds
// the attribute transformer once; afterward the collection is immutable and
// safe for unlimited concurrent create calls.
type Collection struct {
	identity    string
	primaryKey  string
	timestamps  bool
	attrs       map[string]*schema.Attribute
	transformer *transform.Transformer
	adapter     datastore.Adapter
	hooks       *hooks.Set
	registry    *Registry
}

// New bootstraps a Collection from its configuration. Declaration problems
// (a non-textual columnName, colliding column mappings, unknown types)
// surface here as ConfigurationError and never at call time.
func New(cfg Config) (*Collection, error) {
	if cfg.Identity == "" {
		return nil, errors.NewConfigurationError("", "collection identity is required")
	}
	if cfg.Adapter == nil {
		return nil, errors.NewConfigurationError("", fmt.Sprintf("collection %q has no adapter", cfg.Identity))
	}

	decls := cfg.Attributes
	if decls == nil {
		decls = schema.Declarations{}
	}
	if cfg.Timestamps {
		decls = withTimestampDeclarations(decls)
	}

	transformer, err := transform.Build(decls)
	if err != nil {
		return nil, err
	}

	pk := cfg.PrimaryKey
	if pk == "" {
		pk = "id"
	}

	return &Collection{
		identity:    cfg.Identity,
		primaryKey:  pk,
		timestamps:  cfg.Timestamps,
		attrs:       transformer.Attributes(),
		transformer: transformer,
		adapter:     cfg.Adapter,
		hooks:       cfg.Hooks,
	}, nil
}

func withTimestampDeclarations(decls schema.Declarations) schema.Declarations {
	out := make(schema.Declarations, len(decls)+2)
	for k, v := range decls {
		out[k] = v
	}
	if _, ok := out[CreatedAtAttribute]; !ok {
		out[CreatedAtAttribute] = string(schema.TypeDateTime)
	}
	if _, ok := out[UpdatedAtAttribute]; !ok {
		out[UpdatedAtAttribute] = string(schema.TypeDateTime)
	}
	return out
}

// Identity returns the collection's name.
func (c *Collection) Identity() string { return c.identity }

// PrimaryKey returns the primary-key attribute name.
func (c *Collection) PrimaryKey() string { return c.primaryKey }

// Transformer exposes the collection's attribute transformer.
func (c *Collection) Transformer() *transform.Transformer { return c.transformer }

// Attributes exposes the normalized attribute declarations.
func (c *Collection) Attributes() map[string]*schema.Attribute { return c.attrs }

// SerializeCriteria rewrites a criteria's attribute names to column names.
func (c *Collection) SerializeCriteria(criteria *storagemodels.Criteria) *storagemodels.Criteria {
	return c.transformer.SerializeCriteria(criteria)
}

// Unserialize maps a column-keyed row back to attribute keys.
func (c *Collection) Unserialize(row map[string]any) map[string]any {
	return c.transformer.Unserialize(row)
}

// FindByKey retrieves and hydrates one record by primary-key value.
// A missing record yields (nil, nil).
func (c *Collection) FindByKey(ctx context.Context, key any) (*Record, error) {
	row, err := c.adapter.Get(ctx, c.transformer.ColumnName(c.primaryKey), key)
	if err != nil {
		return nil, errors.NewAdapterError(c.identity, err)
	}
	if row == nil {
		return nil, nil
	}
	return newRecord(c.identity, c.primaryKey, c.transformer.Unserialize(row), nil), nil
}

// CreateValues implements associations.Sibling: it runs the full create
// pipeline of this collection and returns the hydrated values.
func (c *Collection) CreateValues(ctx context.Context, values map[string]any) (map[string]any, error) {
	record, err := c.Create(values).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return record.Values(), nil
}

// UpsertValues implements associations.Sibling with an adapter-level put
// keyed on the supplied primary-key value. The payload already identifies an
// existing record, so defaults and lifecycle hooks do not run here.
func (c *Collection) UpsertValues(ctx context.Context, key any, values map[string]any) (map[string]any, error) {
	declared := make(map[string]any, len(values))
	for k, v := range values {
		if _, ok := c.attrs[k]; ok {
			declared[k] = v
		}
	}

	serialized, _ := c.transformer.SerializeValues(declared).(map[string]any)
	row, err := c.adapter.Upsert(ctx, c.transformer.ColumnName(c.primaryKey), key, serialized)
	if err != nil {
		return nil, errors.NewAdapterError(c.identity, err)
	}
	return c.transformer.Unserialize(row), nil
}

// resolver returns the association resolver for this collection.
func (c *Collection) resolver() associations.Resolver {
	if c.registry != nil {
		return c.registry
	}
	return detachedResolver{identity: c.identity}
}

// detachedResolver rejects every lookup; a collection must be registered
// before its associations can resolve siblings.
type detachedResolver struct {
	identity string
}

func (d detachedResolver) Collection(string) (associations.Sibling, error) {
	return nil, fmt.Errorf("collection %q is not attached to a registry", d.identity)
}
