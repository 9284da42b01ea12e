/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import "context"

// Adapter persists column-keyed records on behalf of one collection. The
// pipeline hands adapters fully serialized records: every key is a physical
// column name and every value has already been cast.
//
// Adapters do not retry; retry policy belongs to the adapter's own client
// configuration or to the caller.
type Adapter interface {
	// Create persists a new record and returns the stored record, including
	// any storage-assigned key fields.
	Create(ctx context.Context, record map[string]any) (map[string]any, error)

	// Upsert persists a record under the given primary-key column value,
	// creating it when absent.
	Upsert(ctx context.Context, keyColumn string, key any, record map[string]any) (map[string]any, error)

	// Get retrieves a record by primary-key column value. A missing record
	// yields (nil, nil).
	Get(ctx context.Context, keyColumn string, key any) (map[string]any, error)
}
