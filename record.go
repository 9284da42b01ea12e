/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collectionstore

// Record is the hydrated, in-memory view of a persisted row. The durable
// state belongs to the storage adapter; a Record is a read-only snapshot
// bound to the call that produced it.
type Record struct {
	collection string
	primaryKey string
	values     map[string]any
	associated map[string][]*Record
}

func newRecord(collection, primaryKey string, values map[string]any, associated map[string][]*Record) *Record {
	return &Record{
		collection: collection,
		primaryKey: primaryKey,
		values:     values,
		associated: associated,
	}
}

// Collection returns the identity of the owning collection.
func (r *Record) Collection() string { return r.collection }

// Get returns one attribute's value.
func (r *Record) Get(attribute string) any {
	return r.values[attribute]
}

// PrimaryKey returns the storage-assigned primary-key value.
func (r *Record) PrimaryKey() any {
	return r.values[r.primaryKey]
}

// Values returns a copy of the attribute-keyed values.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Associated returns the records linked under a hasMany attribute during the
// create that produced this record.
func (r *Record) Associated(attribute string) []*Record {
	return r.associated[attribute]
}
