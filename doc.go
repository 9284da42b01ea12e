/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package collectionstore is the translation and orchestration layer between a
logical data model (named, typed attributes with associations) and a storage
adapter's physical representation (named columns, untyped payloads).

A Collection is bootstrapped once from attribute declarations; that builds
its immutable attribute ↔ column transformer. Registered collections resolve
each other through a Registry for association work.

Creating a record is one logical operation spanning several storage calls:

	registry := collectionstore.NewRegistry()

	users, _ := collectionstore.New(collectionstore.Config{
	    Identity: "user",
	    Attributes: schema.Declarations{
	        "fullName": map[string]any{"type": "string", "columnName": "full_name"},
	        "owner":    map[string]any{"belongsTo": "organization"},
	        "pets":     map[string]any{"hasMany": "pet", "via": "owner"},
	    },
	    Adapter: adapter,
	})
	registry.Register(users)

	record, err := users.Create(map[string]any{
	    "fullName": "Ada",
	    "owner":    map[string]any{"name": "Initech"},
	}).Exec(ctx)

The pipeline applies defaults, extracts nested association payloads,
resolves belongsTo targets concurrently before the parent write, runs
validation and the before-create hook, persists through the adapter under
column names, links hasMany children with the parent's new primary key, runs
the after-create hook, and hands back a hydrated Record.

There is no transaction spanning those storage calls: a failure after the
parent write (nested linkage, after hook) surfaces to the caller while the
parent row stays persisted. The error taxonomy in the errors package makes
that boundary explicit.
*/
package collectionstore
