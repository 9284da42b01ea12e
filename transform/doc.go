/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package transform implements the attribute ↔ column translation layer that
sits between a collection's logical schema and its storage adapter.

A Transformer is built once per collection from its attribute declarations
and only holds entries where the column name differs from the attribute
name. It offers three serialize contracts:

  - SerializeCriteria rewrites a full query: projection and aggregation
    lists, sort keys, and the And/Or/Leaf predicate tree. json-typed leaf
    values are opaque and never traversed.
  - SerializeSchema renames top-level keys only, for flat column-keyed
    snapshots.
  - SerializeValues recursively renames matching keys through an arbitrary
    value tree, as used for creation payloads and nested association
    sub-objects.

Unserialize is the inverse direction, driven by the same forward map. For a
record of non-date primitive values the round trip is exact; textual date
values are parsed into time.Time on the way in and are not formatted back.
*/
package transform
