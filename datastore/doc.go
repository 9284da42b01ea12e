/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package datastore defines the storage adapter contract for collectionstore.

The Adapter interface is deliberately narrow: the create pipeline needs a
write (Create), a keyed write for belongsTo upserts (Upsert), and a keyed
read (Get). Records cross the boundary as column-keyed map[string]any —
attribute-name translation is finished before an adapter ever sees a record.

Implementations:
  - ddb: DynamoDB adapter built on aws-sdk-go-v2
  - mock: in-memory adapter with call counting and error injection for tests
*/
package datastore
