/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package storagemodels defines the query-facing types shared between the
attribute transformer and storage adapters.

The central type is Criteria with its tagged Where tree. The tree has three
node kinds — And, Or and Leaf — instead of an untyped nested map, so code
walking it can switch on Kind rather than sniff for magic keys. Leaf values
remain untyped: a leaf may compare against a bare value or an operator map
like map[string]any{">=": 18, "<": 65}.
*/
package storagemodels
