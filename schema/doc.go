/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package schema holds attribute declarations and the operations the create
pipeline needs against them: normalization of raw declarations, default
application, weakly typed casting and value validation.

A collection's schema starts life as Declarations, where each attribute is
either a shorthand type name or a full declaration:

	decls := schema.Declarations{
	    "id":       map[string]any{"type": "string", "defaultsTo": schema.UUID()},
	    "fullName": map[string]any{"type": "string", "columnName": "full_name"},
	    "age":      "number",
	    "owner":    map[string]any{"belongsTo": "organization"},
	    "pets":     map[string]any{"hasMany": "pet", "via": "owner"},
	}

Normalize turns these into Attribute values and is the single place where a
malformed declaration (a non-textual columnName, an unknown type) fails —
synchronously, at bootstrap, never during a create call.
*/
package schema
