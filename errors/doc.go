/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package errors defines the error taxonomy for collectionstore.

Each failure mode of the create pipeline has a typed error carrying the
context a caller needs, plus a package-level sentinel usable with errors.Is:

	record, err := users.Create(values).Exec(ctx)
	if errors.IsValidation(err) {
	    // rejected before any write
	}
	if errors.IsNestedLink(err) {
	    // parent row committed, child linkage failed; no rollback was made
	}

The split between pre-write errors (configuration, validation, association
resolution, before-hook) and post-write errors (nested link, after-hook)
matters because the pipeline offers no transactional guarantee across
storage calls: a post-write error leaves the parent row durably persisted.
*/
package errors
