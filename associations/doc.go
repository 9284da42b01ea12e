/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package associations implements the association legs of the create pipeline:
extracting nested payloads out of candidate values, resolving belongsTo
references before the parent write, and linking hasMany children after it.

Both fan-outs use structured concurrency (errgroup): one goroutine per
association attribute, joined before the pipeline moves on, with the first
failure winning and remaining results discarded. belongsTo resolution always
completes — success or first failure — before validation runs; hasMany
linkage always completes before the after-create hook runs.
*/
package associations
