/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transform

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/collectionstore/schema"
)

// castDate parses textual values of date/datetime attributes into time.Time.
// The cast is one-directional: already-parsed values and unparseable text
// pass through unchanged, and no formatting back to text ever happens here.
func castDate(typ schema.AttributeType, v any) any {
	if typ != schema.TypeDate && typ != schema.TypeDateTime {
		return v
	}
	s, ok := v.(string)
	if !ok {
		return v
	}
	if dt, err := strfmt.ParseDateTime(s); err == nil {
		return time.Time(dt)
	}
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err == nil {
		return time.Time(d)
	}
	return v
}
