/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/suparena/collectionstore/errors"
)

// Cast coerces candidate values toward their declared primitive types using
// weakly typed decoding, so numeric-looking text becomes a number and "true"
// becomes a boolean. Values are rewritten in place.
//
// Only scalar values of string/number/boolean attributes are touched.
// Associations, dates, json and binary payloads pass through unchanged;
// dates are the transformer's concern.
func Cast(attrs map[string]*Attribute, values map[string]any) error {
	for name, attr := range attrs {
		v, ok := values[name]
		if !ok || v == nil || attr.IsAssociation() {
			continue
		}
		if !isScalar(v) {
			continue
		}

		switch attr.Type {
		case TypeNumber:
			var out float64
			if err := weakDecode(v, &out); err != nil {
				return errors.NewValidationError(name, fmt.Sprintf("cannot cast %v to number", v))
			}
			values[name] = out
		case TypeBoolean:
			var out bool
			if err := weakDecode(v, &out); err != nil {
				return errors.NewValidationError(name, fmt.Sprintf("cannot cast %v to boolean", v))
			}
			values[name] = out
		case TypeString:
			var out string
			if err := weakDecode(v, &out); err != nil {
				return errors.NewValidationError(name, fmt.Sprintf("cannot cast %v to string", v))
			}
			values[name] = out
		}
	}
	return nil
}

func weakDecode(in, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
