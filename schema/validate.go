/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"time"

	"github.com/suparena/collectionstore/errors"
)

// Validate checks candidate values against the declared attributes. It runs
// after casting, so a type mismatch here means the value was not coercible.
func Validate(attrs map[string]*Attribute, values map[string]any) error {
	for name, attr := range attrs {
		v, present := values[name]

		if attr.Required && (!present || v == nil) {
			return errors.NewValidationError(name, "required attribute is missing")
		}
		if !present || v == nil || attr.IsAssociation() {
			continue
		}

		switch attr.Type {
		case TypeString:
			if _, ok := v.(string); !ok {
				return errors.NewValidationError(name, fmt.Sprintf("expected string, got %T", v))
			}
		case TypeNumber:
			if !isNumeric(v) {
				return errors.NewValidationError(name, fmt.Sprintf("expected number, got %T", v))
			}
		case TypeBoolean:
			if _, ok := v.(bool); !ok {
				return errors.NewValidationError(name, fmt.Sprintf("expected boolean, got %T", v))
			}
		case TypeDate, TypeDateTime:
			switch v.(type) {
			case time.Time, string:
			default:
				return errors.NewValidationError(name, fmt.Sprintf("expected date or date string, got %T", v))
			}
		case TypeBinary:
			if _, ok := v.([]byte); !ok {
				return errors.NewValidationError(name, fmt.Sprintf("expected binary payload, got %T", v))
			}
		}
	}
	return nil
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}
