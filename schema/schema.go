/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"reflect"

	"github.com/suparena/collectionstore/errors"
)

// AttributeType is the primitive type tag of an attribute.
type AttributeType string

const (
	TypeString   AttributeType = "string"
	TypeNumber   AttributeType = "number"
	TypeBoolean  AttributeType = "boolean"
	TypeDate     AttributeType = "date"
	TypeDateTime AttributeType = "datetime"
	TypeJSON     AttributeType = "json"
	TypeBinary   AttributeType = "binary"
)

// ParseType returns the AttributeType for a shorthand type name.
func ParseType(s string) (AttributeType, bool) {
	switch AttributeType(s) {
	case TypeString, TypeNumber, TypeBoolean, TypeDate, TypeDateTime, TypeJSON, TypeBinary:
		return AttributeType(s), true
	}
	return "", false
}

// Attribute is the normalized declaration of a single logical attribute.
type Attribute struct {
	// Type is the primitive type tag. JSON-typed values are opaque payloads:
	// the transformer never descends into them.
	Type AttributeType

	// ColumnName is the physical name the storage adapter uses for this
	// attribute. Empty means the column name equals the attribute name.
	ColumnName string

	// Default is applied when the attribute is absent from a create's input.
	Default *Default

	// Required rejects a create whose input lacks this attribute.
	Required bool

	// BelongsTo names the target collection of a one-to-one reference.
	// The resolved target's primary key becomes this attribute's value.
	BelongsTo string

	// HasMany names the target collection of a one-to-many association.
	// Via is the inverse attribute on the target holding the parent's key.
	HasMany string
	Via     string
}

// IsAssociation reports whether the attribute is a belongsTo or hasMany marker.
func (a *Attribute) IsAssociation() bool {
	return a.BelongsTo != "" || a.HasMany != ""
}

// Declarations maps attribute names to raw declarations. A declaration is a
// shorthand type name (string), an Attribute / *Attribute, or a generic
// map[string]any as produced by a YAML declarations file.
type Declarations map[string]any

// Normalize converts raw declarations into Attribute values.
//
// Function-valued declarations are skipped entirely. A columnName that is
// present but not textual is a ConfigurationError, raised here so it can
// never surface at call time.
func Normalize(decls Declarations) (map[string]*Attribute, error) {
	attrs := make(map[string]*Attribute, len(decls))

	for name, raw := range decls {
		switch d := raw.(type) {
		case string:
			t, ok := ParseType(d)
			if !ok {
				return nil, errors.NewConfigurationError(name, fmt.Sprintf("unknown attribute type %q", d))
			}
			attrs[name] = &Attribute{Type: t}

		case Attribute:
			a := d
			if err := normalizeAttribute(name, &a); err != nil {
				return nil, err
			}
			attrs[name] = &a

		case *Attribute:
			a := *d
			if err := normalizeAttribute(name, &a); err != nil {
				return nil, err
			}
			attrs[name] = &a

		case map[string]any:
			a, err := attributeFromMap(name, d)
			if err != nil {
				return nil, err
			}
			attrs[name] = a

		default:
			if raw != nil && reflect.TypeOf(raw).Kind() == reflect.Func {
				continue
			}
			return nil, errors.NewConfigurationError(name, fmt.Sprintf("unsupported declaration of type %T", raw))
		}
	}

	return attrs, nil
}

func normalizeAttribute(name string, a *Attribute) error {
	if a.Type == "" {
		if a.IsAssociation() {
			// Association markers carry no primitive type of their own;
			// the resolved foreign key is stored verbatim.
			a.Type = TypeJSON
			if a.BelongsTo != "" {
				a.Type = TypeString
			}
			return nil
		}
		a.Type = TypeString
		return nil
	}
	if _, ok := ParseType(string(a.Type)); !ok {
		return errors.NewConfigurationError(name, fmt.Sprintf("unknown attribute type %q", a.Type))
	}
	return nil
}

func attributeFromMap(name string, d map[string]any) (*Attribute, error) {
	a := &Attribute{}

	if raw, ok := d["columnName"]; ok {
		col, ok := raw.(string)
		if !ok {
			return nil, errors.NewConfigurationError(name, "columnName must be a string")
		}
		// A column named like the attribute itself is not a mapping.
		if col != name {
			a.ColumnName = col
		}
	}

	if raw, ok := d["type"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.NewConfigurationError(name, "type must be a string")
		}
		t, ok := ParseType(s)
		if !ok {
			return nil, errors.NewConfigurationError(name, fmt.Sprintf("unknown attribute type %q", s))
		}
		a.Type = t
	}

	if raw, ok := d["required"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return nil, errors.NewConfigurationError(name, "required must be a boolean")
		}
		a.Required = b
	}

	if raw, ok := d["belongsTo"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.NewConfigurationError(name, "belongsTo must name a collection")
		}
		a.BelongsTo = s
	}

	if raw, ok := d["hasMany"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.NewConfigurationError(name, "hasMany must name a collection")
		}
		a.HasMany = s
	}

	if raw, ok := d["via"]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, errors.NewConfigurationError(name, "via must name an attribute")
		}
		a.Via = s
	}

	if raw, ok := d["defaultsTo"]; ok {
		switch v := raw.(type) {
		case *Default:
			a.Default = v
		case func(map[string]any) any:
			a.Default = Factory(v)
		default:
			a.Default = Literal(v)
		}
	}

	if a.HasMany != "" && a.Via == "" {
		return nil, errors.NewConfigurationError(name, "hasMany requires via")
	}

	if err := normalizeAttribute(name, a); err != nil {
		return nil, err
	}
	return a, nil
}
