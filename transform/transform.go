/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package transform

import (
	"fmt"

	"github.com/suparena/collectionstore/errors"
	"github.com/suparena/collectionstore/schema"
	"github.com/suparena/collectionstore/storagemodels"
)

// Transformer rewrites logical attribute names to storage column names and
// back. It is built once at collection bootstrap and is immutable afterward,
// so any number of overlapping create calls may read it without
// synchronization.
type Transformer struct {
	// columns holds attribute → column entries only where the two differ.
	columns map[string]string
	// reverse is the inverse of columns.
	reverse map[string]string
	attrs   map[string]*schema.Attribute
}

// Build normalizes raw declarations and constructs a Transformer.
// Declaration errors (a non-textual columnName, an unknown type) surface
// here as ConfigurationError, never at call time.
func Build(decls schema.Declarations) (*Transformer, error) {
	attrs, err := schema.Normalize(decls)
	if err != nil {
		return nil, err
	}
	return New(attrs)
}

// New constructs a Transformer from normalized attributes. Two attributes
// mapping onto the same column is a ConfigurationError: a non-injective map
// would silently collapse values on write.
func New(attrs map[string]*schema.Attribute) (*Transformer, error) {
	t := &Transformer{
		columns: make(map[string]string),
		reverse: make(map[string]string),
		attrs:   attrs,
	}
	for name, attr := range attrs {
		if attr.ColumnName == "" || attr.ColumnName == name {
			continue
		}
		if prev, dup := t.reverse[attr.ColumnName]; dup {
			return nil, errors.NewConfigurationError(name,
				fmt.Sprintf("column %q is already mapped from attribute %q", attr.ColumnName, prev))
		}
		t.columns[name] = attr.ColumnName
		t.reverse[attr.ColumnName] = name
	}
	return t, nil
}

// ColumnName returns the physical column for an attribute, or the attribute
// name itself when no mapping exists.
func (t *Transformer) ColumnName(attribute string) string {
	if col, ok := t.columns[attribute]; ok {
		return col
	}
	return attribute
}

// AttributeName returns the logical attribute for a column, or the column
// name itself when no mapping exists.
func (t *Transformer) AttributeName(column string) string {
	if attr, ok := t.reverse[column]; ok {
		return attr
	}
	return column
}

// Attributes exposes the normalized attribute declarations backing this
// transformer.
func (t *Transformer) Attributes() map[string]*schema.Attribute {
	return t.attrs
}

// Map returns a copy of the attribute → column mapping.
func (t *Transformer) Map() map[string]string {
	out := make(map[string]string, len(t.columns))
	for k, v := range t.columns {
		out[k] = v
	}
	return out
}

// SerializeCriteria rewrites every attribute name in the criteria to its
// column name: the projection and aggregation lists, the sort keys, and the
// predicate tree. The result is a deep copy; the input criteria is never
// mutated. Unmapped names pass through untouched.
func (t *Transformer) SerializeCriteria(c *storagemodels.Criteria) *storagemodels.Criteria {
	if c == nil {
		return nil
	}
	out := c.Clone()

	t.renameAll(out.Select)
	t.renameAll(out.Sum)
	t.renameAll(out.Average)
	t.renameAll(out.Min)
	t.renameAll(out.Max)
	t.renameAll(out.GroupBy)

	if out.Sort != nil {
		sort := make(map[string]int, len(out.Sort))
		for attr, dir := range out.Sort {
			sort[t.ColumnName(attr)] = dir
		}
		out.Sort = sort
	}

	out.Where = t.serializeWhere(out.Where)
	return out
}

func (t *Transformer) renameAll(names []string) {
	for i, n := range names {
		names[i] = t.ColumnName(n)
	}
}

// serializeWhere rewrites one node of an already-cloned predicate tree.
// And/Or nodes keep their kind and recurse; leaves rename their attribute,
// descend into non-opaque nested values, and date-cast textual comparison
// values.
func (t *Transformer) serializeWhere(w *storagemodels.Where) *storagemodels.Where {
	if w == nil {
		return nil
	}
	if w.Kind == storagemodels.KindAnd || w.Kind == storagemodels.KindOr {
		for i, child := range w.Children {
			w.Children[i] = t.serializeWhere(child)
		}
		return w
	}

	// Resolve the governing attribute under the leaf's own name first,
	// falling back through the reverse mapping in case the leaf was already
	// column-rewritten.
	attr, known := t.attrs[w.Attribute]
	if !known {
		if orig, ok := t.reverse[w.Attribute]; ok {
			attr, known = t.attrs[orig]
		}
	}

	w.Attribute = t.ColumnName(w.Attribute)
	if !known {
		return w
	}

	if nested, ok := w.Value.(map[string]any); ok {
		// json-typed leaves are opaque payloads; never descend.
		if attr.Type != schema.TypeJSON {
			w.Value = t.serializeNested(nested, attr.Type)
		}
		return w
	}

	w.Value = castDate(attr.Type, w.Value)
	return w
}

// serializeNested renames mapped keys inside an operator map or nested
// comparison payload, carrying the governing attribute's type down for date
// casting. Operator keys like ">" or "contains" have no mapping and pass
// through unchanged.
func (t *Transformer) serializeNested(m map[string]any, typ schema.AttributeType) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key := t.ColumnName(k)
		switch tv := v.(type) {
		case map[string]any:
			out[key] = t.serializeNested(tv, typ)
		case []any:
			vs := make([]any, len(tv))
			for i, e := range tv {
				if em, ok := e.(map[string]any); ok {
					vs[i] = t.serializeNested(em, typ)
				} else {
					vs[i] = castDate(typ, e)
				}
			}
			out[key] = vs
		default:
			out[key] = castDate(typ, v)
		}
	}
	return out
}

// SerializeSchema renames top-level keys only, producing a flat column-keyed
// snapshot. No recursion and no date casting happens here.
func (t *Transformer) SerializeSchema(values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[t.ColumnName(k)] = v
	}
	return out
}

// SerializeValues recursively renames every matching key in a value tree and
// applies the date cast for date/datetime attributes. json-typed values are
// opaque and copied without traversal. The result is rebuilt from fresh maps
// and slices; the input is not mutated.
//
// Deprecated compatibility case: a bare string equal to a mapped attribute
// name serializes to the column name itself.
func (t *Transformer) SerializeValues(input any) any {
	if s, ok := input.(string); ok {
		if col, mapped := t.columns[s]; mapped {
			return col
		}
		return s
	}
	return t.serializeValue(input)
}

func (t *Transformer) serializeValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			key := t.ColumnName(k)
			if attr, ok := t.attrs[k]; ok {
				if attr.Type == schema.TypeJSON {
					out[key] = e
					continue
				}
				e = castDate(attr.Type, e)
			}
			out[key] = t.serializeValue(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = t.serializeValue(e)
		}
		return out
	default:
		return v
	}
}

// Unserialize maps a column-keyed row back to attribute keys using the
// forward map only. Unmapped columns pass through untouched.
func (t *Transformer) Unserialize(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	for attr, col := range t.columns {
		if v, ok := out[col]; ok {
			out[attr] = v
			delete(out, col)
		}
	}
	return out
}
