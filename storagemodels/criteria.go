/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// Criteria describes a query against a collection. Before it reaches an
// adapter, every attribute name in it must be rewritten to its column name
// by the owning collection's transformer.
type Criteria struct {
	// Select lists the attributes to project.
	Select []string
	// Sort maps attribute names to a direction (1 ascending, -1 descending).
	Sort map[string]int
	// Aggregation specs, each a list of attribute names.
	Sum     []string
	Average []string
	Min     []string
	Max     []string
	GroupBy []string
	// Where is the predicate tree, nil for an unfiltered query.
	Where *Where
}

// WhereKind tags a node in the predicate tree.
type WhereKind int

const (
	// KindLeaf compares one attribute against a value or operator map.
	KindLeaf WhereKind = iota
	// KindAnd is a conjunction over child trees.
	KindAnd
	// KindOr is a disjunction over child trees.
	KindOr
)

// Where is one node of a predicate tree. And/Or nodes carry Children; leaf
// nodes carry an Attribute plus a Value, where Value is either a direct
// comparison value or an operator map such as map[string]any{">": 21}.
//
// A leaf under a json-typed attribute is opaque: its Value is never
// traversed or renamed.
type Where struct {
	Kind      WhereKind
	Children  []*Where
	Attribute string
	Value     any
}

// And builds a conjunction node.
func And(children ...*Where) *Where {
	return &Where{Kind: KindAnd, Children: children}
}

// Or builds a disjunction node.
func Or(children ...*Where) *Where {
	return &Where{Kind: KindOr, Children: children}
}

// Leaf builds a comparison node for one attribute.
func Leaf(attribute string, value any) *Where {
	return &Where{Kind: KindLeaf, Attribute: attribute, Value: value}
}

// Clone deep-copies the tree. Leaf values that are maps or slices are copied
// as well, so a serialized tree never aliases its source.
func (w *Where) Clone() *Where {
	if w == nil {
		return nil
	}
	out := &Where{Kind: w.Kind, Attribute: w.Attribute, Value: cloneValue(w.Value)}
	if w.Children != nil {
		out.Children = make([]*Where, len(w.Children))
		for i, c := range w.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Clone deep-copies the criteria, including the predicate tree.
func (c *Criteria) Clone() *Criteria {
	if c == nil {
		return nil
	}
	out := &Criteria{
		Select:  cloneStrings(c.Select),
		Sum:     cloneStrings(c.Sum),
		Average: cloneStrings(c.Average),
		Min:     cloneStrings(c.Min),
		Max:     cloneStrings(c.Max),
		GroupBy: cloneStrings(c.GroupBy),
		Where:   c.Where.Clone(),
	}
	if c.Sort != nil {
		out.Sort = make(map[string]int, len(c.Sort))
		for k, v := range c.Sort {
			out.Sort[k] = v
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = cloneValue(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
