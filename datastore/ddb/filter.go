/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/collectionstore/storagemodels"
)

// filterBuilder accumulates placeholder names and values while walking a
// predicate tree, mirroring DynamoDB's #name / :value expression style.
type filterBuilder struct {
	names  map[string]string
	values map[string]types.AttributeValue
	n      int
}

// CompileFilter builds a DynamoDB filter expression from a column-keyed
// predicate tree. The tree must already be serialized: leaf attributes are
// physical column names.
//
// Supported leaf shapes: a bare comparison value (equality) or an operator
// map with "<", "<=", ">", ">=", "!=" and "contains" keys.
func CompileFilter(w *storagemodels.Where) (string, map[string]string, map[string]types.AttributeValue, error) {
	if w == nil {
		return "", nil, nil, errors.New("no predicate provided")
	}
	b := &filterBuilder{
		names:  make(map[string]string),
		values: make(map[string]types.AttributeValue),
	}
	expr, err := b.compile(w)
	if err != nil {
		return "", nil, nil, err
	}
	return expr, b.names, b.values, nil
}

func (b *filterBuilder) compile(w *storagemodels.Where) (string, error) {
	switch w.Kind {
	case storagemodels.KindAnd, storagemodels.KindOr:
		if len(w.Children) == 0 {
			return "", errors.New("empty logical node")
		}
		op := " AND "
		if w.Kind == storagemodels.KindOr {
			op = " OR "
		}
		parts := make([]string, 0, len(w.Children))
		for _, child := range w.Children {
			p, err := b.compile(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, p)
		}
		return "(" + strings.Join(parts, op) + ")", nil

	case storagemodels.KindLeaf:
		return b.compileLeaf(w)

	default:
		return "", fmt.Errorf("unknown predicate node kind %d", w.Kind)
	}
}

func (b *filterBuilder) compileLeaf(w *storagemodels.Where) (string, error) {
	name := b.name(w.Attribute)

	ops, isOperatorMap := w.Value.(map[string]any)
	if !isOperatorMap {
		v, err := b.value(w.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", name, v), nil
	}

	clauses := make([]string, 0, len(ops))
	for op, operand := range ops {
		v, err := b.value(operand)
		if err != nil {
			return "", err
		}
		switch op {
		case "<", "<=", ">", ">=":
			clauses = append(clauses, fmt.Sprintf("%s %s %s", name, op, v))
		case "!=":
			clauses = append(clauses, fmt.Sprintf("%s <> %s", name, v))
		case "contains":
			clauses = append(clauses, fmt.Sprintf("contains(%s, %s)", name, v))
		default:
			return "", fmt.Errorf("unsupported operator %q for column %q", op, w.Attribute)
		}
	}
	if len(clauses) == 1 {
		return clauses[0], nil
	}
	return "(" + strings.Join(clauses, " AND ") + ")", nil
}

func (b *filterBuilder) name(column string) string {
	placeholder := fmt.Sprintf("#f%d", b.n)
	b.names[placeholder] = column
	b.n++
	return placeholder
}

func (b *filterBuilder) value(v any) (string, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal operand: %w", err)
	}
	placeholder := fmt.Sprintf(":v%d", len(b.values))
	b.values[placeholder] = av
	return placeholder, nil
}

// FilterScan runs a table scan constrained by a compiled filter expression.
// Intended for serialized criteria; the caller owns pagination beyond Limit.
func (a *Adapter) FilterScan(ctx context.Context, where *storagemodels.Where, limit *int32) ([]map[string]any, error) {
	expr, names, values, err := CompileFilter(where)
	if err != nil {
		return nil, err
	}

	out, err := a.client.Scan(ctx, &sdk.ScanInput{
		TableName:                 &a.tableName,
		FilterExpression:          &expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		Limit:                     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("Scan failed: %w", err)
	}

	records := make([]map[string]any, 0, len(out.Items))
	for _, item := range out.Items {
		record := make(map[string]any)
		if err := attributevalue.UnmarshalMap(item, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
