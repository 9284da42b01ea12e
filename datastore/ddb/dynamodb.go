/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Adapter implements datastore.Adapter on top of AWS DynamoDB. Each adapter
// instance owns one table and one primary-key column.
type Adapter struct {
	client    *sdk.Client
	tableName string
	keyColumn string
}

// NewClient initializes a DynamoDB client using static AWS credentials.
func NewClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs an Adapter for the given table and primary-key column.
func New(client *sdk.Client, tableName, keyColumn string) *Adapter {
	return &Adapter{
		client:    client,
		tableName: tableName,
		keyColumn: keyColumn,
	}
}

// Create persists a column-keyed record, assigning a UUID primary key when
// the record carries none, and returns the stored record.
func (a *Adapter) Create(ctx context.Context, record map[string]any) (map[string]any, error) {
	stored := make(map[string]any, len(record)+1)
	for k, v := range record {
		stored[k] = v
	}
	if key, _ := stored[a.keyColumn].(string); key == "" {
		stored[a.keyColumn] = uuid.NewString()
	}

	item, err := attributevalue.MarshalMap(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = a.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &a.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("PutItem failed: %w", err)
	}
	return stored, nil
}

// Upsert persists a record under an explicit primary-key value.
func (a *Adapter) Upsert(ctx context.Context, keyColumn string, key any, record map[string]any) (map[string]any, error) {
	stored := make(map[string]any, len(record)+1)
	for k, v := range record {
		stored[k] = v
	}
	stored[keyColumn] = key

	item, err := attributevalue.MarshalMap(stored)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = a.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &a.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("PutItem failed: %w", err)
	}
	return stored, nil
}

// Get retrieves a record by primary-key value. A missing item yields
// (nil, nil).
func (a *Adapter) Get(ctx context.Context, keyColumn string, key any) (map[string]any, error) {
	av, err := attributevalue.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}

	out, err := a.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &a.tableName,
		Key:       map[string]types.AttributeValue{keyColumn: av},
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem failed: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	record := make(map[string]any)
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return record, nil
}
