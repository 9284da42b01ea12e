/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Adapter for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Adapter is an in-memory mock implementation of datastore.Adapter
type Adapter struct {
	mu          sync.RWMutex
	records     map[string]map[string]any
	keyColumn   string
	keyFunc     func() string
	createCalls int
	upsertCalls int
	createError error
	upsertError error
	getError    error
}

// New creates a new mock Adapter keyed on the "id" column
func New() *Adapter {
	return &Adapter{
		records:   make(map[string]map[string]any),
		keyColumn: "id",
		keyFunc:   uuid.NewString,
	}
}

// WithKeyColumn sets the primary-key column the adapter assigns on create
func (m *Adapter) WithKeyColumn(col string) *Adapter {
	m.keyColumn = col
	return m
}

// WithKeyFunc sets a custom key generator (default is a fresh UUID)
func (m *Adapter) WithKeyFunc(f func() string) *Adapter {
	m.keyFunc = f
	return m
}

// WithCreateError makes Create operations return an error
func (m *Adapter) WithCreateError(err error) *Adapter {
	m.createError = err
	return m
}

// WithUpsertError makes Upsert operations return an error
func (m *Adapter) WithUpsertError(err error) *Adapter {
	m.upsertError = err
	return m
}

// WithGetError makes Get operations return an error
func (m *Adapter) WithGetError(err error) *Adapter {
	m.getError = err
	return m
}

// Create stores a record, assigning a primary key when the record carries none
func (m *Adapter) Create(ctx context.Context, record map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCalls++
	if m.createError != nil {
		return nil, m.createError
	}

	stored := copyRecord(record)
	key, ok := stored[m.keyColumn].(string)
	if !ok || key == "" {
		key = m.keyFunc()
		stored[m.keyColumn] = key
	}
	if _, exists := m.records[key]; exists {
		return nil, fmt.Errorf("record with key %q already exists", key)
	}
	m.records[key] = stored
	return copyRecord(stored), nil
}

// Upsert stores a record under an explicit primary-key value
func (m *Adapter) Upsert(ctx context.Context, keyColumn string, key any, record map[string]any) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.upsertCalls++
	if m.upsertError != nil {
		return nil, m.upsertError
	}

	ks := fmt.Sprintf("%v", key)
	stored := copyRecord(record)
	stored[keyColumn] = key
	if existing, ok := m.records[ks]; ok {
		merged := copyRecord(existing)
		for k, v := range stored {
			merged[k] = v
		}
		stored = merged
	}
	m.records[ks] = stored
	return copyRecord(stored), nil
}

// Get retrieves a record by primary-key value, nil when absent
func (m *Adapter) Get(ctx context.Context, keyColumn string, key any) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.getError != nil {
		return nil, m.getError
	}

	rec, ok := m.records[fmt.Sprintf("%v", key)]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

// Helper methods for testing

// CreateCalls returns the number of Create invocations, including failed ones
func (m *Adapter) CreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

// UpsertCalls returns the number of Upsert invocations
func (m *Adapter) UpsertCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.upsertCalls
}

// Count returns the number of stored records
func (m *Adapter) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Records returns a copy of all stored records keyed by primary-key value
func (m *Adapter) Records() map[string]map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]map[string]any, len(m.records))
	for k, v := range m.records {
		out[k] = copyRecord(v)
	}
	return out
}

// Clear removes all records and resets call counters
func (m *Adapter) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make(map[string]map[string]any)
	m.createCalls = 0
	m.upsertCalls = 0
}

func copyRecord(r map[string]any) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
