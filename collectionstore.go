/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collectionstore

import (
	"fmt"
	"sync"

	"github.com/suparena/collectionstore/associations"
)

// Registry is a thread-safe registry of collections by identity. Sibling
// collections resolve each other through it during belongsTo resolution and
// hasMany linkage.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]*Collection
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		collections: make(map[string]*Collection),
	}
}

// Register adds a collection under its identity and attaches the registry to
// it so association fan-outs can reach siblings.
func (r *Registry) Register(c *Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.collections[c.identity]; exists {
		return fmt.Errorf("collection with identity %q already registered", c.identity)
	}
	r.collections[c.identity] = c
	c.registry = r
	return nil
}

// Lookup retrieves the registered collection for an identity.
func (r *Registry) Lookup(identity string) (*Collection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.collections[identity]
	if !exists {
		return nil, fmt.Errorf("collection with identity %q not found", identity)
	}
	return c, nil
}

// Collection implements associations.Resolver.
func (r *Registry) Collection(identity string) (associations.Sibling, error) {
	return r.Lookup(identity)
}

// Identities returns all registered collection identities.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.collections))
	for k := range r.collections {
		out = append(out, k)
	}
	return out
}
