/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrConfiguration is returned when a collection's attribute declarations are invalid
	ErrConfiguration = errors.New("invalid collection configuration")

	// ErrValidation is returned when candidate values fail schema validation
	ErrValidation = errors.New("validation failed")

	// ErrAssociationResolution is returned when a belongsTo payload could not be resolved
	ErrAssociationResolution = errors.New("association resolution failed")

	// ErrAdapter is returned when the storage adapter write fails
	ErrAdapter = errors.New("adapter operation failed")

	// ErrNestedLink is returned when linking a hasMany payload fails after the parent write
	ErrNestedLink = errors.New("nested association link failed")

	// ErrHook is returned when a lifecycle hook rejects the operation
	ErrHook = errors.New("lifecycle hook rejected")

	// ErrNotFound is returned when a record or collection is not found
	ErrNotFound = errors.New("not found")
)

// ConfigurationError represents an invalid attribute declaration.
// It is raised synchronously at collection bootstrap, never at call time.
type ConfigurationError struct {
	Attribute string
	Message   string
}

func (e *ConfigurationError) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("invalid configuration for attribute %q: %s", e.Attribute, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidationError represents a schema validation failure for candidate values
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AssociationResolutionError represents a failed belongsTo resolve or create.
// It always surfaces before the parent write is attempted.
type AssociationResolutionError struct {
	Collection string
	Attribute  string
	Err        error
}

func (e *AssociationResolutionError) Error() string {
	return fmt.Sprintf("collection %q: resolving belongsTo attribute %q: %v", e.Collection, e.Attribute, e.Err)
}

func (e *AssociationResolutionError) Is(target error) bool {
	return target == ErrAssociationResolution
}

func (e *AssociationResolutionError) Unwrap() error { return e.Err }

// AdapterError represents a failed storage write, annotated with the owning
// collection's identity. The underlying adapter error is surfaced as-is.
type AdapterError struct {
	Collection string
	Err        error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("collection %q: %v", e.Collection, e.Err)
}

func (e *AdapterError) Is(target error) bool {
	return target == ErrAdapter
}

func (e *AdapterError) Unwrap() error { return e.Err }

// NestedLinkError represents a failed hasMany linkage. The parent row is
// already committed when this error surfaces; no compensating delete is made.
type NestedLinkError struct {
	Collection string
	Attribute  string
	Err        error
}

func (e *NestedLinkError) Error() string {
	return fmt.Sprintf("collection %q: linking hasMany attribute %q: %v", e.Collection, e.Attribute, e.Err)
}

func (e *NestedLinkError) Is(target error) bool {
	return target == ErrNestedLink
}

func (e *NestedLinkError) Unwrap() error { return e.Err }

// HookError represents a lifecycle hook rejection. A before-hook failure
// blocks the write entirely; an after-hook failure surfaces after commit.
type HookError struct {
	Hook       string
	Collection string
	Err        error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("collection %q: %s hook: %v", e.Collection, e.Hook, e.Err)
}

func (e *HookError) Is(target error) bool {
	return target == ErrHook
}

func (e *HookError) Unwrap() error { return e.Err }

// NotFoundError represents a missing record or collection
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Helper functions for creating errors

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(attribute, message string) error {
	return &ConfigurationError{Attribute: attribute, Message: message}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAssociationResolutionError creates a new AssociationResolutionError
func NewAssociationResolutionError(collection, attribute string, err error) error {
	return &AssociationResolutionError{Collection: collection, Attribute: attribute, Err: err}
}

// NewAdapterError creates a new AdapterError
func NewAdapterError(collection string, err error) error {
	return &AdapterError{Collection: collection, Err: err}
}

// NewNestedLinkError creates a new NestedLinkError
func NewNestedLinkError(collection, attribute string, err error) error {
	return &NestedLinkError{Collection: collection, Attribute: attribute, Err: err}
}

// NewHookError creates a new HookError
func NewHookError(hook, collection string, err error) error {
	return &HookError{Hook: hook, Collection: collection, Err: err}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAssociationResolution checks if an error is an association resolution error
func IsAssociationResolution(err error) bool {
	return errors.Is(err, ErrAssociationResolution)
}

// IsAdapter checks if an error is an adapter error
func IsAdapter(err error) bool {
	return errors.Is(err, ErrAdapter)
}

// IsNestedLink checks if an error is a nested link error
func IsNestedLink(err error) bool {
	return errors.Is(err, ErrNestedLink)
}

// IsHook checks if an error is a hook error
func IsHook(err error) bool {
	return errors.Is(err, ErrHook)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
