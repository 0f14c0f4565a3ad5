package domain

import "fmt"

// RemoteAPIError is a failure reported by the upstream platform: network,
// auth expiry, rate limit, or a GraphQL-level error. It is never retried by
// this engine; the caller decides whether to re-invoke.
type RemoteAPIError struct {
	Operation  string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteAPIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote API error on %s (status %d): %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote API error on %s: %s", e.Operation, e.Message)
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Err
}

// MappingError is a malformed or unexpected remote record shape. Depending on
// the entity type's policy it aborts the single record or the whole entity
// type.
type MappingError struct {
	Entity EntityType
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("mapping error for %s field %q: %s", e.Entity, e.Field, e.Reason)
}

// PersistenceError is a repository write failure, subject to the same
// per-entity-type policy as a MappingError.
type PersistenceError struct {
	Entity EntityType
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error for %s: %v", e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
