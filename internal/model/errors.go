// Package model defines the persisted entity types and their field
// validation rules.  Validation failures are reported as typed
// *ValidationError values so that the transport layer can decide how much
// detail to expose; the HTTP handlers deliberately collapse them into a
// generic bad-request body and keep the specifics in the server log.
package model

import "fmt"

// ValidationError describes a single violated field constraint.
type ValidationError struct {
	Field  string // name of the offending field
	Reason string // human-readable constraint description
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// invalid is a small constructor used by the per-entity validators.
func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
