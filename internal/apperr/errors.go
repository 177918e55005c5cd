// Package apperr defines the typed failures produced by the storage core.
//
// Every failure kind carries a stable Code so the transport layer can map it
// without string matching.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code identifies a failure kind.
type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeReferenceNotFound Code = "REFERENCE_NOT_FOUND"
	CodeNotFound          Code = "NOT_FOUND"
	CodeConflict          Code = "CONFLICT"
	CodeAuthRequired      Code = "AUTHENTICATION_REQUIRED"
	CodeStoreUnavailable  Code = "STORE_UNAVAILABLE"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Coded is implemented by every error in this package.
type Coded interface {
	error
	Code() Code
}

// CodeOf returns the code of the first Coded error in err's chain, or
// CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// Violation is one failed field constraint.
type Violation struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

// ValidationError lists every constraint an input broke.
type ValidationError struct {
	Entity     string      `json:"entity"`
	Violations []Violation `json:"violations"`
}

func (e *ValidationError) Code() Code { return CodeValidation }

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return fmt.Sprintf("%s: invalid input: %s", e.Entity, strings.Join(parts, "; "))
}

// Fields returns the offending field names, sorted and de-duplicated.
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range e.Violations {
		if !seen[v.Field] {
			seen[v.Field] = true
			out = append(out, v.Field)
		}
	}
	sort.Strings(out)
	return out
}

// Has reports whether field broke constraint.
func (e *ValidationError) Has(field, constraint string) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Constraint == constraint {
			return true
		}
	}
	return false
}

// ReferenceNotFoundError is returned when a foreign key does not resolve.
type ReferenceNotFoundError struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Target string `json:"target"`
	ID     string `json:"id"`
}

func (e *ReferenceNotFoundError) Code() Code { return CodeReferenceNotFound }

func (e *ReferenceNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s references missing %s %q", e.Entity, e.Field, e.Target, e.ID)
}

// NotFoundError is returned when the addressed row does not exist.
type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e *NotFoundError) Code() Code { return CodeNotFound }

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found: %s", e.Entity, e.ID)
}

// ConflictError reports a state conflict: a duplicate unique key or a delete
// blocked by dependents.
type ConflictError struct {
	Entity string   `json:"entity"`
	Fields []string `json:"fields,omitempty"`
	Reason string   `json:"reason"`
}

func (e *ConflictError) Code() Code { return CodeConflict }

func (e *ConflictError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: conflict on %s: %s", e.Entity, strings.Join(e.Fields, ","), e.Reason)
	}
	return fmt.Sprintf("%s: conflict: %s", e.Entity, e.Reason)
}

// AuthenticationError is returned for private operations without a session.
type AuthenticationError struct {
	Reason string `json:"reason"`
}

func (e *AuthenticationError) Code() Code { return CodeAuthRequired }

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Reason
}

// StoreUnavailableError wraps a failure to reach the persistence layer.
// Callers may retry.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Code() Code { return CodeStoreUnavailable }

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable during %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Retryable reports whether the failure is transient.
func Retryable(err error) bool {
	return Is(err, CodeStoreUnavailable)
}
