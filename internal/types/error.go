package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ServiceError into the outcome reported to callers
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindInternal   ErrorKind = "internal"
)

// ServiceError is the only error type returned by the resource managers
type ServiceError struct {
	Kind    ErrorKind         `json:"type"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"errors,omitempty"`
	Err     error             `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewValidationError reports rejected input, optionally per field
func NewValidationError(message string, fields map[string]string) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: message, Fields: fields}
}

// NewNotFoundError reports that the named resource does not exist
func NewNotFoundError(resource string, id uint64) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf("%s %d not found", resource, id)}
}

// NewConflictError reports a uniqueness violation
func NewConflictError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message, Err: err}
}

// NewInternalError wraps an unexpected store failure
func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for foreign errors
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool { return err != nil && KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return err != nil && KindOf(err) == KindNotFound }
func IsConflict(err error) bool   { return err != nil && KindOf(err) == KindConflict }
