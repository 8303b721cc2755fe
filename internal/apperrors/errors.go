// Package apperrors provides error classification for the social API.
// Storage and resolver failures are sorted into a small taxonomy so callers
// can tell a missing row from bad input or an unreachable database.
package apperrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"
)

// Class is the category an error falls into.
type Class int

const (
	// ClassInternal is any failure that fits no other class.
	ClassInternal Class = iota
	// ClassNotFound means no row matched a lookup key.
	ClassNotFound
	// ClassInvalid means the input violated a required field or constraint.
	ClassInvalid
	// ClassUnavailable means the storage layer could not be reached.
	ClassUnavailable
)

// String returns the lowercase name of the class.
func (c Class) String() string {
	switch c {
	case ClassNotFound:
		return "not_found"
	case ClassInvalid:
		return "invalid"
	case ClassUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Code returns the value reported in a GraphQL error's extensions.code.
func (c Class) Code() string {
	switch c {
	case ClassNotFound:
		return "NOT_FOUND"
	case ClassInvalid:
		return "INVALID"
	case ClassUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}

// Standard error variables
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalid     = errors.New("invalid input")
	ErrUnavailable = errors.New("storage unavailable")
)

// ClassifiedError wraps an error with its class and the place it was raised.
type ClassifiedError struct {
	Class     Class
	Err       error
	Component string
	Operation string
}

// Error implements the error interface.
func (ce *ClassifiedError) Error() string {
	if ce.Component == "" {
		return ce.Err.Error()
	}
	return fmt.Sprintf("%s.%s: %v", ce.Component, ce.Operation, ce.Err)
}

// Unwrap returns the underlying error.
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// Extensions is picked up by the GraphQL executor when formatting errors.
func (ce *ClassifiedError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": ce.Class.Code(),
	}
}

// WrapNotFound wraps err as a NotFound error.
func WrapNotFound(err error, component, operation string) error {
	return newClassified(ClassNotFound, err, component, operation)
}

// WrapInvalid wraps err as a validation failure.
func WrapInvalid(err error, component, operation string) error {
	return newClassified(ClassInvalid, err, component, operation)
}

// WrapUnavailable wraps err as a connectivity failure.
func WrapUnavailable(err error, component, operation string) error {
	return newClassified(ClassUnavailable, err, component, operation)
}

func newClassified(class Class, err error, component, operation string) error {
	if err == nil {
		return nil
	}
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Component: component,
		Operation: operation,
	}
}

// ClassOf inspects err and reports its class. Classified errors keep their
// class; PostgreSQL and network errors are mapped by code and type.
func ClassOf(err error) Class {
	if err == nil {
		return ClassInternal
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return ClassNotFound
	case errors.Is(err, ErrInvalid):
		return ClassInvalid
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded):
		return ClassUnavailable
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		// integrity_constraint_violation
		case "23":
			return ClassInvalid
		// connection_exception, insufficient_resources, operator_intervention
		case "08", "53", "57":
			return ClassUnavailable
		}
		return ClassInternal
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassUnavailable
	}

	return ClassInternal
}

// Classify returns err as a *ClassifiedError. Errors that already carry a
// class are returned unchanged.
func Classify(err error, component, operation string) error {
	if err == nil {
		return nil
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		if ce == err {
			return err
		}
		return &ClassifiedError{Class: ce.Class, Err: err}
	}
	return newClassified(ClassOf(err), err, component, operation)
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool {
	return err != nil && ClassOf(err) == ClassNotFound
}

// IsInvalid reports whether err is a validation failure.
func IsInvalid(err error) bool {
	return err != nil && ClassOf(err) == ClassInvalid
}

// IsUnavailable reports whether err is a connectivity failure.
func IsUnavailable(err error) bool {
	return err != nil && ClassOf(err) == ClassUnavailable
}
