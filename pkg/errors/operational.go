package errors

import (
	"fmt"
	"time"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps errors with operational context including the navigation scope and
// key involved, and a timestamp. Binding and configuration failures surface
// through this type so the CLI can report which scope and key were at fault.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	Scope      string                 // Which binding scope (if applicable)
	Key        string                 // Which key (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err := kh.RegisterBinding(mode, key, handler, label); err != nil {
//	    return NewOperationalError("binding forward key", scopeID, key.String(), err)
//	}
func NewOperationalError(operation, scope, key string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		Scope:     scope,
		Key:       key,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, scope, key string, cause error, attrs map[string]interface{}) *OperationalError {
	err := NewOperationalError(operation, scope, key, cause)
	if err != nil {
		err.Attributes = attrs
	}
	return err
}

// Error implements the error interface.
//
// Format: "operation: scope={id} key={key}: {cause}"
// Empty scope or key fields are omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	msg := e.Operation
	if e.Scope != "" {
		msg += fmt.Sprintf(": scope=%s", e.Scope)
	}
	if e.Key != "" {
		if e.Scope != "" {
			msg += fmt.Sprintf(" key=%s", e.Key)
		} else {
			msg += fmt.Sprintf(": key=%s", e.Key)
		}
	}

	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
