/*
errors.go - Error taxonomy for roster, ledger and persistence

ERROR CATEGORIES:
  1. Client errors - bad input from the operator (validation, duplicate id,
     unknown employee, nothing to export)
  2. Persistence errors - a document could not be read, parsed or written

USAGE:
  Every structured error unwraps to a sentinel, so callers can branch with
  errors.Is and still pull details out with errors.As:

    var dup *attendance.DuplicateIDError
    if errors.As(err, &dup) {
        fmt.Printf("id %s is taken\n", dup.ID)
    }
*/
package attendance

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned when a required field is empty or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateID is returned when adding an employee whose id is taken.
	ErrDuplicateID = errors.New("employee id already exists")

	// ErrUnknownEmployee is returned when an id is not on the roster.
	ErrUnknownEmployee = errors.New("unknown employee")

	// ErrEmptyLedger is returned when exporting a ledger with no records.
	ErrEmptyLedger = errors.New("no records to export")

	// ErrPersistence is returned when a document cannot be read or written.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptDocument is returned by gateways when a stored document
	// exists but cannot be parsed.
	ErrCorruptDocument = errors.New("corrupt document")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field. Message is operator-facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

type DuplicateIDError struct {
	ID   EmployeeID
	Name string // name already registered under ID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("employee id %q already exists (%s)", e.ID, e.Name)
}

func (e *DuplicateIDError) Unwrap() error { return ErrDuplicateID }

type UnknownEmployeeError struct {
	ID EmployeeID
}

func (e *UnknownEmployeeError) Error() string {
	return fmt.Sprintf("unknown employee %q", e.ID)
}

func (e *UnknownEmployeeError) Unwrap() error { return ErrUnknownEmployee }

// PersistenceError wraps a failed load, save or export. It matches both
// ErrPersistence and the underlying cause.
type PersistenceError struct {
	Op   string // "load", "save" or "export"
	Path string // document, table or file involved; may be empty
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError reports whether err was caused by operator input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateID) ||
		errors.Is(err, ErrUnknownEmployee) ||
		errors.Is(err, ErrEmptyLedger)
}

// IsPersistence reports whether err came from reading or writing storage.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
