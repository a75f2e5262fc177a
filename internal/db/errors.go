package db

import (
	"errors"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// IntegrityError reports a violated persistence constraint: a missing
// required field or a unique-constraint collision. Callers should roll back
// or abandon the failed operation; the connection itself stays usable.
type IntegrityError struct {
	Constraint string
	Message    string
}

func (e *IntegrityError) Error() string { return e.Message }

func NewIntegrityError(constraint, msg string) error {
	return &IntegrityError{Constraint: constraint, Message: msg}
}

func AsIntegrityError(err error) (*IntegrityError, bool) {
	var ie *IntegrityError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// mapSQLiteError converts sqlite constraint failures into IntegrityError so
// callers never depend on the driver's error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	var serr sqlite3.Error
	if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
		return &IntegrityError{Constraint: serr.ExtendedCode.Error(), Message: serr.Error()}
	}
	return err
}
