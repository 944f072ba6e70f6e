package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrVersionIsInvalid is the sentinel wrapped by every VersionIsInvalidError.
	ErrVersionIsInvalid = errors.New("version is invalid")

	// ErrConcurrentModification is returned by repositories when an optimistic
	// version check matched no row: another writer committed first.
	ErrConcurrentModification = errors.New("concurrent modification")
)

// VersionIsInvalidError reports a stale or malformed aggregate version.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a version error with the failure that caused it.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithCause creates a version error without a cause.
//
// The name is kept for callers written against the original API.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// ConcurrentModificationError names the aggregate whose version check failed.
type ConcurrentModificationError struct {
	Aggregate string
	ID        any
	Version   int
}

// NewConcurrentModificationError creates an error for aggregate id expected at version.
func NewConcurrentModificationError(aggregate string, id any, version int) *ConcurrentModificationError {
	return &ConcurrentModificationError{
		Aggregate: aggregate,
		ID:        id,
		Version:   version,
	}
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s: %s %v is no longer at version %d", ErrConcurrentModification, e.Aggregate, e.ID, e.Version)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}
