package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates that a section, entry or property
	// value cannot be addressed by the driver
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrIllegalState indicates that the operation is not allowed
	// in the current state of the profile
	ErrIllegalState = errors.New("illegal state")
	// ErrStorage indicates that the backing store could not be read
	// or written
	ErrStorage = errors.New("storage failure")
	// ErrParse indicates that the backing document is malformed
	ErrParse = errors.New("malformed document")
)

var (
	// ErrReadOnly is returned by every mutator of a read-only profile
	ErrReadOnly = fmt.Errorf("%w: operation not allowed because the profile is read-only", ErrIllegalState)
	// ErrNoName is returned when an operation needs the profile name
	// but it is empty
	ErrNoName = fmt.Errorf("%w: operation not allowed because the profile name is empty", ErrIllegalState)
)

// StorageError wraps err so that it matches ErrStorage while keeping
// err reachable through errors.Is and errors.As
func StorageError(wrap string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrStorage, wrap, err)
}

// ParseError wraps err so that it matches ErrParse while keeping
// err reachable through errors.Is and errors.As
func ParseError(wrap string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %s: %w", ErrParse, wrap, err)
}

// InvalidArgument returns an error matching ErrInvalidArgument
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
