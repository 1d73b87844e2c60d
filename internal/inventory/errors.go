package inventory

import "fmt"

// UnavailableError means the container runtime could not be reached or
// returned data that cannot be turned into a snapshot.
type UnavailableError struct {
	Op  string
	Err error
}

func NewUnavailableError(op string, err error) *UnavailableError {
	return &UnavailableError{Op: op, Err: err}
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("inventory unavailable: %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}
