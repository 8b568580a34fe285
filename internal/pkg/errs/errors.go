// Package errs defines the error taxonomy shared by every marketplace
// service. All four kinds surface directly to the caller; nothing here is
// retried internally.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// StateError reports an operation that is not legal in the entity's
// current state, such as confirming a non-pending booking or paying a
// booking twice.
type StateError struct {
	Resource string
	Msg      string
	Err      error
}

func (e StateError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s state error", e.Resource)
	default:
		return "state error"
	}
}

func (e StateError) Unwrap() error { return e.Err }

// CapacityError reports a seat-capacity conflict: a booking asking for more
// seats than remain, or a capacity edit dropping below the seats already
// held. Msg, when set, replaces the default booking-shaped message.
type CapacityError struct {
	Requested int
	Remaining int
	Msg       string
}

func (e CapacityError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("insufficient seats: requested %d, remaining %d", e.Requested, e.Remaining)
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// TxError reports a multi-statement transaction that failed and was rolled
// back. Partial success is never reported.
type TxError struct {
	Op  string
	Err error
}

func (e TxError) Error() string {
	if e.Op == "" {
		return "transaction failed"
	}
	return fmt.Sprintf("transaction failed during %s: %v", e.Op, e.Err)
}

func (e TxError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target StateError
	return errors.As(err, &target)
}

func IsCapacity(err error) bool {
	var target CapacityError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsTx(err error) bool {
	var target TxError
	return errors.As(err, &target)
}
