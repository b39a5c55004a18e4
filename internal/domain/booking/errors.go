package booking

import (
	"errors"
)

// Kind groups error codes by how a caller should react to them.
type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindPreconditionFailed Kind = "PRECONDITION_FAILED"
	KindCapacity           Kind = "CAPACITY"
	KindConflict           Kind = "CONFLICT"
)

type Code string

const (
	CodeClassNotFound          Code = "CLASS_NOT_FOUND"
	CodeBookingNotFound        Code = "BOOKING_NOT_FOUND"
	CodeClassAlreadyStarted    Code = "CLASS_ALREADY_STARTED"
	CodeAlreadyBooked          Code = "ALREADY_BOOKED"
	CodeAlreadyCancelled       Code = "ALREADY_CANCELLED"
	CodeClassFull              Code = "CLASS_FULL"
	CodeConflict               Code = "CONFLICT"
	CodeCapacityBelowConfirmed Code = "CAPACITY_BELOW_CONFIRMED"
)

type Error struct {
	Code    Code
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code, so errors.Is works against
// the sentinels below even after WithCause.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e that wraps cause.
func (e *Error) WithCause(cause error) *Error {
	return &Error{Code: e.Code, Kind: e.Kind, Message: e.Message, cause: cause}
}

var (
	ErrClassNotFound = &Error{
		Code: CodeClassNotFound, Kind: KindNotFound,
		Message: "class not found",
	}
	ErrBookingNotFound = &Error{
		Code: CodeBookingNotFound, Kind: KindNotFound,
		Message: "booking not found",
	}
	ErrClassAlreadyStarted = &Error{
		Code: CodeClassAlreadyStarted, Kind: KindPreconditionFailed,
		Message: "class has already started",
	}
	ErrAlreadyBooked = &Error{
		Code: CodeAlreadyBooked, Kind: KindPreconditionFailed,
		Message: "class is already booked by this user",
	}
	ErrAlreadyCancelled = &Error{
		Code: CodeAlreadyCancelled, Kind: KindPreconditionFailed,
		Message: "booking is already cancelled",
	}
	ErrClassFull = &Error{
		Code: CodeClassFull, Kind: KindCapacity,
		Message: "class is full",
	}
	ErrConflict = &Error{
		Code: CodeConflict, Kind: KindConflict,
		Message: "booking could not be completed due to concurrent updates, please retry",
	}
	ErrCapacityBelowConfirmed = &Error{
		Code: CodeCapacityBelowConfirmed, Kind: KindPreconditionFailed,
		Message: "capacity cannot be lower than the number of confirmed bookings",
	}
)

// AsError extracts the booking error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
