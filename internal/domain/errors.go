package domain

import (
	"errors"
	"fmt"
)

// Kind represents the category of a domain error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindInvalidArgument indicates the caller violated an input contract.
	KindInvalidArgument
	// KindNotFound indicates a resource was not found.
	KindNotFound
	// KindConflict indicates a conflict with existing state (e.g., duplicate email).
	KindConflict
	// KindUnauthorized indicates authentication is required or failed.
	KindUnauthorized
	// KindForbidden indicates the action is not allowed for the actor.
	KindForbidden
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// String returns a stable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a domain error carrying a Kind for mapping at the transport edge.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithOp sets the operation name and returns the error.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// NewError creates a domain error with the given kind and message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates a domain error wrapping an existing error.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// InvalidArgument creates an input-contract error.
func InvalidArgument(message string) *Error {
	return NewError(KindInvalidArgument, message)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return NewError(KindNotFound, message)
}

// Conflict creates a conflict error.
func Conflict(message string) *Error {
	return NewError(KindConflict, message)
}

// Unauthorized creates an authentication error.
func Unauthorized(message string) *Error {
	return NewError(KindUnauthorized, message)
}

// Forbidden creates a permission error.
func Forbidden(message string) *Error {
	return NewError(KindForbidden, message)
}

// KindOf returns the Kind of the first domain error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
