// Package apperr defines the error taxonomy shared by the service, HTTP and
// gRPC layers.
package apperr

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code classifies an application error.
type Code int

const (
	CodeInternal Code = iota
	CodeValidation
	CodeConflict
	CodeNotFound
	CodeForbidden
	CodeUnauthenticated
	CodeUnsupportedMediaType
)

func (c Code) String() string {
	switch c {
	case CodeValidation:
		return "validation"
	case CodeConflict:
		return "conflict"
	case CodeNotFound:
		return "not_found"
	case CodeForbidden:
		return "forbidden"
	case CodeUnauthenticated:
		return "unauthenticated"
	case CodeUnsupportedMediaType:
		return "unsupported_media_type"
	default:
		return "internal"
	}
}

// HTTPStatus maps the code to the status used by the web layer.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// GRPCCode maps the code to a gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeValidation, CodeUnsupportedMediaType:
		return codes.InvalidArgument
	case CodeConflict:
		return codes.AlreadyExists
	case CodeNotFound:
		return codes.NotFound
	case CodeForbidden:
		return codes.PermissionDenied
	case CodeUnauthenticated:
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

// Error is an application error with a machine-readable code.
type Error struct {
	Code    Code
	Message string // safe to show to the submitter
	Field   string // form field at fault, if any
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error that keeps cause in the chain.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Invalid reports a missing or malformed form field.
func Invalid(field, message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Field: field}
}

// CodeOf returns the code of the first *Error in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message of err. Errors outside the
// taxonomy are reported generically.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}

// IsCode reports whether err carries code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
