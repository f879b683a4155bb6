package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing request data.
	ErrValidation = errors.New("validation error")
	// ErrAuthorization marks a device identifier that is not on the allow-list.
	ErrAuthorization = errors.New("authorization error")
	// ErrSigning marks a failed signer invocation or unusable signer output.
	ErrSigning = errors.New("signing error")
	// ErrStorage marks a filesystem read or write failure.
	ErrStorage = errors.New("storage error")
)

// Error pairs a client-facing message with one of the sentinel kinds.
type Error struct {
	// Kind is the sentinel this error is classified as.
	Kind error
	// Msg is the message reported to the client.
	Msg string
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	return e.Msg
}

// Unwrap exposes the kind so errors.Is matches the sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Validationf builds a validation error with a client-facing message.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// Authorizationf builds an authorization error with a client-facing message.
func Authorizationf(format string, args ...any) error {
	return &Error{Kind: ErrAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// Signingf builds a signing error with a client-facing message.
func Signingf(format string, args ...any) error {
	return &Error{Kind: ErrSigning, Msg: fmt.Sprintf(format, args...)}
}

// Storagef builds a storage error with a client-facing message.
func Storagef(format string, args ...any) error {
	return &Error{Kind: ErrStorage, Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps a classified error to its response status code.
// Unclassified errors are treated as internal failures.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Message extracts the client-facing message of a classified error.
// Unclassified errors fall back to a generic message so internal details
// are not leaked to clients.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}

	return "An error occurred while processing your request."
}
