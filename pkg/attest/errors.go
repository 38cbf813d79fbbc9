package attest

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the attestation service. These are service-level
// codes, not HTTP status codes; the HTTP layer maps them onto the wire.
const (
	// ErrCodeInvalidCode indicates the submitted one-time code did not match
	// any accepted time step.
	ErrCodeInvalidCode = "INVALID_CODE"

	// ErrCodeMissingTOTPSecret indicates the base TOTP secret is not
	// provisioned. Operator-facing, non-retryable.
	ErrCodeMissingTOTPSecret = "MISSING_TOTP_SECRET"

	// ErrCodeMissingSignatureSecret indicates the HMAC signing secret is not
	// provisioned. Operator-facing, non-retryable.
	ErrCodeMissingSignatureSecret = "MISSING_SIGNATURE_SECRET"

	// ErrCodePayloadInvalid indicates the payload could not be canonicalized.
	ErrCodePayloadInvalid = "PAYLOAD_INVALID"
)

// Error represents an attestation failure with a machine-readable code.
type Error struct {
	// Code is one of the error code constants above.
	Code string

	// Message is a human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors by code so sentinel comparisons survive wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// NewError creates a new Error with the given code and message.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates a new Error that wraps an underlying error.
func WrapError(code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Predefined sentinel errors. Use with errors.Is().
var (
	// ErrInvalidCode is returned when OTP validation fails.
	ErrInvalidCode = NewError(ErrCodeInvalidCode, "one-time code is invalid or expired")

	// ErrMissingTOTPSecret is returned when the base TOTP secret is absent.
	ErrMissingTOTPSecret = NewError(ErrCodeMissingTOTPSecret, "base TOTP secret is not configured")

	// ErrMissingSignatureSecret is returned when the signing secret is absent.
	ErrMissingSignatureSecret = NewError(ErrCodeMissingSignatureSecret, "signature secret is not configured")
)
