// Package identity resolves bearer credentials to user identities. The
// signing core only depends on the Verifier interface; deployments pick a
// local JWT verifier or a remote auth-endpoint verifier.
package identity

import (
	"context"
	"errors"
)

// Identity is the resolved principal behind a bearer token.
type Identity struct {
	// ID is the stable user id the attestation is issued for.
	ID string `json:"id"`

	// Email is informational, for logs and enrollment labels.
	Email string `json:"email,omitempty"`
}

// Verifier resolves a bearer token to an identity.
type Verifier interface {
	// Verify returns the identity behind the token, or ErrInvalidToken when
	// the token cannot be authenticated. Other errors indicate collaborator
	// failures, not a rejected credential.
	Verify(ctx context.Context, token string) (*Identity, error)
}

var (
	// ErrMissingToken is returned when no bearer token is present.
	ErrMissingToken = errors.New("missing bearer token")

	// ErrInvalidToken is returned when the token fails authentication. The
	// message is deliberately generic to avoid account enumeration.
	ErrInvalidToken = errors.New("invalid bearer token")
)
