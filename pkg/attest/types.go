// Package attest issues and verifies HMAC attestations over canonicalized
// JSON payloads, gated by per-user TOTP codes.
package attest

import "time"

// TimeFormat is the wire format for attestation timestamps: ISO-8601 UTC
// with millisecond precision.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

// AttestationTTL is how long a freshly issued OTP-gated attestation remains
// valid for the caller's persistence layer.
const AttestationTTL = 5 * time.Minute

// Attestation is the signed record asserting that a user approved a payload
// at a point in time. It is created fresh on each successful request and
// never mutated; persistence and expiry are the caller's responsibility.
type Attestation struct {
	// SignedBy is the authenticated user id.
	SignedBy string `json:"signedBy"`

	// SignedAt is the signing timestamp in TimeFormat.
	SignedAt string `json:"signedAt"`

	// SignatureHash is the standard-base64 HMAC-SHA256 digest binding
	// {SignedBy, SignedAt, canonical payload}.
	SignatureHash string `json:"signatureHash"`

	// ExpiresAt is set only for OTP-gated attestations.
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// Timestamp formats a time in the attestation wire format.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}
