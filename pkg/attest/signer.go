package attest

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signer produces and re-verifies attestation signatures with a server-held
// secret. The signed message is the literal concatenation
// "userID|signedAt|canonicalPayload"; the output is the standard-base64
// HMAC-SHA256 digest.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer keyed with the UTF-8 bytes of the secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign computes the signature hash for the given fields. Deterministic:
// identical inputs always yield an identical signature.
func (s *Signer) Sign(userID, signedAt, canonicalPayload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(userID + "|" + signedAt + "|" + canonicalPayload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the signature and compares it in constant time. Used by
// callers that persisted an attestation and later need to re-check it.
func (s *Signer) Verify(userID, signedAt, canonicalPayload, signatureHash string) bool {
	expected := s.Sign(userID, signedAt, canonicalPayload)
	return hmac.Equal([]byte(expected), []byte(signatureHash))
}
