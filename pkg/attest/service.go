package attest

import (
	"time"

	"github.com/workstead/signet/pkg/canonical"
	"github.com/workstead/signet/pkg/totp"
)

// DefaultWindow is the number of adjacent TOTP time steps accepted on each
// side of the current one during verification.
const DefaultWindow = 1

// Service orchestrates OTP-gated and direct attestation issuance. It holds
// no mutable state; the two secrets are read-only configuration and every
// call is an independent computation.
type Service struct {
	totpSecret string
	signer     *Signer
	hasSecret  bool
	window     int
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithWindow overrides the accepted TOTP skew window.
func WithWindow(window int) Option {
	return func(s *Service) { s.window = window }
}

// WithNow overrides the clock (for testing).
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service. Empty secrets are tolerated at construction
// and reported per call as configuration errors, matching the wire contract.
func NewService(totpSecret, signatureSecret string, opts ...Option) *Service {
	s := &Service{
		totpSecret: totpSecret,
		window:     DefaultWindow,
		now:        time.Now,
	}
	if signatureSecret != "" {
		s.signer = NewSigner(signatureSecret)
		s.hasSecret = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerifyAndSign validates a submitted one-time code against the user's
// derived TOTP secret and, on success, issues an attestation with an expiry
// of AttestationTTL.
func (s *Service) VerifyAndSign(userID, code string, payload any) (*Attestation, error) {
	if s.totpSecret == "" {
		return nil, ErrMissingTOTPSecret
	}
	if !s.hasSecret {
		return nil, ErrMissingSignatureSecret
	}

	secret := totp.DeriveSecret(s.totpSecret, userID)
	ok, err := totp.ValidateAt(secret, code, s.window, s.now())
	if err != nil {
		return nil, WrapError(ErrCodeInvalidCode, "code validation failed", err)
	}
	if !ok {
		return nil, ErrInvalidCode
	}

	now := s.now()
	att, err := s.issue(userID, Timestamp(now), payload)
	if err != nil {
		return nil, err
	}
	att.ExpiresAt = Timestamp(now.Add(AttestationTTL))
	return att, nil
}

// Sign issues an attestation without an OTP check. The caller's identity
// must already be established upstream. If signedAt is empty the current
// time is used; a caller-supplied value is signed verbatim, which supports
// re-signing a previously approved record.
func (s *Service) Sign(userID, signedAt string, payload any) (*Attestation, error) {
	if !s.hasSecret {
		return nil, ErrMissingSignatureSecret
	}
	if signedAt == "" {
		signedAt = Timestamp(s.now())
	}
	return s.issue(userID, signedAt, payload)
}

func (s *Service) issue(userID, signedAt string, payload any) (*Attestation, error) {
	canonicalPayload, err := canonical.Stringify(payload)
	if err != nil {
		return nil, WrapError(ErrCodePayloadInvalid, "payload cannot be canonicalized", err)
	}
	return &Attestation{
		SignedBy:      userID,
		SignedAt:      signedAt,
		SignatureHash: s.signer.Sign(userID, signedAt, canonicalPayload),
	}, nil
}
