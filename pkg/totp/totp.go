// Package totp implements RFC 6238 time-based one-time passwords and the
// per-user secret derivation used for authenticator enrollment.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// Digits is the code length.
	Digits = 6

	// Period is the TOTP time step.
	Period = 30 * time.Second
)

// DeriveSecret derives a per-user TOTP secret from a base secret and a user
// id. The construction is SHA-1 over "base:userID", base32-encoded with the
// RFC 4648 uppercase alphabet. SHA-1 here acts as a PRF for compatibility
// with standard TOTP enrollments, not as a collision-resistant hash.
// Deterministic: the same inputs always yield the same secret.
func DeriveSecret(baseSecret, userID string) string {
	sum := sha1.Sum([]byte(baseSecret + ":" + userID))
	return base32.StdEncoding.EncodeToString(sum[:])
}

// EnrollmentURL builds the otpauth:// URL encoding a secret for QR-based
// authenticator enrollment.
func EnrollmentURL(issuer, account, secret string) string {
	q := url.Values{}
	q.Set("secret", secret)
	q.Set("issuer", issuer)
	q.Set("digits", fmt.Sprintf("%d", Digits))
	q.Set("period", fmt.Sprintf("%d", int(Period.Seconds())))
	label := url.PathEscape(issuer + ":" + account)
	return "otpauth://totp/" + label + "?" + q.Encode()
}

// GenerateCode computes the 6-digit code for a base32 secret at the given
// time.
func GenerateCode(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return hotp(key, counter(t)), nil
}

// Validate checks a submitted code against the secret at the current time.
// See ValidateAt for the window semantics.
func Validate(secret, code string, window int) (bool, error) {
	return ValidateAt(secret, code, window, time.Now())
}

// ValidateAt checks a submitted code against the secret at time t. The
// window is the number of adjacent time steps accepted on each side of the
// current one, so window=1 checks three counters in total. Each candidate is
// compared in constant time.
func ValidateAt(secret, code string, window int, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}
	if len(code) != Digits {
		return false, nil
	}

	center := counter(t)
	for offset := -int64(window); offset <= int64(window); offset++ {
		c := int64(center) + offset
		if c < 0 {
			continue
		}
		candidate := hotp(key, uint64(c))
		if subtle.ConstantTimeCompare([]byte(candidate), []byte(code)) == 1 {
			return true, nil
		}
	}
	return false, nil
}

func counter(t time.Time) uint64 {
	return uint64(t.Unix() / int64(Period.Seconds()))
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(secret, "="))
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid base32 secret: %w", err)
	}
	return key, nil
}

// hotp implements RFC 4226 HMAC-based one-time passwords with dynamic
// truncation to 6 zero-padded digits.
func hotp(key []byte, counter uint64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	code := (uint32(sum[offset])&0x7f)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	return fmt.Sprintf("%06d", code%1000000)
}
