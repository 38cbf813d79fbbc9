package totp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcSecret is the RFC 6238 Appendix B test secret "12345678901234567890"
// in base32.
const rfcSecret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func TestGenerateCodeRFCVectors(t *testing.T) {
	// RFC 6238 Appendix B vectors (SHA-1), truncated to 6 digits.
	tests := []struct {
		unix int64
		want string
	}{
		{59, "287082"},
		{1111111109, "081804"},
		{1111111111, "050471"},
		{1234567890, "005924"},
		{2000000000, "279037"},
	}
	for _, tt := range tests {
		code, err := GenerateCode(rfcSecret, time.Unix(tt.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tt.want, code, "unix=%d", tt.unix)
	}
}

func TestDeriveSecretDeterministic(t *testing.T) {
	a := DeriveSecret("base", "u-42")
	b := DeriveSecret("base", "u-42")
	assert.Equal(t, a, b)

	// SHA-1 digest is 20 bytes, which is exactly 32 base32 characters.
	assert.Len(t, a, 32)
}

func TestDeriveSecretUniquePerUser(t *testing.T) {
	seen := make(map[string]string)
	for _, id := range []string{"u-1", "u-2", "u-3", "alice", "bob", "u-42"} {
		secret := DeriveSecret("base", id)
		prev, dup := seen[secret]
		assert.False(t, dup, "secret collision between %q and %q", prev, id)
		seen[secret] = id
	}
}

func TestValidateRoundTrip(t *testing.T) {
	secret := DeriveSecret("base", "u-42")
	now := time.Unix(1700000000, 0)

	code, err := GenerateCode(secret, now)
	require.NoError(t, err)

	ok, err := ValidateAt(secret, code, 0, now)
	require.NoError(t, err)
	assert.True(t, ok, "code generated at t must validate at t with window 0")
}

func TestValidateWindow(t *testing.T) {
	secret := DeriveSecret("base", "u-42")
	// Step-aligned so that +31s is guaranteed to land in the next step.
	issued := time.Unix(1700000010, 0)
	skewed := issued.Add(31 * time.Second)

	code, err := GenerateCode(secret, issued)
	require.NoError(t, err)

	ok, err := ValidateAt(secret, code, 0, skewed)
	require.NoError(t, err)
	assert.False(t, ok, "window 0 must reject a code from the previous step")

	ok, err = ValidateAt(secret, code, 1, skewed)
	require.NoError(t, err)
	assert.True(t, ok, "window 1 must accept a code from the previous step")
}

func TestValidateRejectsGarbage(t *testing.T) {
	secret := DeriveSecret("base", "u-42")
	now := time.Unix(1700000000, 0)

	ok, err := ValidateAt(secret, "000000", 1, now)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = ValidateAt(secret, "12345", 1, now)
	require.NoError(t, err)
	assert.False(t, ok, "wrong-length code must not validate")

	_, err = ValidateAt("not base32!!", "123456", 1, now)
	assert.Error(t, err)
}

func TestEnrollmentURL(t *testing.T) {
	u := EnrollmentURL("Signet", "u-42", "ABC234")
	assert.Contains(t, u, "otpauth://totp/Signet:u-42?")
	assert.Contains(t, u, "secret=ABC234")
	assert.Contains(t, u, "issuer=Signet")
	assert.Contains(t, u, "period=30")
}
