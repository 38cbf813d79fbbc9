package attest

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignDeterministic(t *testing.T) {
	s := NewSigner("signature-secret")

	first := s.Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":1,"b":2}`)
	second := s.Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":1,"b":2}`)
	assert.Equal(t, first, second)

	// Output must be standard base64 of a 32-byte digest.
	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestSignPerturbation(t *testing.T) {
	s := NewSigner("signature-secret")
	base := s.Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":1}`)

	assert.NotEqual(t, base, s.Sign("u-43", "2026-01-02T03:04:05.000Z", `{"a":1}`))
	assert.NotEqual(t, base, s.Sign("u-42", "2026-01-02T03:04:06.000Z", `{"a":1}`))
	assert.NotEqual(t, base, s.Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":2}`))
	assert.NotEqual(t, base, NewSigner("other-secret").Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":1}`))
}

func TestVerify(t *testing.T) {
	s := NewSigner("signature-secret")
	sig := s.Sign("u-42", "2026-01-02T03:04:05.000Z", `{"a":1}`)

	assert.True(t, s.Verify("u-42", "2026-01-02T03:04:05.000Z", `{"a":1}`, sig))
	assert.False(t, s.Verify("u-42", "2026-01-02T03:04:05.000Z", `{"a":2}`, sig))
	assert.False(t, s.Verify("u-42", "2026-01-02T03:04:05.000Z", `{"a":1}`, "bogus"))
}
