package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("SIGNET_ADDR", ":9090")
	t.Setenv("SIGNET_TOTP_SECRET", "base")
	t.Setenv("SIGNET_SIGNATURE_SECRET", "sig")
	t.Setenv("SIGNET_JWT_SECRET", "jwt")
	t.Setenv("SIGNET_AUTH_URL", "https://auth.example.com/auth/v1/user")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "base", cfg.TOTPSecret)
	assert.Equal(t, "sig", cfg.SignatureSecret)
	assert.Equal(t, "jwt", cfg.JWTSecret)
	assert.Equal(t, "https://auth.example.com/auth/v1/user", cfg.AuthURL)
}

func TestFromEnvDefaultAddr(t *testing.T) {
	t.Setenv("SIGNET_ADDR", "")
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
}
