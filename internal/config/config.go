// Package config loads process configuration for the signet server. Values
// are read once at startup and injected into constructors; nothing reads
// the environment ambiently after that.
package config

import "os"

// Config holds the server configuration. The two signing secrets must never
// be logged or echoed in responses.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// TOTPSecret is the base secret user TOTP secrets are derived from.
	TOTPSecret string

	// SignatureSecret keys the HMAC attestation signer.
	SignatureSecret string

	// JWTSecret enables local HS256 bearer verification when set.
	JWTSecret string

	// JWKSURL enables local asymmetric bearer verification when set.
	JWKSURL string

	// AuthURL enables remote bearer verification against an auth endpoint
	// when set. Takes precedence over local verification.
	AuthURL string

	// AuthAPIKey is sent alongside remote verification requests if set.
	AuthAPIKey string
}

// FromEnv reads configuration from SIGNET_* environment variables.
func FromEnv() *Config {
	cfg := &Config{
		Addr:            os.Getenv("SIGNET_ADDR"),
		TOTPSecret:      os.Getenv("SIGNET_TOTP_SECRET"),
		SignatureSecret: os.Getenv("SIGNET_SIGNATURE_SECRET"),
		JWTSecret:       os.Getenv("SIGNET_JWT_SECRET"),
		JWKSURL:         os.Getenv("SIGNET_JWKS_URL"),
		AuthURL:         os.Getenv("SIGNET_AUTH_URL"),
		AuthAPIKey:      os.Getenv("SIGNET_AUTH_APIKEY"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg
}
