package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
)

// jwksAlgorithms are the signature algorithms accepted on the JWKS path.
var jwksAlgorithms = []jose.SignatureAlgorithm{jose.RS256, jose.ES256, jose.EdDSA}

// JWTVerifier authenticates bearer tokens locally: either HS256 with a
// shared secret, or an asymmetric algorithm with keys fetched from a JWKS
// endpoint.
type JWTVerifier struct {
	secret  []byte
	fetcher JWKSFetcher
	jwksURL string
	now     func() time.Time
}

// NewHS256Verifier creates a verifier for tokens signed with a shared
// secret, the scheme hosted auth backends use for access tokens.
func NewHS256Verifier(secret string) *JWTVerifier {
	return &JWTVerifier{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// NewJWKSVerifier creates a verifier that resolves signing keys from the
// given JWKS URL with the default caching fetcher.
func NewJWKSVerifier(url string) *JWTVerifier {
	return &JWTVerifier{
		fetcher: NewDefaultJWKSFetcher(),
		jwksURL: url,
		now:     time.Now,
	}
}

// SetNow overrides the clock (for testing).
func (v *JWTVerifier) SetNow(now func() time.Time) {
	v.now = now
}

// claims is the subset of registered claims the service needs.
type claims struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Expiry   int64  `json:"exp"`
	IssuedAt int64  `json:"iat"`
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	payload, err := v.verifySignature(ctx, token)
	if err != nil {
		return nil, err
	}

	var c claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}

	now := v.now().Unix()
	if c.Expiry != 0 && c.Expiry <= now {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
	}
	// Allow a little clock skew on iat.
	if c.IssuedAt != 0 && c.IssuedAt > now+5 {
		return nil, fmt.Errorf("%w: token issued in the future", ErrInvalidToken)
	}

	return &Identity{ID: c.Subject, Email: c.Email}, nil
}

func (v *JWTVerifier) verifySignature(ctx context.Context, token string) ([]byte, error) {
	if v.jwksURL == "" {
		jws, err := jose.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		payload, err := jws.Verify(v.secret)
		if err != nil {
			return nil, fmt.Errorf("%w: signature verification failed", ErrInvalidToken)
		}
		return payload, nil
	}

	jws, err := jose.ParseSigned(token, jwksAlgorithms)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	keySet, err := v.fetcher.Fetch(ctx, v.jwksURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	kid := jws.Signatures[0].Header.KeyID
	keys := keySet.Keys
	if kid != "" {
		keys = keySet.Key(kid)
	}
	for _, key := range keys {
		if payload, err := jws.Verify(key); err == nil {
			return payload, nil
		}
	}
	return nil, fmt.Errorf("%w: no JWKS key verified the token", ErrInvalidToken)
}
