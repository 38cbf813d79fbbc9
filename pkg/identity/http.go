package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPVerifier resolves opaque bearer tokens by calling an external auth
// endpoint with the token, the way hosted auth backends expose a "who am I"
// route. A 2xx response with a user document authenticates the token.
type HTTPVerifier struct {
	userURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPVerifier creates a verifier that calls userURL with the bearer
// token. The apiKey, if non-empty, is sent as the "apikey" header some
// hosted platforms require alongside the user token.
func NewHTTPVerifier(userURL, apiKey string) *HTTPVerifier {
	return &HTTPVerifier{
		userURL: strings.TrimRight(userURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Verify implements Verifier with one outbound request. The request honors
// ctx, so an aborted caller cancels the lookup.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.userURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if v.apiKey != "" {
		req.Header.Set("apikey", v.apiKey)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity lookup failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("identity endpoint returned status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if id.ID == "" {
		return nil, ErrInvalidToken
	}
	return &id, nil
}
