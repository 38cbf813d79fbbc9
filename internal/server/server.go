// Package server exposes the attestation service over HTTP. Routing here is
// minimal: one POST endpoint carrying the action envelope, plus a health
// route. Exact external routing is owned by the surrounding platform.
package server

import (
	"net/http"
	"time"

	"github.com/workstead/signet/pkg/attest"
	"github.com/workstead/signet/pkg/identity"
)

// Server wires the attestation service and identity verifier into an HTTP
// handler. It holds no mutable state; every request is independent.
type Server struct {
	service  *attest.Service
	verifier identity.Verifier
}

// New creates a Server.
func New(service *attest.Service, verifier identity.Verifier) *Server {
	return &Server{
		service:  service,
		verifier: verifier,
	}
}

// Handler returns the full HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", s.handleSignature)
	return withRequestID(withCORS(mux))
}

// ListenAndServe starts the server on addr with standard timeouts.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
