package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/workstead/signet/pkg/attest"
	"github.com/workstead/signet/pkg/identity"
)

// Wire-level error codes. These are the fixed strings of the HTTP contract.
const (
	codeUnauthorized      = "unauthorized"
	codeInvalidJSON       = "invalid_json"
	codeCodeRequired      = "code_required"
	codeInvalidCode       = "invalid_code"
	codeUnsupportedAction = "unsupported_action"
	codeMethodNotAllowed  = "method_not_allowed"
	codeMissingTOTPSecret = "missing_totp_secret"
	codeMissingSignSecret = "missing_signature_secret"
	codeInvalidPayload    = "invalid_payload"
	codeInternal          = "internal_error"
)

// signatureRequest is the action envelope. Action defaults to "verify";
// payload is any JSON value and is treated as null when absent.
type signatureRequest struct {
	Action   string `json:"action"`
	Code     string `json:"code"`
	Payload  any    `json:"payload"`
	SignedAt string `json:"signedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSignature(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed)
		return
	}

	reqID := r.Header.Get(requestIDHeader)

	token := extractBearer(r)
	id, err := s.verifier.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrMissingToken) || errors.Is(err, identity.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, codeUnauthorized)
			return
		}
		log.Printf("[%s] identity lookup failed: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, codeInternal)
		return
	}

	var req signatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidJSON)
		return
	}

	action := req.Action
	if action == "" {
		action = "verify"
	}

	switch action {
	case "verify":
		if req.Code == "" {
			writeError(w, http.StatusBadRequest, codeCodeRequired)
			return
		}
		att, err := s.service.VerifyAndSign(id.ID, req.Code, req.Payload)
		if err != nil {
			s.writeServiceError(w, reqID, err)
			return
		}
		writeJSON(w, http.StatusOK, att)

	case "sign":
		att, err := s.service.Sign(id.ID, req.SignedAt, req.Payload)
		if err != nil {
			s.writeServiceError(w, reqID, err)
			return
		}
		// Flagged open question: "sign" issues without an OTP challenge.
		// Logged so deployments can audit its use.
		log.Printf("[%s] direct signature issued for user %s", reqID, id.ID)
		writeJSON(w, http.StatusOK, att)

	default:
		writeError(w, http.StatusBadRequest, codeUnsupportedAction)
	}
}

// writeServiceError maps attest errors onto the wire contract. Configuration
// errors are logged for operators; authentication failures are returned with
// generic bodies only.
func (s *Server) writeServiceError(w http.ResponseWriter, reqID string, err error) {
	switch {
	case errors.Is(err, attest.ErrInvalidCode):
		writeError(w, http.StatusUnauthorized, codeInvalidCode)
	case errors.Is(err, attest.ErrMissingTOTPSecret):
		log.Printf("[%s] configuration error: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, codeMissingTOTPSecret)
	case errors.Is(err, attest.ErrMissingSignatureSecret):
		log.Printf("[%s] configuration error: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, codeMissingSignSecret)
	default:
		var ae *attest.Error
		if errors.As(err, &ae) && ae.Code == attest.ErrCodePayloadInvalid {
			writeError(w, http.StatusBadRequest, codeInvalidPayload)
			return
		}
		log.Printf("[%s] signature request failed: %v", reqID, err)
		writeError(w, http.StatusInternalServerError, codeInternal)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorResponse{Error: code})
}
