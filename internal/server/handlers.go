package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/ctbig/bigint"
	apperrors "github.com/agbru/ctbig/internal/errors"
)

// GenerateResponse is the JSON response of the /generate endpoint.
type GenerateResponse struct {
	// Kind is "prime" or "safe-prime".
	Kind string `json:"kind"`
	// Bits is the declared bit width of the value.
	Bits uint `json:"bits"`
	// Value is the generated prime in decimal.
	Value string `json:"value"`
	// DurationMS is the search time in milliseconds.
	DurationMS int64 `json:"duration_ms"`
}

// ErrorResponse is the standardized JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON response of the /health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// BackendsResponse is the JSON response of the /backends endpoint.
type BackendsResponse struct {
	Backends []string `json:"backends"`
	Active   string   `json:"active"`
}

// handleHealth reports server liveness and the configured backend.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Backend: s.cfg.Backend,
	})
}

// handleBackends lists the registered arithmetic backends.
func (s *Server) handleBackends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, BackendsResponse{
		Backends: bigint.BackendNames(),
		Active:   s.cfg.Backend,
	})
}

// handleGenerate runs a prime search for the requested width.
//
// Query parameters:
//   - bits: candidate width (required, 16..MaxRequestBits)
//   - safe: "true" to request a safe prime (optional)
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	bits, safe, err := parseGenerateParams(r, s.maxBits)
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.GenerateTimeout)
	defer cancel()

	start := time.Now()
	var p *bigint.Uint
	kind := "prime"
	if safe {
		kind = "safe-prime"
		p, err = s.gen.SafePrime(ctx, bits)
	} else {
		p, err = s.gen.Prime(ctx, bits)
	}
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsContextError(err) {
			status = http.StatusGatewayTimeout
		}
		s.logger.Error().Err(err).Uint("bits", bits).Msg("generation failed")
		s.writeErrorResponse(w, status, "generation failed: "+err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, GenerateResponse{
		Kind:       kind,
		Bits:       p.BitLen(),
		Value:      p.LeakyString(),
		DurationMS: time.Since(start).Milliseconds(),
	})
}

// parseGenerateParams validates the /generate query string.
func parseGenerateParams(r *http.Request, maxBits uint) (bits uint, safe bool, err error) {
	bitsParam := r.URL.Query().Get("bits")
	if bitsParam == "" {
		return 0, false, apperrors.NewConfigError("missing required parameter 'bits'")
	}
	parsed, perr := strconv.ParseUint(bitsParam, 10, 32)
	if perr != nil {
		return 0, false, apperrors.NewConfigError("invalid 'bits' parameter: %q", bitsParam)
	}
	if parsed < 16 || uint(parsed) > maxBits {
		return 0, false, apperrors.NewConfigError("'bits' must be between 16 and %d, got %d", maxBits, parsed)
	}

	if safeParam := r.URL.Query().Get("safe"); safeParam != "" {
		safe, perr = strconv.ParseBool(safeParam)
		if perr != nil {
			return 0, false, apperrors.NewConfigError("invalid 'safe' parameter: %q", safeParam)
		}
	}
	return uint(parsed), safe, nil
}

// writeJSONResponse writes data as a JSON response with the given status code.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeErrorResponse helper function to write a standardized error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}
