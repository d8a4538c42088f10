package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cwbudde/algo-gamma/drift"
	"github.com/cwbudde/algo-gamma/dsp/core"
	"github.com/cwbudde/algo-gamma/dsp/rebin"
	"github.com/cwbudde/algo-gamma/dsp/spectrum"
	"github.com/cwbudde/algo-gamma/internal/cache"
	"github.com/cwbudde/algo-gamma/internal/logging"
	"github.com/cwbudde/algo-gamma/internal/specio"
)

// Error codes of APIError.
const (
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeInternal         = "INTERNAL"
)

// APIResponse is the envelope of every response.
type APIResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Meta    APIMeta   `json:"meta"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta carries response metadata.
type APIMeta struct {
	RequestID string `json:"request_id,omitempty"`
	Timestamp string `json:"timestamp"`
}

// CorrectRequest is the body of POST /api/v1/correct. Config keys that are
// omitted keep their defaults.
type CorrectRequest struct {
	Reference []float64    `json:"reference"`
	Shifted   []float64    `json:"shifted"`
	Config    drift.Config `json:"config"`
	Diagnose  bool         `json:"diagnose,omitempty"`
}

// CorrectResponse is the data of a successful correction.
type CorrectResponse struct {
	Key         string             `json:"key"`
	Cached      bool               `json:"cached"`
	Config      drift.Config       `json:"config"`
	Forward     []float64          `json:"forward"`
	Inverse     []float64          `json:"inverse"`
	Table       specio.Document    `json:"table"`
	Diagnostics *drift.Diagnostics `json:"diagnostics,omitempty"`
}

// HealthInfo is the data of GET /api/v1/health.
type HealthInfo struct {
	Status  string      `json:"status"`
	Version string      `json:"version"`
	Uptime  string      `json:"uptime"`
	Cache   cache.Stats `json:"cache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "only GET is allowed")
		return
	}

	respond(w, r, http.StatusOK, HealthInfo{
		Status:  "healthy",
		Version: s.cfg.Version,
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Cache:   s.results.Stats(),
	})
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "only POST is allowed")
		return
	}

	req := CorrectRequest{Config: drift.DefaultConfig()}

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	ref, err := spectrum.New(req.Reference)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, CodeInvalidInput, "reference: "+err.Error())
		return
	}

	shifted, err := spectrum.New(req.Shifted)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, CodeInvalidInput, "shifted: "+err.Error())
		return
	}

	start := time.Now()
	key := drift.Key(ref, shifted, req.Config)

	res, cached := s.results.Get(key)
	if !cached {
		res, err = drift.Correct(ref, shifted, req.Config)
		if err != nil {
			respondError(w, r, statusFor(err), codeFor(err), err.Error())
			return
		}

		s.results.Put(key, res)
	}

	out := CorrectResponse{
		Key:     key,
		Cached:  cached,
		Config:  res.Config,
		Forward: res.Forward.Coeffs(),
		Inverse: res.Inverse.Coeffs(),
		Table:   specio.NewDocument(res.Table),
	}

	if req.Diagnose {
		d, err := drift.Diagnose(ref, shifted, res)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, CodeInternal, err.Error())
			return
		}
		out.Diagnostics = d
	}

	logging.Correction(r.Context(), res.Table.Len(), res.Config.Degree, res.Config.Step,
		res.Table.MassDrift(), time.Since(start), "cached", cached)

	respond(w, r, http.StatusOK, out)
}

// Correction errors caused by the request are 422; anything else is 500.
func statusFor(err error) int {
	if isInputError(err) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func codeFor(err error) string {
	if isInputError(err) {
		return CodeInvalidInput
	}
	return CodeInternal
}

func isInputError(err error) bool {
	for _, target := range []error{
		core.ErrShapeMismatch,
		core.ErrInsufficientPoints,
		core.ErrDegenerateFit,
		core.ErrInvalidDegree,
		core.ErrInvalidStep,
		core.ErrNonFinite,
		core.ErrNegativeCount,
		rebin.ErrUnknownMethod,
		spectrum.ErrEmpty,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	write(w, r, status, APIResponse{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	logging.WarnContext(r.Context(), "request failed", "code", code, "error", message)
	write(w, r, status, APIResponse{Error: &APIError{Code: code, Message: message}})
}

func write(w http.ResponseWriter, r *http.Request, status int, resp APIResponse) {
	resp.Meta = APIMeta{
		RequestID: logging.RequestID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.ErrorContext(r.Context(), "encode response", "error", err)
	}
}
