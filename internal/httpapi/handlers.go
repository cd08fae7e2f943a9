package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anchorplan/anchorplan/pkg/errors"
	"github.com/anchorplan/anchorplan/pkg/pipeline"
	"github.com/anchorplan/anchorplan/pkg/placement"
	"github.com/anchorplan/anchorplan/pkg/planio"
)

// PlacementRequest is the body of POST /v1/placements. The plan uses the
// same document format the CLI reads and writes.
type PlacementRequest struct {
	Plan    planio.Plan       `json:"plan"`
	Options placement.Options `json:"options"`

	// Refresh bypasses cache reads for this run.
	Refresh bool `json:"refresh,omitempty"`
}

// PlacementResponse is the body of a successful placement. RunID is set
// when the run was archived.
type PlacementResponse struct {
	RunID string `json:"run_id,omitempty"`
	pipeline.Result
}

// OptimizationRequest is the body of POST /v1/optimizations.
type OptimizationRequest struct {
	Plan    planio.Plan              `json:"plan"`
	Options placement.DensityOptions `json:"options"`
}

// OptimizationResponse reports the surviving anchors of a density pass.
type OptimizationResponse struct {
	Anchors []placement.Anchor `json:"anchors"`
	Removed int                `json:"removed"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and the human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req PlacementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.Plan.Validate(); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidPlan, err, "invalid plan"))
		return
	}
	if len(req.Plan.Walls) == 0 {
		s.respondError(w, r, errors.New(errors.ErrCodeInvalidPlan, "plan has no walls"))
		return
	}

	opts := req.Options
	if opts.ScaleRatio == 0 {
		opts.ScaleRatio = req.Plan.ScaleRatio
	}
	// A placement area drawn in the plan applies unless the request
	// already set one.
	if !opts.PlacementAreaEnabled && len(req.Plan.PlacementArea) >= 3 {
		opts.PlacementArea = req.Plan.PlacementArea
		opts.PlacementAreaEnabled = true
	}
	opts.Logger = s.cfg.Logger

	res, err := s.cfg.Runner.Execute(r.Context(), req.Plan.Walls, req.Plan.Anchors, pipeline.Options{
		Placement: opts,
		Refresh:   req.Refresh,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := PlacementResponse{Result: *res}
	if s.cfg.Store != nil {
		rec := NewRunRecord(res, opts)
		// Archiving is best effort; a storage failure never fails the
		// placement itself.
		if err := s.cfg.Store.SaveRun(r.Context(), rec); err != nil {
			s.cfg.Logger.Warn("Run not archived", "err", err)
		} else {
			resp.RunID = rec.ID
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOptimization(w http.ResponseWriter, r *http.Request) {
	var req OptimizationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := req.Plan.Validate(); err != nil {
		s.respondError(w, r, errors.Wrap(errors.ErrCodeInvalidPlan, err, "invalid plan"))
		return
	}

	opts := req.Options
	if opts.ScaleRatio == 0 {
		opts.ScaleRatio = req.Plan.ScaleRatio
	}
	if len(opts.PlacementArea) == 0 {
		opts.PlacementArea = req.Plan.PlacementArea
	}
	opts.Logger = s.cfg.Logger

	kept, err := s.cfg.Runner.Optimize(r.Context(), req.Plan.Anchors, req.Plan.Walls, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, OptimizationResponse{
		Anchors: kept,
		Removed: len(req.Plan.Anchors) - len(kept),
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "run archive is not configured"))
		return
	}
	id := chi.URLParam(r, "id")
	rec, err := s.cfg.Store.GetRun(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, rec)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.respondError(w, r, errors.New(errors.ErrCodeUnsupported, "run archive is not configured"))
		return
	}
	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := parseLimit(v)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		limit = n
	}
	recs, err := s.cfg.Store.RecentRuns(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"runs": recs})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads one JSON document from the request body, capped at
// maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func parseLimit(v string) (int64, error) {
	var n int64
	for _, c := range v {
		if c < '0' || c > '9' {
			return 0, errors.New(errors.ErrCodeInvalidInput, "limit %q: must be a positive integer", v)
		}
		n = n*10 + int64(c-'0')
		if n > 1000 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "limit %q: at most 1000", v)
		}
	}
	if n == 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "limit %q: must be a positive integer", v)
	}
	return n, nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.cfg.Logger.Error("Encode response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForCode(errors.GetCode(err))
	if status >= http.StatusInternalServerError {
		s.cfg.Logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.respondJSON(w, status, ErrorResponse{Error: ErrorDetail{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusForCode maps engine error codes to HTTP statuses. Unknown codes
// are treated as internal errors.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidOptions,
		errors.ErrCodeInvalidWalls,
		errors.ErrCodeInvalidPolygon,
		errors.ErrCodeInvalidScope,
		errors.ErrCodeInvalidPlan,
		errors.ErrCodeInvalidTuning,
		errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeRunNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
