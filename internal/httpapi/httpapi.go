// Package httpapi serves plan.Plan over net/http, wiring the same
// logging-middleware-plus-sendError shape the teacher's main.go used for
// its recommendations endpoint, generalized from one hardcoded route to a
// Server holding the collaborators a real deployment needs (row cache,
// manifest, tunables).
package httpapi

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nomadstar/classplanner/internal/cache"
	"github.com/nomadstar/classplanner/internal/plan"
	"github.com/nomadstar/classplanner/internal/rows"
)

// Server holds the collaborators /api/v1/plan needs: a manifest resolving
// sheet names to CSV paths, a cache in front of rows.Load, and the tunable
// config to hand to plan.Plan.
type Server struct {
	Manifest rows.Manifest
	Cache    *cache.Store
	Config   plan.Config
}

// NewMux builds the routed, middleware-wrapped handler, mirroring the
// teacher's mux.HandleFunc + loggingMiddleware(authMiddleware(mux)) chain
// minus auth, since this service has no student-identity concept to
// authenticate against.
func (s *Server) NewMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/plan", s.handlePlan)
	mux.HandleFunc("/api/v1/health", handleHealth)
	return loggingMiddleware(mux)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("completed in %v", time.Since(start))
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only GET requests allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "classplanner",
	})
}

// planRequest is the wire envelope: request fields per §6.2 plus the
// sheet/malla_id selector resolved against the server's Manifest (decision
// (f) in DESIGN.md — plan.Plan itself never sees these two fields).
type planRequest struct {
	plan.Request
	Sheet   string `json:"sheet"`
	MallaID string `json:"malla_id"`
}

// planResponse wraps plan.Response with a RunID, stamped here rather than
// inside plan.Plan so plan(r) stays byte-for-byte deterministic and the
// id is purely a caller-side correlation token.
type planResponse struct {
	RunID string `json:"run_id"`
	*plan.Response
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "only POST requests allowed")
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "INVALID_REQUEST", "failed to parse request body: "+err.Error())
		return
	}

	sheet := req.Sheet
	if sheet == "" {
		sheet = req.MallaID
	}
	files, err := s.Manifest.Resolve(sheet)
	if err != nil {
		sendError(w, http.StatusBadRequest, "UNKNOWN_SHEET", err.Error())
		return
	}

	ctx := r.Context()
	docs, err := s.Cache.Load(ctx, files)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "ROW_LOAD_FAILED", err.Error())
		return
	}

	resp, planErr := plan.Plan(ctx, docs, req.Request, s.Config)
	if planErr != nil {
		sendError(w, statusForKind(string(planErr.ErrorKind)), string(planErr.ErrorKind), planErr.Message)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{RunID: uuid.NewString(), Response: resp})
}

func statusForKind(kind string) int {
	switch kind {
	case "InputParse", "DuplicateName", "DanglingPrerequisite", "CyclicCurriculum":
		return http.StatusBadRequest
	case "Cancelled", "TimeBudgetExceeded":
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"status":     "error",
		"error_code": code,
		"message":    message,
	})
}
