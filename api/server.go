// Package api exposes the queue over HTTP: submit, poll, list and purge.
// It translates domain errors into status codes and serializes job records
// straight from the job model.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/queuekit/queuekit/errors"
	"github.com/queuekit/queuekit/job"
	"github.com/queuekit/queuekit/queue"
)

// Server wires HTTP endpoints to a queue.
type Server struct {
	queue *queue.Queue
	srv   *http.Server
}

// NewServer creates a server listening on addr once started.
func NewServer(addr string, q *queue.Queue) *Server {
	s := &Server{queue: q}

	mux := http.NewServeMux()
	mux.HandleFunc("/jobs", s.handleJobs)
	mux.HandleFunc("/jobs/", s.handleJob)
	mux.HandleFunc("/healthz", s.handleHealth)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler returns the underlying handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("API server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

type submitRequest struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type submitResponse struct {
	ID string `json:"id"`
}

type clearResponse struct {
	Removed int `json:"removed"`
}

type healthResponse struct {
	Status string           `json:"status"`
	Stats  queue.QueueStats `json:"stats"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleJobs serves POST /jobs (submit) and GET /jobs (list, optionally
// filtered by ?status=).
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.submitJob(w, r)
	case http.MethodGet:
		s.listJobs(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) submitJob(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "missing job type")
		return
	}

	id, err := s.queue.Submit(req.Type, req.Data)
	if err != nil {
		if errors.IsUnknownType(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("Submit failed", "type", req.Type, "error", err)
		writeError(w, http.StatusInternalServerError, "submit failed")
		return
	}

	writeJSON(w, http.StatusAccepted, submitResponse{ID: id})
}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := job.Status(raw)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		writeJSON(w, http.StatusOK, s.queue.JobsByStatus(status))
		return
	}

	writeJSON(w, http.StatusOK, s.queue.Jobs())
}

// handleJob serves GET /jobs/{id} and DELETE /jobs/completed.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if rest == "" || strings.Contains(rest, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if rest == "completed" && r.Method == http.MethodDelete {
		removed := s.queue.ClearFinished()
		writeJSON(w, http.StatusOK, clearResponse{Removed: removed})
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	j, ok := s.queue.GetJob(rest)
	if !ok {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}

	writeJSON(w, http.StatusOK, j)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Stats:  s.queue.Stats(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
