// Package server exposes task execution over HTTP for browser front
// ends and scripted clients.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/akhilimadabathuni/ai-browser-agent/pkg/agent"
	"github.com/akhilimadabathuni/ai-browser-agent/pkg/logging"
)

// Executor runs one task to completion
type Executor interface {
	Execute(ctx context.Context, task string) (*agent.Result, error)
}

// Server serves the task execution API
type Server struct {
	executor Executor
	logger   *logging.Logger
}

// New creates a server over the given executor
func New(executor Executor, logger *logging.Logger) *Server {
	return &Server{
		executor: executor,
		logger:   logger,
	}
}

// Handler returns the HTTP handler with routing and CORS applied.
// CORS is open because the API is meant to be called from a local
// front end served on a different port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/execute-task", s.handleExecuteTask)
	mux.HandleFunc("/healthz", s.handleHealth)
	return cors.AllowAll().Handler(mux)
}

// ListenAndServe serves the API on the given address until the
// context is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logf("serving on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type executeTaskRequest struct {
	Task string `json:"task"`
}

type executeTaskResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleExecuteTask runs a task synchronously and returns its answer.
// The request blocks until the agent finishes, matching how front ends
// poll a single in-flight task.
func (s *Server) handleExecuteTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req executeTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Task == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no task provided"})
		return
	}

	s.logf("executing task: %s", req.Task)

	result, err := s.executor.Execute(r.Context(), req.Task)
	if err != nil {
		s.logf("task failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, executeTaskResponse{Result: result.Answer})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) logf(format string, v ...interface{}) {
	if s.logger != nil {
		s.logger.Infof(format, v...)
	}
}
