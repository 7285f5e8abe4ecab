// Package server exposes the engine over a local JSON API. The API backs the
// web dashboard and any external tooling; it performs no AI provider calls.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/viableos/viableos/internal/config"
	"github.com/viableos/viableos/internal/engine"
	"github.com/viableos/viableos/internal/state"
)

// Server routes API requests to the engine.
type Server struct {
	engine   *engine.Engine
	settings *config.Settings
	store    *state.DB // optional; nil disables draft endpoints
	mux      *http.ServeMux
}

// New builds a Server. store may be nil.
func New(e *engine.Engine, settings *config.Settings, store *state.DB) *Server {
	s := &Server{
		engine:   e,
		settings: settings,
		store:    store,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	s.mux.HandleFunc("GET /api/templates/{key}", s.handleGetTemplate)
	s.mux.HandleFunc("GET /api/models", s.handleListModels)
	s.mux.HandleFunc("GET /api/models/{provider}", s.handleModelsByProvider)
	s.mux.HandleFunc("GET /api/presets", s.handlePresets)
	s.mux.HandleFunc("POST /api/validate", s.handleValidate)
	s.mux.HandleFunc("POST /api/check", s.handleCheck)
	s.mux.HandleFunc("POST /api/budget", s.handleBudget)
	s.mux.HandleFunc("POST /api/rules", s.handleRules)
	s.mux.HandleFunc("POST /api/generate", s.handleGenerate)
	s.mux.HandleFunc("GET /api/drafts", s.handleListDrafts)
	s.mux.HandleFunc("POST /api/drafts", s.handleSaveDraft)
	s.mux.HandleFunc("GET /api/drafts/{id}", s.handleGetDraft)
	s.mux.HandleFunc("DELETE /api/drafts/{id}", s.handleDeleteDraft)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	log.Printf("%s %s (%s)", r.Method, r.URL.Path, time.Since(start).Round(time.Millisecond))
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type apiError struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}
