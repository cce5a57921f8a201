// Package server exposes the authenticated operator control plane.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/control"
)

// Server mutates exactly one piece of scan-engine state: the run flag. It
// never touches the catalog or the quote path.
type Server struct {
	log        zerolog.Logger
	state      *control.RunState
	apiKey     string
	simulation bool
	hub        *Hub
	httpServer *http.Server
}

func New(log zerolog.Logger, state *control.RunState, addr, apiKey string, simulation bool) *Server {
	s := &Server{
		log:        log,
		state:      state,
		apiKey:     apiKey,
		simulation: simulation,
		hub:        NewHub(log),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /start", s.requireAuth(s.handleStart))
	mux.HandleFunc("POST /stop", s.requireAuth(s.handleStop))
	mux.HandleFunc("GET /ws", s.hub.Handle)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.logRequests(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Hub returns the result broadcaster so the scanner can publish into it.
func (s *Server) Hub() *Hub { return s.hub }

// Handler exposes the full middleware chain for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves in the background. Shutdown errors other than a clean close are
// logged, not fatal: the control plane must not take the scan loop down.
func (s *Server) Start() {
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error().Err(err).Msg("control server stopped")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "online",
		"simulation": s.simulation,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"running":    s.state.Running(),
		"simulation": s.simulation,
	})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	s.state.Start()
	writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.state.Stop()
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

// requireAuth validates the bearer credential before any state mutation. A
// missing or wrong credential is rejected with 401 and touches nothing.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing credential"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credential"})
			return
		}
		next(w, r)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("control request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
