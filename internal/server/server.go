package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/recollect-ai/recollect/internal/config"
	"github.com/recollect-ai/recollect/internal/store"
	"github.com/recollect-ai/recollect/internal/summary"
)

// Server is the recollect HTTP API server.
type Server struct {
	db         *store.DB
	summarizer summary.Summarizer
	recall     config.RecallConfig
	router     chi.Router
	version    string
	started    time.Time
}

// New creates a new Server with the given database, summarizer, and recall policy.
func New(db *store.DB, summarizer summary.Summarizer, recall config.RecallConfig, version string) *Server {
	s := &Server{
		db:         db,
		summarizer: summarizer,
		recall:     recall,
		version:    version,
		started:    time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/sessions/init", s.handleSessionInit)
		r.Post("/sessions/{sessionID}/messages", s.handleAddMessage)
		r.Post("/sessions/{sessionID}/observations", s.handleAddObservation)
		r.Post("/sessions/{sessionID}/complete", s.handleCompleteSession)
		r.Post("/sessions/{sessionID}/end", s.handleEndSession)

		r.Get("/context", s.handleGetContext)

		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{sessionID}", s.handleSessionDetail)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"version":    s.version,
		"uptime":     time.Since(s.started).Seconds(),
		"db":         dbOK,
		"db_path":    s.db.Path,
		"summarizer": s.summarizer.Name(),
	})
}
