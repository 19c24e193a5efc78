package api

import (
	"net/http"

	"github.com/vytor/quizzical/internal/logger"
)

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 once questions are loaded and storage answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.Bank == nil || s.Bank.Len() == 0 {
		log.Warn("readiness check failed - no questions loaded")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("Question bank empty"))
		return
	}

	if s.Storage != nil {
		if err := s.Storage.Ping(r.Context()); err != nil {
			log.Warn("readiness check failed - storage: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Storage unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Bank.Summary())
}
