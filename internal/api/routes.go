package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Get("/questions", s.handleQuestions)

	r.Route("/quiz", func(r chi.Router) {
		r.Post("/", s.handleGenerateQuiz)
		r.Get("/", s.handleActiveQuiz)
		r.Delete("/", s.handleExitQuiz)
		r.Get("/questions/{index}", s.handleQuestion)
		r.Post("/questions/{index}/answer", s.handleAnswer)
		r.Post("/questions/{index}/swap", s.handleSwap)
		r.Post("/questions/{index}/lock", s.handleLock)
		r.Delete("/questions/{index}/lock", s.handleUnlock)
		r.Post("/navigate", s.handleNavigate)
		r.Get("/ready", s.handleReadiness)
		r.Post("/submit", s.handleSubmit)
		r.Post("/save", s.handleSave)
		r.Post("/resume", s.handleResume)
	})

	r.Get("/history", s.handleHistory)
	r.Get("/history/{index}", s.handleHistoryRecord)
	r.Post("/history/{index}/review", s.handleReviewRecord)
	r.Get("/history/{index}/export", s.handleExport)
	r.Get("/streak", s.handleStreak)

	return r
}
