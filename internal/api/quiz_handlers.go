package api

import (
	"net/http"

	"github.com/vytor/quizzical/internal/models"
	"github.com/vytor/quizzical/internal/quiz"
)

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	mode, err := quiz.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	view, err := s.QuizService.Generate(r.Context(), mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleActiveQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.Active(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExitQuiz(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.Exit(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuizService.Question(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	q, err := s.QuizService.Navigate(r.Context(), r.URL.Query().Get("to"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

type answerRequest struct {
	Selected string `json:"selected"`
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuizService.Select(r.Context(), index, req.Selected)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

type swapRequest struct {
	Src  int `json:"src"`
	Dest int `json:"dest"`
}

func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	var req swapRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuizService.Swap(r.Context(), index, req.Src, req.Dest)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleLock(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuizService.Lock(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleUnlock(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	q, err := s.QuizService.Unlock(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, q)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	ready, err := s.QuizService.Ready(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, ready)
}

type submitResponse struct {
	Stats   models.QuizStats   `json:"stats"`
	Quiz    models.SessionView `json:"quiz"`
	Warning *errorBody         `json:"warning,omitempty"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	temporary, err := boolQuery(r, "temporary", false)
	if err != nil {
		handleError(w, r, err)
		return
	}
	res, err := s.QuizService.Submit(r.Context(), temporary)
	if err != nil {
		handleError(w, r, err)
		return
	}
	resp := submitResponse{Stats: res.Stats, Quiz: res.View}
	if res.Warning != nil {
		b := toBody(res.Warning)
		resp.Warning = &b
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := s.QuizService.SaveTemporary(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.ResumeTemporary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}
