package api

import (
	"net/http"

	"github.com/vytor/quizzical/internal/export"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.HistoryService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, records)
}

func (s *Server) handleHistoryRecord(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	rec, err := s.HistoryService.Get(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}

func (s *Server) handleReviewRecord(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	view, err := s.QuizService.Review(r.Context(), index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	index, err := intParam(r, "index")
	if err != nil {
		handleError(w, r, err)
		return
	}
	opts, err := exportOptions(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	text, err := s.HistoryService.Export(r.Context(), index, opts)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// exportOptions reads color, question, options, answer and responses flags.
// Each defaults to true.
func exportOptions(r *http.Request) (export.Options, error) {
	opts := export.DefaultOptions()
	flags := []struct {
		name string
		dst  *bool
	}{
		{"color", &opts.Color},
		{"question", &opts.ShowQuestion},
		{"options", &opts.ShowOptions},
		{"answer", &opts.ShowAnswer},
		{"responses", &opts.ShowResponses},
	}
	for _, f := range flags {
		v, err := boolQuery(r, f.name, *f.dst)
		if err != nil {
			return export.Options{}, err
		}
		*f.dst = v
	}
	return opts, nil
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	info, err := s.HistoryService.Streak(r.Context(), s.now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, info)
}
